package postgres

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
)

// SeedWriter inserts reference data. Every method is idempotent on the natural key
// (category name, author name, book title, user email) and returns the row id.
type SeedWriter struct {
	db    Querier
	loans *LoanRepository
}

func NewSeedWriter(db Querier) *SeedWriter {
	return &SeedWriter{db: db, loans: NewLoanRepository(db)}
}

func (w *SeedWriter) returningID(ctx context.Context, b sqlBuilder) (int64, error) {
	query, args, err := build(b)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := w.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// findOrInsert looks the row up by one column and inserts rec when it is missing.
func (w *SeedWriter) findOrInsert(ctx context.Context, table, col string, val any, rec goqu.Record) (int64, error) {
	id, err := w.returningID(ctx, dialect.From(table).Select("id").Where(goqu.C(col).Eq(val)).Order(goqu.C("id").Asc()).Limit(1).Prepared(true))
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	return w.returningID(ctx, dialect.Insert(table).Rows(rec).Returning(goqu.C("id")).Prepared(true))
}

func (w *SeedWriter) Category(ctx context.Context, name string) (int64, error) {
	return w.returningID(ctx, dialect.Insert(tableCategories).
		Rows(goqu.Record{"name": name}).
		OnConflict(goqu.DoUpdate("name", goqu.Record{"name": goqu.L("EXCLUDED.name")})).
		Returning(goqu.C("id")).
		Prepared(true))
}

func (w *SeedWriter) Author(ctx context.Context, name string) (int64, error) {
	return w.findOrInsert(ctx, tableAuthors, "name", name, goqu.Record{"name": name})
}

func (w *SeedWriter) Book(ctx context.Context, b entity.Book) (int64, error) {
	rec := goqu.Record{"title": b.Title, "description": b.Description, "cover_url": b.CoverURL}
	if b.Category != nil {
		rec["category_id"] = b.Category.ID
	}
	if b.Author != nil {
		rec["author_id"] = b.Author.ID
	}
	return w.findOrInsert(ctx, tableBooks, "title", b.Title, rec)
}

func (w *SeedWriter) User(ctx context.Context, u entity.User) (int64, error) {
	return w.returningID(ctx, dialect.Insert(tableUsers).
		Rows(goqu.Record{"name": u.Name, "email": u.Email, "password_hash": u.Password, "role": string(u.Role)}).
		OnConflict(goqu.DoUpdate("email", goqu.Record{
			"name":          goqu.L("EXCLUDED.name"),
			"role":          goqu.L("EXCLUDED.role"),
			"password_hash": goqu.L("EXCLUDED.password_hash"),
		})).
		Returning(goqu.C("id")).
		Prepared(true))
}

func (w *SeedWriter) HasLoans(ctx context.Context, userID int64) (bool, error) {
	loans, err := w.loans.ListByUser(ctx, userID)
	return len(loans) > 0, err
}

func (w *SeedWriter) Loan(ctx context.Context, l *entity.Loan) error {
	return w.loans.Create(ctx, l)
}
