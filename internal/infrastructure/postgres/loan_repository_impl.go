package postgres

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/domain/repository"
)

var loanColumns = []interface{}{"id", "user_id", "book_id", "loan_date", "due_date"}

type LoanRepository struct {
	db Querier
}

func NewLoanRepository(db Querier) *LoanRepository {
	return &LoanRepository{db: db}
}

func loanInsert(l *entity.Loan) *goqu.InsertDataset {
	return dialect.Insert(tableLoans).
		Rows(goqu.Record{
			"user_id":   l.UserID,
			"book_id":   l.BookID,
			"loan_date": entity.DateOf(l.LoanDate),
			"due_date":  entity.DateOf(l.DueDate),
		}).
		Returning(goqu.C("id")).
		Prepared(true)
}

func loansOfUser(userID int64) *goqu.SelectDataset {
	return dialect.From(tableLoans).Select(loanColumns...).
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.C("id").Asc()).
		Prepared(true)
}

func loansDueBefore(day time.Time) *goqu.SelectDataset {
	return dialect.From(tableLoans).Where(goqu.C("due_date").Lt(entity.DateOf(day)))
}

func loansDueOnOrAfter(day time.Time) *goqu.SelectDataset {
	return dialect.From(tableLoans).Where(goqu.C("due_date").Gte(entity.DateOf(day)))
}

func upcomingLoans(day time.Time, limit int) *goqu.SelectDataset {
	return loansDueOnOrAfter(day).Select(loanColumns...).
		Order(goqu.C("due_date").Asc(), goqu.C("id").Asc()).
		Limit(uint(limit)).
		Prepared(true)
}

func (r *LoanRepository) Create(ctx context.Context, l *entity.Loan) error {
	query, args, err := build(loanInsert(l))
	if err != nil {
		return err
	}
	return r.db.QueryRow(ctx, query, args...).Scan(&l.ID)
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Loan, error) {
	return r.list(ctx, loansOfUser(userID))
}

func (r *LoanRepository) CountDueBefore(ctx context.Context, day time.Time) (int64, error) {
	return queryCount(ctx, r.db, loansDueBefore(day))
}

func (r *LoanRepository) CountDueOnOrAfter(ctx context.Context, day time.Time) (int64, error) {
	return queryCount(ctx, r.db, loansDueOnOrAfter(day))
}

func (r *LoanRepository) ListDueOnOrAfter(ctx context.Context, day time.Time, limit int) ([]*entity.Loan, error) {
	if limit <= 0 {
		return []*entity.Loan{}, nil
	}
	return r.list(ctx, upcomingLoans(day, limit))
}

func (r *LoanRepository) list(ctx context.Context, ds *goqu.SelectDataset) ([]*entity.Loan, error) {
	query, args, err := build(ds)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Loan, 0)
	for rows.Next() {
		l := &entity.Loan{}
		if err := rows.Scan(&l.ID, &l.UserID, &l.BookID, &l.LoanDate, &l.DueDate); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

var _ repository.LoanRepository = (*LoanRepository)(nil)
