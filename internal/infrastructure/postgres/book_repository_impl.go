package postgres

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/domain/repository"
)

type BookRepository struct {
	db Querier
}

func NewBookRepository(db Querier) *BookRepository {
	return &BookRepository{db: db}
}

// bookSelect joins the optional category and author of every book.
func bookSelect() *goqu.SelectDataset {
	return dialect.From(goqu.T(tableBooks).As("b")).
		LeftJoin(goqu.T(tableCategories).As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("b.category_id")))).
		LeftJoin(goqu.T(tableAuthors).As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("b.author_id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.title"), goqu.I("b.description"), goqu.I("b.cover_url"),
			goqu.I("c.id"), goqu.I("c.name"),
			goqu.I("a.id"), goqu.I("a.name"),
		).
		Prepared(true)
}

func bookSearch(f repository.BookFilter) *goqu.SelectDataset {
	where := make([]exp.Expression, 0, 3)
	if f.Title != "" {
		where = append(where, goqu.I("b.title").ILike("%"+f.Title+"%"))
	}
	if f.CategoryID != 0 {
		where = append(where, goqu.I("b.category_id").Eq(f.CategoryID))
	}
	if f.AuthorID != 0 {
		where = append(where, goqu.I("b.author_id").Eq(f.AuthorID))
	}
	return bookSelect().Where(where...).Order(goqu.I("b.id").Asc())
}

func booksPerCategory() *goqu.SelectDataset {
	return dialect.From(goqu.T(tableBooks).As("b")).
		InnerJoin(goqu.T(tableCategories).As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("b.category_id")))).
		Select(goqu.I("c.name"), goqu.COUNT(goqu.I("b.id")).As("total")).
		GroupBy(goqu.I("c.name")).
		Prepared(true)
}

func (r *BookRepository) GetByID(ctx context.Context, id int64) (*entity.Book, error) {
	query, args, err := build(bookSelect().Where(goqu.I("b.id").Eq(id)))
	if err != nil {
		return nil, err
	}
	b, err := scanBook(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return b, err
}

func (r *BookRepository) Count(ctx context.Context) (int64, error) {
	return queryCount(ctx, r.db, dialect.From(tableBooks))
}

func (r *BookRepository) CountByCategory(ctx context.Context) ([]entity.CategoryCount, error) {
	query, args, err := build(booksPerCategory())
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.CategoryCount, 0)
	for rows.Next() {
		var cc entity.CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Total); err != nil {
			return nil, err
		}
		out = append(out, cc)
	}
	return out, rows.Err()
}

func (r *BookRepository) Search(ctx context.Context, f repository.BookFilter) ([]*entity.Book, error) {
	query, args, err := build(bookSearch(f))
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookRepository) UpdateCoverURL(ctx context.Context, id int64, url string) error {
	query, args, err := build(dialect.Update(tableBooks).
		Set(goqu.Record{"cover_url": url}).
		Where(goqu.C("id").Eq(id)).
		Prepared(true))
	if err != nil {
		return err
	}
	res, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanBook(row pgx.Row) (*entity.Book, error) {
	b := &entity.Book{}
	var (
		categoryID, authorID     *int64
		categoryName, authorName *string
	)
	if err := row.Scan(&b.ID, &b.Title, &b.Description, &b.CoverURL, &categoryID, &categoryName, &authorID, &authorName); err != nil {
		return nil, err
	}
	if categoryID != nil {
		b.Category = &entity.Category{ID: *categoryID, Name: deref(categoryName)}
	}
	if authorID != nil {
		b.Author = &entity.Author{ID: *authorID, Name: deref(authorName)}
	}
	return b, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var _ repository.BookRepository = (*BookRepository)(nil)
