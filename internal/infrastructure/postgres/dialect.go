package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
)

const (
	tableUsers      = "users"
	tableBooks      = "books"
	tableCategories = "categories"
	tableAuthors    = "authors"
	tableLoans      = "loans"
)

var dialect = goqu.Dialect("postgres")

type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

func build(b sqlBuilder) (string, []interface{}, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build query: %w", err)
	}
	return query, args, nil
}

// countOf turns a filtered dataset into SELECT COUNT(*).
func countOf(ds *goqu.SelectDataset) *goqu.SelectDataset {
	return ds.Select(goqu.COUNT("*")).Prepared(true)
}

func queryCount(ctx context.Context, q Querier, ds *goqu.SelectDataset) (int64, error) {
	query, args, err := build(countOf(ds))
	if err != nil {
		return 0, err
	}
	var n int64
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
