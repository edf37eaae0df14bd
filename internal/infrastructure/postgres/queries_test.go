package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/domain/repository"
)

func Test_LoanQueries(t *testing.T) {
	today := time.Date(2025, 4, 1, 13, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("count_due_before_compares_strictly", func(t *testing.T) {
		query, args, err := build(countOf(loansDueBefore(today)))
		require.NoError(t, err)
		assert.Contains(t, query, `COUNT(*)`)
		assert.Contains(t, query, `FROM "loans"`)
		assert.Contains(t, query, `"due_date" < $1`)
		assert.Equal(t, []interface{}{midnight}, args)
	})

	t.Run("count_due_on_or_after_is_inclusive", func(t *testing.T) {
		query, args, err := build(countOf(loansDueOnOrAfter(today)))
		require.NoError(t, err)
		assert.Contains(t, query, `"due_date" >= $1`)
		assert.Equal(t, []interface{}{midnight}, args)
	})

	t.Run("upcoming_orders_by_due_date_and_limits", func(t *testing.T) {
		query, args, err := build(upcomingLoans(today, 5))
		require.NoError(t, err)
		assert.Contains(t, query, `"due_date" >= $1`)
		assert.Contains(t, query, `ORDER BY "due_date" ASC, "id" ASC`)
		assert.Contains(t, query, `LIMIT $2`)
		assert.Len(t, args, 2)
	})

	t.Run("loans_of_user_in_insertion_order", func(t *testing.T) {
		query, args, err := build(loansOfUser(7))
		require.NoError(t, err)
		assert.Contains(t, query, `"user_id" = $1`)
		assert.Contains(t, query, `ORDER BY "id" ASC`)
		assert.Equal(t, []interface{}{int64(7)}, args)
	})

	t.Run("insert_returns_id", func(t *testing.T) {
		query, args, err := build(loanInsert(&entity.Loan{UserID: 1, BookID: 2, LoanDate: today, DueDate: today}))
		require.NoError(t, err)
		assert.Contains(t, query, `INSERT INTO "loans"`)
		assert.Contains(t, query, `RETURNING "id"`)
		assert.Len(t, args, 4)
	})
}

func Test_BookQueries(t *testing.T) {
	t.Run("per_category_groups_on_inner_join", func(t *testing.T) {
		query, _, err := build(booksPerCategory())
		require.NoError(t, err)
		assert.Contains(t, query, `INNER JOIN "categories" AS "c"`)
		assert.Contains(t, query, `GROUP BY "c"."name"`)
	})

	t.Run("search_without_filters_has_no_where", func(t *testing.T) {
		query, args, err := build(bookSearch(repository.BookFilter{}))
		require.NoError(t, err)
		assert.NotContains(t, query, "WHERE")
		assert.Empty(t, args)
	})

	t.Run("search_with_all_filters", func(t *testing.T) {
		query, args, err := build(bookSearch(repository.BookFilter{Title: "casmurro", CategoryID: 3, AuthorID: 9}))
		require.NoError(t, err)
		assert.Contains(t, query, `"b"."title" ILIKE $1`)
		assert.Contains(t, query, `"b"."category_id" = $2`)
		assert.Contains(t, query, `"b"."author_id" = $3`)
		assert.Equal(t, []interface{}{"%casmurro%", int64(3), int64(9)}, args)
	})
}

func Test_UserQueries(t *testing.T) {
	query, args, err := build(countOf(usersWithRole(entity.RoleAdmin)))
	require.NoError(t, err)
	assert.Contains(t, query, `"role" = $1`)
	assert.Equal(t, []interface{}{"ADMIN"}, args)
}
