package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/domain/repository"
	"github.com/oksasatya/go-library-backend/internal/infrastructure/memory"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Test_Store_Users(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	admin := s.AddUser(entity.User{Name: "Ana", Email: "ana@biblioteca.dev", Role: entity.RoleAdmin})
	s.AddUser(entity.User{Name: "Bruno", Email: "bruno@biblioteca.dev", Role: entity.RoleReader})
	s.AddUser(entity.User{Name: "Carla", Email: "carla@biblioteca.dev", Role: entity.RoleReader})

	got, err := s.Users().GetByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	byEmail, err := s.Users().GetByEmail(ctx, "BRUNO@biblioteca.dev")
	require.NoError(t, err)
	assert.Equal(t, "Bruno", byEmail.Name)

	_, err = s.Users().GetByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	total, _ := s.Users().Count(ctx)
	readers, _ := s.Users().CountByRole(ctx, entity.RoleReader)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(2), readers)
}

func Test_Store_Books_CountByCategory_SkipsUncategorized(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	fic := s.AddCategory("Ficção")
	hist := s.AddCategory("História")
	s.AddBook(entity.Book{Title: "Dom Casmurro", Category: fic})
	s.AddBook(entity.Book{Title: "Memórias Póstumas", Category: fic})
	s.AddBook(entity.Book{Title: "1808", Category: hist})
	s.AddBook(entity.Book{Title: "Sem categoria"})

	counts, err := s.Books().CountByCategory(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []entity.CategoryCount{
		{Name: "Ficção", Total: 2},
		{Name: "História", Total: 1},
	}, counts)
}

func Test_Store_Books_Search(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	fic := s.AddCategory("Ficção")
	machado := s.AddAuthor("Machado de Assis")
	s.AddBook(entity.Book{Title: "Dom Casmurro", Category: fic, Author: machado})
	s.AddBook(entity.Book{Title: "Quincas Borba", Author: machado})
	s.AddBook(entity.Book{Title: "O Cortiço", Category: fic})

	byTitle, err := s.Books().Search(ctx, repository.BookFilter{Title: "casm"})
	require.NoError(t, err)
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Dom Casmurro", byTitle[0].Title)
	assert.Equal(t, "Ficção", byTitle[0].CategoryName())
	assert.Equal(t, "Machado de Assis", byTitle[0].AuthorName())

	byAuthor, _ := s.Books().Search(ctx, repository.BookFilter{AuthorID: machado.ID})
	assert.Len(t, byAuthor, 2)

	both, _ := s.Books().Search(ctx, repository.BookFilter{AuthorID: machado.ID, CategoryID: fic.ID})
	assert.Len(t, both, 1)

	all, _ := s.Books().Search(ctx, repository.BookFilter{})
	assert.Len(t, all, 3)
}

func Test_Store_Loans(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	today := day(2025, 5, 20)

	loans := []*entity.Loan{
		{UserID: 1, BookID: 1, LoanDate: today, DueDate: day(2025, 5, 25)},
		{UserID: 2, BookID: 2, LoanDate: today, DueDate: day(2025, 5, 19)},
		{UserID: 1, BookID: 3, LoanDate: today, DueDate: today},
		{UserID: 1, BookID: 4, LoanDate: today, DueDate: day(2025, 5, 21)},
	}
	for _, l := range loans {
		require.NoError(t, s.Loans().Create(ctx, l))
	}
	assert.Equal(t, int64(1), loans[0].ID)
	assert.Equal(t, int64(4), loans[3].ID)

	mine, err := s.Loans().ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, []int64{1, 3, 4}, []int64{mine[0].ID, mine[1].ID, mine[2].ID})

	none, err := s.Loans().ListByUser(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)

	late, _ := s.Loans().CountDueBefore(ctx, today)
	out, _ := s.Loans().CountDueOnOrAfter(ctx, today)
	assert.Equal(t, int64(1), late)
	assert.Equal(t, int64(3), out)

	top, err := s.Loans().ListDueOnOrAfter(ctx, today, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(3), top[0].ID)
	assert.Equal(t, int64(4), top[1].ID)
}
