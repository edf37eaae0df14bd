package repository

import (
	"context"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
)

// BookFilter narrows a catalog listing. Zero values mean "no constraint".
// Title matches as a case-insensitive substring.
type BookFilter struct {
	Title      string
	CategoryID int64
	AuthorID   int64
}

// BookRepository defines the interface for book-related database operations.
type BookRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Book, error)
	Count(ctx context.Context) (int64, error)
	// CountByCategory returns one entry per category that has at least one book.
	// Uncategorized books are not reported.
	CountByCategory(ctx context.Context) ([]entity.CategoryCount, error)
	Search(ctx context.Context, f BookFilter) ([]*entity.Book, error)
	UpdateCoverURL(ctx context.Context, id int64, url string) error
}
