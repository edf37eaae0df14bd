package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
)

// ErrNotFound is returned by every repository lookup that matches no row.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role entity.Role) (int64, error)
}
