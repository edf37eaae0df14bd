package repository

import (
	"context"
	"time"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
)

// LoanRepository defines the interface for loan-related database operations.
// Dates passed in are calendar dates; comparisons ignore time of day.
type LoanRepository interface {
	// Create persists l and sets its ID.
	Create(ctx context.Context, l *entity.Loan) error
	// ListByUser returns the user's loans in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]*entity.Loan, error)
	CountDueBefore(ctx context.Context, day time.Time) (int64, error)
	CountDueOnOrAfter(ctx context.Context, day time.Time) (int64, error)
	// ListDueOnOrAfter returns at most limit loans due on or after day, soonest first.
	ListDueOnOrAfter(ctx context.Context, day time.Time, limit int) ([]*entity.Loan, error)
}
