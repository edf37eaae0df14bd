package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-library-backend/internal/domain/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrBookNotFound = errors.New("book not found")
)

// LoanCreated describes a loan that was just persisted, with the user and book it references.
type LoanCreated struct {
	Loan *entity.Loan
	User *entity.User
	Book *entity.Book
}

// LoanNotifier is told about every persisted loan. Errors are logged, never returned to the caller.
type LoanNotifier interface {
	LoanCreated(ctx context.Context, ev LoanCreated) error
}

type LoanService struct {
	Users    repo.UserRepository
	Books    repo.BookRepository
	Loans    repo.LoanRepository
	Notifier LoanNotifier
	Logger   *logrus.Logger
	Now      func() time.Time
}

func NewLoanService(users repo.UserRepository, books repo.BookRepository, loans repo.LoanRepository, notifier LoanNotifier, logger *logrus.Logger) *LoanService {
	return &LoanService{
		Users:    users,
		Books:    books,
		Loans:    loans,
		Notifier: notifier,
		Logger:   logger,
		Now:      time.Now,
	}
}

type CreateLoanInput struct {
	UserID  int64
	BookID  int64
	DueDate time.Time
}

// CreateLoan checks that the user and then the book exist, and only then inserts the loan.
// It returns ErrUserNotFound or ErrBookNotFound for missing references; any other
// store error is wrapped and returned unchanged in kind.
func (s *LoanService) CreateLoan(ctx context.Context, in CreateLoanInput) (*entity.Loan, error) {
	u, err := s.Users.GetByID(ctx, in.UserID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user %d: %w", in.UserID, err)
	}

	b, err := s.Books.GetByID(ctx, in.BookID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup book %d: %w", in.BookID, err)
	}

	l := &entity.Loan{
		UserID:   u.ID,
		BookID:   b.ID,
		LoanDate: entity.DateOf(s.Now()),
		DueDate:  entity.DateOf(in.DueDate),
	}
	if err := s.Loans.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}

	s.Logger.WithFields(logrus.Fields{
		"loan_id":  l.ID,
		"user_id":  l.UserID,
		"book_id":  l.BookID,
		"due_date": l.DueDate.Format(time.DateOnly),
	}).Info("loan created")

	s.notify(ctx, LoanCreated{Loan: l, User: u, Book: b})
	return l, nil
}

func (s *LoanService) notify(ctx context.Context, ev LoanCreated) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.LoanCreated(ctx, ev); err != nil {
		s.Logger.WithError(err).WithField("loan_id", ev.Loan.ID).Warn("loan notification failed")
	}
}

// ListLoansByUser returns the user's loans in creation order. An unknown user yields an empty list.
func (s *LoanService) ListLoansByUser(ctx context.Context, userID int64) ([]*entity.Loan, error) {
	loans, err := s.Loans.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list loans of user %d: %w", userID, err)
	}
	return loans, nil
}
