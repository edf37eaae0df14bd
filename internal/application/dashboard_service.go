package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-library-backend/internal/domain/repository"
)

// Status labels shown next to upcoming returns.
const (
	StatusLate   = "Atrasado"
	StatusOnTime = "No prazo"
)

const DefaultUpcomingReturnsLimit = 5

type CategoryCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type UpcomingReturn struct {
	ID      int64  `json:"id"`
	Title   string `json:"titulo"`
	Reader  string `json:"leitor"`
	DueDate string `json:"dataDevolucao"`
	Status  string `json:"status"`
}

// AdminDashboard is a snapshot computed fresh for every request.
// AvailableBooks is TotalBooks - BorrowedBooks and goes negative when one book is lent several times.
type AdminDashboard struct {
	TotalBooks      int64            `json:"totalBooks"`
	BorrowedBooks   int64            `json:"borrowedBooks"`
	AvailableBooks  int64            `json:"availableBooks"`
	TotalUsers      int64            `json:"totalUsers"`
	Admins          int64            `json:"admins"`
	Readers         int64            `json:"readers"`
	LateLoans       int64            `json:"lateLoans"`
	BooksByCategory []CategoryCount  `json:"booksByCategory"`
	UpcomingReturns []UpcomingReturn `json:"upcomingReturns"`
}

type DashboardService struct {
	Users         repo.UserRepository
	Books         repo.BookRepository
	Loans         repo.LoanRepository
	Logger        *logrus.Logger
	Now           func() time.Time
	UpcomingLimit int
}

func NewDashboardService(users repo.UserRepository, books repo.BookRepository, loans repo.LoanRepository, logger *logrus.Logger) *DashboardService {
	return &DashboardService{
		Users:         users,
		Books:         books,
		Loans:         loans,
		Logger:        logger,
		Now:           time.Now,
		UpcomingLimit: DefaultUpcomingReturnsLimit,
	}
}

// GetAdminDashboard reads the clock once; every field is computed against that same day.
// The store queries are independent reads, not one transaction.
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	today := entity.DateOf(s.Now())
	d := &AdminDashboard{}

	var err error
	if d.TotalBooks, err = s.Books.Count(ctx); err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}
	if d.BorrowedBooks, err = s.Loans.CountDueOnOrAfter(ctx, today); err != nil {
		return nil, fmt.Errorf("count borrowed books: %w", err)
	}
	d.AvailableBooks = d.TotalBooks - d.BorrowedBooks

	if d.TotalUsers, err = s.Users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if d.Admins, err = s.Users.CountByRole(ctx, entity.RoleAdmin); err != nil {
		return nil, fmt.Errorf("count admins: %w", err)
	}
	if d.Readers, err = s.Users.CountByRole(ctx, entity.RoleReader); err != nil {
		return nil, fmt.Errorf("count readers: %w", err)
	}

	if d.LateLoans, err = s.Loans.CountDueBefore(ctx, today); err != nil {
		return nil, fmt.Errorf("count late loans: %w", err)
	}

	if d.BooksByCategory, err = s.booksByCategory(ctx); err != nil {
		return nil, err
	}
	if d.UpcomingReturns, err = s.upcomingReturns(ctx, today); err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"today":       today.Format(time.DateOnly),
		"total_books": d.TotalBooks,
		"late_loans":  d.LateLoans,
	}).Debug("admin dashboard computed")

	return d, nil
}

func (s *DashboardService) booksByCategory(ctx context.Context) ([]CategoryCount, error) {
	counts, err := s.Books.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count books by category: %w", err)
	}
	out := make([]CategoryCount, 0, len(counts))
	for _, c := range counts {
		out = append(out, CategoryCount{Name: c.Name, Value: c.Total})
	}
	return out, nil
}

// upcomingReturns resolves title and borrower of the next loans to come back.
// A loan pointing at a missing book or user fails the whole snapshot.
func (s *DashboardService) upcomingReturns(ctx context.Context, today time.Time) ([]UpcomingReturn, error) {
	loans, err := s.Loans.ListDueOnOrAfter(ctx, today, s.UpcomingLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming returns: %w", err)
	}

	out := make([]UpcomingReturn, 0, len(loans))
	for _, l := range loans {
		b, err := s.Books.GetByID(ctx, l.BookID)
		if err != nil {
			return nil, fmt.Errorf("book %d of loan %d: %w", l.BookID, l.ID, err)
		}
		u, err := s.Users.GetByID(ctx, l.UserID)
		if err != nil {
			return nil, fmt.Errorf("user %d of loan %d: %w", l.UserID, l.ID, err)
		}

		// Loans here are due today or later, so StatusLate is never chosen while the
		// query keeps that filter.
		status := StatusOnTime
		if l.DueDate.Before(today) {
			status = StatusLate
		}

		out = append(out, UpcomingReturn{
			ID:      l.ID,
			Title:   b.Title,
			Reader:  u.Name,
			DueDate: l.DueDate.Format(time.DateOnly),
			Status:  status,
		})
	}
	return out, nil
}
