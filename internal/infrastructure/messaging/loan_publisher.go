// Package messaging publishes domain events to RabbitMQ for the background workers.
package messaging

import (
	"context"
	"time"

	"github.com/oksasatya/go-library-backend/internal/application"
	"github.com/oksasatya/go-library-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/go-library-backend/pkg/mailer/templates"
)

// Publisher is satisfied by *helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// LoanPublisher turns created loans into loan_created email jobs.
type LoanPublisher struct {
	Pub     Publisher
	Brand   mailtpl.Brand
	Enabled bool
	Now     func() time.Time
}

func NewLoanPublisher(pub Publisher, brand mailtpl.Brand, enabled bool) *LoanPublisher {
	return &LoanPublisher{Pub: pub, Brand: brand, Enabled: enabled, Now: time.Now}
}

func (p *LoanPublisher) LoanCreated(ctx context.Context, ev application.LoanCreated) error {
	if !p.Enabled || p.Pub == nil || ev.User == nil || ev.User.Email == "" {
		return nil
	}
	return p.Pub.PublishJSON(ctx, LoanCreatedJob(p.Brand, ev, p.Now()))
}

// LoanCreatedJob builds the email job sent to the borrower.
func LoanCreatedJob(brand mailtpl.Brand, ev application.LoanCreated, now time.Time) mailer.EmailJob {
	opts := []mailtpl.Option{
		mailtpl.LoanDates(ev.Loan.LoanDate, ev.Loan.DueDate),
		mailtpl.WithGeneratedAt(now),
	}
	title := ""
	if ev.Book != nil {
		title = ev.Book.Title
		opts = append(opts, mailtpl.WithAuthor(ev.Book.AuthorName()))
	}
	return mailer.EmailJob{
		To:       ev.User.Email,
		Template: mailtpl.LoanCreated,
		Data:     mailtpl.NewLoanCreatedData(brand, ev.User.Name, ev.User.Email, ev.Loan.ID, title, opts...),
	}
}

var _ application.LoanNotifier = (*LoanPublisher)(nil)
