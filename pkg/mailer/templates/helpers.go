package templates

import (
	"time"

	"github.com/oksasatya/go-library-backend/pkg/helpers"
)

// Brand is the sender identity shared by every email.
type Brand struct {
	AppName    string
	LogoURL    string
	SupportURL string
}

type Option func(*EmailData)

func WithAuthor(name string) Option { return func(d *EmailData) { d.BookAuthor = name } }

func WithGeneratedAt(t time.Time) Option {
	return func(d *EmailData) { d.GeneratedAt = t.UTC().Format(helpers.DisplayDateLayout + " 15:04") }
}

// LoanDates fills loan and due date in display format, plus the days left until due.
func LoanDates(loanDate, dueDate time.Time) Option {
	return func(d *EmailData) {
		d.LoanDate = loanDate.Format(helpers.DisplayDateLayout)
		d.DueDate = dueDate.Format(helpers.DisplayDateLayout)
		d.DaysToDue = int(dueDate.Sub(loanDate).Hours() / 24)
	}
}

func newBaseEmailData(b Brand, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:       name,
		Email:      email,
		Type:       typ,
		AppName:    b.AppName,
		LogoURL:    b.LogoURL,
		SupportURL: b.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewLoanCreatedData builds the job data for a loan confirmation email.
func NewLoanCreatedData(b Brand, name, email string, loanID int64, bookTitle string, opts ...Option) map[string]any {
	d := newBaseEmailData(b, LoanCreated, name, email, opts...)
	d.LoanID = loanID
	d.BookTitle = bookTitle
	return ToMap(d)
}
