package entity

import "time"

// Loan links one user to one book. It carries no returned flag: whether a loan
// is still out or overdue is derived from DueDate and the current date.
type Loan struct {
	ID       int64
	UserID   int64
	BookID   int64
	LoanDate time.Time
	DueDate  time.Time
}

// LoanStatus is the state of a loan relative to a given day. It is never stored.
type LoanStatus string

const (
	LoanOnTime  LoanStatus = "ON_TIME"
	LoanOverdue LoanStatus = "OVERDUE"
)

// IsOverdue reports whether the due date is strictly before today.
func (l *Loan) IsOverdue(today time.Time) bool {
	return DateOf(l.DueDate).Before(DateOf(today))
}

// IsOutstanding reports whether the book is not yet due back (due date >= today).
// Outstanding loans are the ones counted as borrowed books.
func (l *Loan) IsOutstanding(today time.Time) bool {
	return !l.IsOverdue(today)
}

// StatusOn classifies the loan against today.
func (l *Loan) StatusOn(today time.Time) LoanStatus {
	if l.IsOverdue(today) {
		return LoanOverdue
	}
	return LoanOnTime
}

// DateOf truncates t to its calendar date at midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
