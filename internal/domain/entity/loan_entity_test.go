package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Test_Loan_StatusOn(t *testing.T) {
	today := day(2025, 3, 10)

	tests := []struct {
		name        string
		due         time.Time
		overdue     bool
		outstanding bool
		status      entity.LoanStatus
	}{
		{name: "due_yesterday_is_overdue", due: day(2025, 3, 9), overdue: true, outstanding: false, status: entity.LoanOverdue},
		{name: "due_today_is_on_time", due: today, overdue: false, outstanding: true, status: entity.LoanOnTime},
		{name: "due_tomorrow_is_on_time", due: day(2025, 3, 11), overdue: false, outstanding: true, status: entity.LoanOnTime},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := &entity.Loan{DueDate: tc.due}
			assert.Equal(t, tc.overdue, l.IsOverdue(today))
			assert.Equal(t, tc.outstanding, l.IsOutstanding(today))
			assert.Equal(t, tc.status, l.StatusOn(today))
		})
	}
}

func Test_Loan_IsOverdue_IgnoresTimeOfDay(t *testing.T) {
	l := &entity.Loan{DueDate: day(2025, 3, 10)}
	lateEvening := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)

	assert.False(t, l.IsOverdue(lateEvening))
}

func Test_DateOf(t *testing.T) {
	got := entity.DateOf(time.Date(2025, 1, 2, 15, 4, 5, 6, time.UTC))
	assert.Equal(t, day(2025, 1, 2), got)
}

func Test_Role_Valid(t *testing.T) {
	assert.True(t, entity.RoleAdmin.Valid())
	assert.True(t, entity.RoleReader.Valid())
	assert.False(t, entity.Role("LIBRARIAN").Valid())
}
