package messaging_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-library-backend/internal/application"
	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/infrastructure/messaging"
	"github.com/oksasatya/go-library-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/go-library-backend/pkg/mailer/templates"
)

type capturePublisher struct {
	jobs []any
	err  error
}

func (c *capturePublisher) PublishJSON(_ context.Context, body any) error {
	c.jobs = append(c.jobs, body)
	return c.err
}

func loanEvent() application.LoanCreated {
	return application.LoanCreated{
		Loan: &entity.Loan{ID: 9, UserID: 1, BookID: 2,
			LoanDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			DueDate:  time.Date(2025, 6, 22, 0, 0, 0, 0, time.UTC)},
		User: &entity.User{ID: 1, Name: "Bruno", Email: "bruno@biblioteca.dev"},
		Book: &entity.Book{ID: 2, Title: "Memórias Póstumas", Author: &entity.Author{ID: 1, Name: "Machado de Assis"}},
	}
}

func Test_LoanPublisher_PublishesJob(t *testing.T) {
	pub := &capturePublisher{}
	p := messaging.NewLoanPublisher(pub, mailtpl.Brand{AppName: "Biblioteca"}, true)

	require.NoError(t, p.LoanCreated(context.Background(), loanEvent()))

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "bruno@biblioteca.dev", job.To)
	assert.Equal(t, mailtpl.LoanCreated, job.Template)
	assert.Equal(t, "Memórias Póstumas", job.Data["BookTitle"])
	assert.Equal(t, "Machado de Assis", job.Data["BookAuthor"])
	assert.Equal(t, "22/06/2025", job.Data["DueDate"])
	assert.Equal(t, float64(9), job.Data["LoanID"])
}

func Test_LoanPublisher_Disabled(t *testing.T) {
	pub := &capturePublisher{}
	p := messaging.NewLoanPublisher(pub, mailtpl.Brand{}, false)

	require.NoError(t, p.LoanCreated(context.Background(), loanEvent()))
	assert.Empty(t, pub.jobs)
}

func Test_LoanPublisher_ReturnsPublishError(t *testing.T) {
	pub := &capturePublisher{err: errors.New("channel closed")}
	p := messaging.NewLoanPublisher(pub, mailtpl.Brand{}, true)

	err := p.LoanCreated(context.Background(), loanEvent())

	assert.EqualError(t, err, "channel closed")
}

func Test_LoanCreatedJob_RendersWithMailTemplates(t *testing.T) {
	job := messaging.LoanCreatedJob(mailtpl.Brand{AppName: "Biblioteca"}, loanEvent(), time.Now())

	subject, _, _, err := mailtpl.Render(job.Template, job.Data)

	require.NoError(t, err)
	assert.Contains(t, subject, "Memórias Póstumas")
}
