package application_test

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/oksasatya/go-library-backend/internal/application"
	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/domain/repository"
)

var errStoreDown = errors.New("connection refused")

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func nullLogger() (*logrus.Logger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return logger, hook
}

// downUsers fails every call the way an unreachable database would.
type downUsers struct{}

func (downUsers) GetByID(context.Context, int64) (*entity.User, error) { return nil, errStoreDown }

func (downUsers) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, errStoreDown
}

func (downUsers) Count(context.Context) (int64, error) { return 0, errStoreDown }

func (downUsers) CountByRole(context.Context, entity.Role) (int64, error) {
	return 0, errStoreDown
}

// recordingLoans wraps a loan repository and counts inserts.
type recordingLoans struct {
	repository.LoanRepository
	creates int
}

func (r *recordingLoans) Create(ctx context.Context, l *entity.Loan) error {
	r.creates++
	return r.LoanRepository.Create(ctx, l)
}

type recordingNotifier struct {
	events []application.LoanCreated
	err    error
}

func (n *recordingNotifier) LoanCreated(_ context.Context, ev application.LoanCreated) error {
	n.events = append(n.events, ev)
	return n.err
}
