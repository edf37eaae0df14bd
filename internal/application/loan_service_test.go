package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-library-backend/internal/application"
	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/infrastructure/memory"
)

type loanFixture struct {
	store    *memory.Store
	loans    *recordingLoans
	notifier *recordingNotifier
	svc      *application.LoanService
	reader   *entity.User
	book     *entity.Book
	today    time.Time
}

func setupLoanService(t *testing.T) loanFixture {
	t.Helper()

	store := memory.NewStore()
	reader := store.AddUser(entity.User{Name: "Bruno", Email: "bruno@biblioteca.dev", Role: entity.RoleReader})
	book := store.AddBook(entity.Book{Title: "Dom Casmurro"})

	loans := &recordingLoans{LoanRepository: store.Loans()}
	notifier := &recordingNotifier{}
	logger, _ := nullLogger()

	svc := application.NewLoanService(store.Users(), store.Books(), loans, notifier, logger)
	today := day(2025, 6, 15)
	svc.Now = func() time.Time { return today.Add(14 * time.Hour) }

	return loanFixture{store: store, loans: loans, notifier: notifier, svc: svc, reader: reader, book: book, today: today}
}

func Test_LoanService_CreateLoan_Success(t *testing.T) {
	// setup
	f := setupLoanService(t)
	ctx := context.Background()
	due := day(2025, 6, 29)

	// act
	l, err := f.svc.CreateLoan(ctx, application.CreateLoanInput{UserID: f.reader.ID, BookID: f.book.ID, DueDate: due})

	// assert
	require.NoError(t, err)
	assert.NotZero(t, l.ID)
	assert.Equal(t, f.reader.ID, l.UserID)
	assert.Equal(t, f.book.ID, l.BookID)
	assert.Equal(t, f.today, l.LoanDate, "loan date is the calendar day of the call")
	assert.Equal(t, due, l.DueDate)
	assert.Equal(t, 1, f.loans.creates)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, l.ID, f.notifier.events[0].Loan.ID)
	assert.Equal(t, "bruno@biblioteca.dev", f.notifier.events[0].User.Email)
	assert.Equal(t, "Dom Casmurro", f.notifier.events[0].Book.Title)
}

func Test_LoanService_CreateLoan_AssignsFreshIDs(t *testing.T) {
	f := setupLoanService(t)
	ctx := context.Background()
	in := application.CreateLoanInput{UserID: f.reader.ID, BookID: f.book.ID, DueDate: day(2025, 7, 1)}

	first, err := f.svc.CreateLoan(ctx, in)
	require.NoError(t, err)
	second, err := f.svc.CreateLoan(ctx, in)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "lending the same book twice is allowed")
}

func Test_LoanService_CreateLoan_UnknownUser(t *testing.T) {
	f := setupLoanService(t)
	ctx := context.Background()

	l, err := f.svc.CreateLoan(ctx, application.CreateLoanInput{UserID: 999, BookID: f.book.ID, DueDate: day(2025, 1, 1)})

	assert.Nil(t, l)
	assert.ErrorIs(t, err, application.ErrUserNotFound)
	assert.Equal(t, "user not found", err.Error())
	assert.Zero(t, f.loans.creates, "no loan is written")
	assert.Empty(t, f.notifier.events)
}

func Test_LoanService_CreateLoan_UnknownBook(t *testing.T) {
	f := setupLoanService(t)
	ctx := context.Background()

	l, err := f.svc.CreateLoan(ctx, application.CreateLoanInput{UserID: f.reader.ID, BookID: 404, DueDate: day(2025, 7, 1)})

	assert.Nil(t, l)
	assert.ErrorIs(t, err, application.ErrBookNotFound)
	assert.Equal(t, "book not found", err.Error())
	assert.Zero(t, f.loans.creates)
}

func Test_LoanService_CreateLoan_ChecksUserBeforeBook(t *testing.T) {
	f := setupLoanService(t)

	_, err := f.svc.CreateLoan(context.Background(), application.CreateLoanInput{UserID: 999, BookID: 404, DueDate: day(2025, 7, 1)})

	assert.ErrorIs(t, err, application.ErrUserNotFound)
}

func Test_LoanService_CreateLoan_StoreFailureIsPropagated(t *testing.T) {
	f := setupLoanService(t)
	f.svc.Users = downUsers{}

	_, err := f.svc.CreateLoan(context.Background(), application.CreateLoanInput{UserID: f.reader.ID, BookID: f.book.ID, DueDate: day(2025, 7, 1)})

	assert.ErrorIs(t, err, errStoreDown)
	assert.False(t, errors.Is(err, application.ErrUserNotFound))
	assert.Zero(t, f.loans.creates)
}

func Test_LoanService_CreateLoan_NotificationFailureKeepsLoan(t *testing.T) {
	f := setupLoanService(t)
	logger, hook := nullLogger()
	f.svc.Logger = logger
	f.notifier.err = errors.New("broker unreachable")

	l, err := f.svc.CreateLoan(context.Background(), application.CreateLoanInput{UserID: f.reader.ID, BookID: f.book.ID, DueDate: day(2025, 7, 1)})

	require.NoError(t, err)
	assert.NotZero(t, l.ID)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "loan notification failed", hook.LastEntry().Message)
}

func Test_LoanService_ListLoansByUser(t *testing.T) {
	f := setupLoanService(t)
	ctx := context.Background()
	other := f.store.AddUser(entity.User{Name: "Carla", Email: "carla@biblioteca.dev", Role: entity.RoleReader})

	dues := []time.Time{day(2025, 7, 3), day(2025, 6, 20), day(2025, 7, 1)}
	created := make([]int64, 0, len(dues))
	for _, due := range dues {
		l, err := f.svc.CreateLoan(ctx, application.CreateLoanInput{UserID: f.reader.ID, BookID: f.book.ID, DueDate: due})
		require.NoError(t, err)
		created = append(created, l.ID)
	}
	_, err := f.svc.CreateLoan(ctx, application.CreateLoanInput{UserID: other.ID, BookID: f.book.ID, DueDate: day(2025, 7, 2)})
	require.NoError(t, err)

	mine, err := f.svc.ListLoansByUser(ctx, f.reader.ID)
	require.NoError(t, err)
	got := make([]int64, 0, len(mine))
	for _, l := range mine {
		got = append(got, l.ID)
	}
	assert.Equal(t, created, got, "creation order, not due date order")

	none, err := f.svc.ListLoansByUser(ctx, 12345)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
