package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-library-backend/internal/application"
	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/infrastructure/memory"
	"github.com/oksasatya/go-library-backend/internal/seed"
	"github.com/oksasatya/go-library-backend/pkg/helpers"
)

var today = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

func runSeed(t *testing.T, w seed.Writer) *seed.Result {
	t.Helper()
	logger, _ := test.NewNullLogger()
	res, err := seed.Run(context.Background(), w, today, logger)
	require.NoError(t, err)
	return res
}

func TestRun_MemoryStore(t *testing.T) {
	store := memory.NewStore()
	res := runSeed(t, seed.NewMemoryWriter(store))
	ctx := context.Background()

	assert.Len(t, res.Books, 12)
	assert.Equal(t, 4, res.Users)
	assert.Equal(t, 7, res.Loans)

	admins, err := store.Users().CountByRole(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admins)

	admin, err := store.Users().GetByEmail(ctx, "admin@biblioteca.dev")
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(admin.Password, seed.DemoPassword))

	for _, b := range res.Books {
		assert.NotZero(t, b.ID)
		assert.NotEmpty(t, b.CategoryName())
		assert.NotEmpty(t, b.AuthorName())
	}
}

func TestRun_DashboardSeesOverdueAndUpcoming(t *testing.T) {
	store := memory.NewStore()
	runSeed(t, seed.NewMemoryWriter(store))

	logger, _ := test.NewNullLogger()
	svc := application.NewDashboardService(store.Users(), store.Books(), store.Loans(), logger)
	svc.Now = func() time.Time { return today }
	d, err := svc.GetAdminDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), d.TotalBooks)
	assert.Equal(t, int64(2), d.LateLoans)
	assert.Equal(t, int64(5), d.BorrowedBooks)
	assert.Len(t, d.BooksByCategory, 7)
	assert.Len(t, d.UpcomingReturns, 5)
}

func TestRun_TwiceDoesNotDuplicate(t *testing.T) {
	store := memory.NewStore()
	w := seed.NewMemoryWriter(store)
	runSeed(t, w)
	second := runSeed(t, w)

	assert.Equal(t, 0, second.Loans)
	total, err := store.Books().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	users, err := store.Users().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), users)
}

func TestRun_LogsSummary(t *testing.T) {
	logger, hook := test.NewNullLogger()
	_, err := seed.Run(context.Background(), seed.NewMemoryWriter(memory.NewStore()), today, logger)
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "seed finished", entry.Message)
	assert.Equal(t, 7, entry.Data["loans"])
}
