// Package container holds the components built at startup and passes them, explicitly,
// to the router. There is no package-level state.
package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/config"
	"github.com/oksasatya/go-library-backend/internal/application"
	repo "github.com/oksasatya/go-library-backend/internal/domain/repository"
	"github.com/oksasatya/go-library-backend/internal/infrastructure/memory"
	"github.com/oksasatya/go-library-backend/internal/infrastructure/messaging"
	pginfra "github.com/oksasatya/go-library-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/go-library-backend/pkg/helpers"
	mailtpl "github.com/oksasatya/go-library-backend/pkg/mailer/templates"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager

	// Optional infrastructure; nil disables the feature that needs it.
	PG     *pgxpool.Pool
	Redis  *redis.Client
	GCS    *storage.Client
	ES     *elasticsearch.Client
	Rabbit *helpers.RabbitPublisher

	Users repo.UserRepository
	Books repo.BookRepository
	Loans repo.LoanRepository
}

func New(cfg *config.Config, logger *logrus.Logger) *Container {
	return &Container{
		Config: cfg,
		Logger: logger,
		JWT:    helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL),
	}
}

// UsePostgres backs the repositories with pool.
func (c *Container) UsePostgres(pool *pgxpool.Pool) {
	c.PG = pool
	c.Users = pginfra.NewUserRepository(pool)
	c.Books = pginfra.NewBookRepository(pool)
	c.Loans = pginfra.NewLoanRepository(pool)
}

// UseMemory backs the repositories with an in-process store.
func (c *Container) UseMemory(store *memory.Store) {
	c.Users = store.Users()
	c.Books = store.Books()
	c.Loans = store.Loans()
}

// Notifier returns the loan notifier, or nil when RabbitMQ is not configured.
func (c *Container) Notifier() application.LoanNotifier {
	if c.Rabbit == nil {
		return nil
	}
	brand := mailtpl.Brand{AppName: c.Config.AppName, LogoURL: c.Config.LogoURL, SupportURL: c.Config.SupportURL}
	return messaging.NewLoanPublisher(c.Rabbit, brand, c.Config.MailSendEnabled)
}

func (c *Container) LoanService() *application.LoanService {
	return application.NewLoanService(c.Users, c.Books, c.Loans, c.Notifier(), c.Logger)
}

func (c *Container) DashboardService() *application.DashboardService {
	svc := application.NewDashboardService(c.Users, c.Books, c.Loans, c.Logger)
	if c.Config.UpcomingReturnsLimit > 0 {
		svc.UpcomingLimit = c.Config.UpcomingReturnsLimit
	}
	return svc
}

func (c *Container) AuthService() *application.AuthService {
	return application.NewAuthService(c.Users, c.JWT, c.Redis, c.Logger)
}

func (c *Container) BookService() *application.BookService {
	return application.NewBookService(c.Books, c.GCS, c.Config.GCSBucket, c.ES, c.Config.ESBooksIndex, c.Logger)
}
