package router

import (
	"github.com/oksasatya/go-library-backend/internal/container"
	handlers "github.com/oksasatya/go-library-backend/internal/interface/http"
	"github.com/oksasatya/go-library-backend/internal/router/modules"
)

// InitModules builds handlers from c and adds every feature module to r.
// It should be called once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	guard := modules.Guard{
		Redis:    c.Redis,
		JWT:      c.JWT,
		Required: c.Config.AuthRequired,
	}

	r.Add(
		modules.NewAuthModule(handlers.NewAuthHandler(c.AuthService(), c.Logger, c.Config.CookieDomain, c.Config.CookieSecure), guard),
		modules.NewLoanModule(handlers.NewLoanHandler(c.LoanService(), c.Logger), guard),
		modules.NewDashboardModule(handlers.NewDashboardHandler(c.DashboardService(), c.Logger), guard),
		modules.NewBookModule(handlers.NewBookHandler(c.BookService(), c.Logger), guard),
	)
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
