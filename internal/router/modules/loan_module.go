package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-library-backend/internal/interface/http"
	"github.com/oksasatya/go-library-backend/internal/interface/middleware"
)

// LoanModule: POST /loans, GET /loans/user/:userId
type LoanModule struct {
	Handler *handlers.LoanHandler
	Guard   Guard
}

func NewLoanModule(h *handlers.LoanHandler, g Guard) *LoanModule {
	return &LoanModule{Handler: h, Guard: g}
}

func (m *LoanModule) Name() string { return "loans" }

func (m *LoanModule) Register(rg *gin.RouterGroup) {
	loans := rg.Group("/loans", m.Guard.Protect()...)
	loans.POST("", middleware.RateLimit(m.Guard.Redis, 60, time.Minute, middleware.KeyByUserID(), nil), m.Handler.Create)
	loans.GET("/user/:userId", m.Handler.ListByUser)
}
