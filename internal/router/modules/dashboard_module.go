package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	handlers "github.com/oksasatya/go-library-backend/internal/interface/http"
)

// DashboardModule: GET /dashboard/admin
type DashboardModule struct {
	Handler *handlers.DashboardHandler
	Guard   Guard
}

func NewDashboardModule(h *handlers.DashboardHandler, g Guard) *DashboardModule {
	return &DashboardModule{Handler: h, Guard: g}
}

func (m *DashboardModule) Name() string { return "dashboard" }

func (m *DashboardModule) Register(rg *gin.RouterGroup) {
	dash := rg.Group("/dashboard", m.Guard.Protect(entity.RoleAdmin)...)
	dash.GET("/admin", m.Handler.Admin)
}
