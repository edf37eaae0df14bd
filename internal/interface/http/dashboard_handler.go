package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/internal/application"
	"github.com/oksasatya/go-library-backend/pkg/response"
)

type DashboardHandler struct {
	Svc    *application.DashboardService
	Logger *logrus.Logger
}

func NewDashboardHandler(svc *application.DashboardService, logger *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{Svc: svc, Logger: logger}
}

// Admin GET /api/dashboard/admin
func (h *DashboardHandler) Admin(c *gin.Context) {
	d, err := h.Svc.GetAdminDashboard(c.Request.Context())
	if err != nil {
		writeError(c, h.Logger, "admin dashboard", err)
		return
	}
	response.Success(c, http.StatusOK, d, "admin dashboard", nil)
}
