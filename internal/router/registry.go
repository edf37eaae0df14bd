package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/pkg/response"
)

type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	Logger  *logrus.Logger
	shared  []gin.HandlerFunc
	modules []Module
}

func NewRegistry(engine *gin.Engine, logger *logrus.Logger) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api"), Logger: logger}
}

// Use adds middleware for every /api route. It only takes effect before RegisterAll.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.shared = append(r.shared, mw...)
}

func (r *Registry) Add(mod ...Module) {
	r.modules = append(r.modules, mod...)
}

// Names lists the added modules in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.modules))
	for _, m := range r.modules {
		names = append(names, m.Name())
	}
	return names
}

// RegisterAll mounts GET /api/health and then every module.
func (r *Registry) RegisterAll() {
	r.API.Use(r.shared...)

	names := r.Names()
	r.API.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"modules": names}, "ok", nil)
	})

	for _, m := range r.modules {
		m.Register(r.API)
	}
	if r.Logger != nil {
		r.Logger.WithField("modules", names).Info("routes registered")
	}
}
