package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	handlers "github.com/oksasatya/go-library-backend/internal/interface/http"
	"github.com/oksasatya/go-library-backend/internal/interface/middleware"
)

// BookModule: GET /books, GET /books/search, GET /books/:id, POST /books/:id/cover
type BookModule struct {
	Handler *handlers.BookHandler
	Guard   Guard
}

func NewBookModule(h *handlers.BookHandler, g Guard) *BookModule {
	return &BookModule{Handler: h, Guard: g}
}

func (m *BookModule) Name() string { return "books" }

func (m *BookModule) Register(rg *gin.RouterGroup) {
	searchLimiter := middleware.RateLimit(m.Guard.Redis, 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowRole(string(entity.RoleAdmin)))

	books := rg.Group("/books")
	books.GET("", m.Handler.List)
	books.GET("/search", searchLimiter, m.Handler.Search)
	books.GET("/:id", m.Handler.Get)

	admin := books.Group("", m.Guard.Protect(entity.RoleAdmin)...)
	admin.POST("/:id/cover", m.Handler.UploadCover)
}
