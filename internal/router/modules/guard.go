package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	"github.com/oksasatya/go-library-backend/internal/interface/middleware"
	"github.com/oksasatya/go-library-backend/pkg/helpers"
)

// Guard builds the authentication chain shared by the modules.
type Guard struct {
	Redis    *redis.Client
	JWT      *helpers.JWTManager
	Required bool
}

// Session always authenticates; used by routes that only make sense for a logged-in user.
func (g Guard) Session() []gin.HandlerFunc {
	return []gin.HandlerFunc{middleware.Auth(g.Redis, g.JWT)}
}

// Protect authenticates, and checks roles when given, only if Required is set.
func (g Guard) Protect(roles ...entity.Role) []gin.HandlerFunc {
	if !g.Required {
		return nil
	}
	chain := g.Session()
	if len(roles) > 0 {
		chain = append(chain, middleware.RequireRole(roles...))
	}
	return chain
}
