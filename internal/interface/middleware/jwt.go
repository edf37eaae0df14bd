package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-library-backend/pkg/helpers"
)

const (
	CtxUserIDKey   = "userID"
	CtxUserRoleKey = "userRole"
)

// accessToken reads the access_token cookie, falling back to an Authorization: Bearer header.
func accessToken(c *gin.Context) string {
	if tok := helpers.AccessTokenFrom(c); tok != "" {
		return tok
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// UserRole returns the role claim set by Auth, or "" for anonymous requests.
func UserRole(c *gin.Context) string {
	return c.GetString(CtxUserRoleKey)
}
