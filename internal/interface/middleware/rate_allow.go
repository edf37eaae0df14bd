package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the limiter for loopback and RFC 1918 / ULA clients.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		ip := net.ParseIP(clientIP(c))
		return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
	}
}

// AllowRole bypasses the limiter for authenticated users holding role.
func AllowRole(role string) AllowFunc {
	return func(c *gin.Context) bool {
		return UserRole(c) == role
	}
}
