package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// TokenCookies writes and reads the HttpOnly, SameSite=Lax session cookies.
type TokenCookies struct {
	Domain string
	Secure bool
}

func NewTokenCookies(domain string, secure bool) TokenCookies {
	return TokenCookies{Domain: domain, Secure: secure}
}

func (t TokenCookies) set(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", t.Domain, t.Secure, true)
}

// SetPair stores both tokens; each cookie expires with its token.
func (t TokenCookies) SetPair(c *gin.Context, access string, aexp time.Time, refresh string, rexp time.Time) {
	t.set(c, AccessTokenCookie, access, secondsUntil(aexp))
	t.set(c, RefreshTokenCookie, refresh, secondsUntil(rexp))
}

func (t TokenCookies) Clear(c *gin.Context) {
	t.set(c, AccessTokenCookie, "", -1)
	t.set(c, RefreshTokenCookie, "", -1)
}

// AccessTokenFrom returns the access token cookie or "".
func AccessTokenFrom(c *gin.Context) string {
	v, _ := c.Cookie(AccessTokenCookie)
	return v
}

// RefreshTokenFrom returns the refresh token cookie or "".
func RefreshTokenFrom(c *gin.Context) string {
	v, _ := c.Cookie(RefreshTokenCookie)
	return v
}

func secondsUntil(exp time.Time) int {
	return max(int(time.Until(exp)/time.Second), 0)
}
