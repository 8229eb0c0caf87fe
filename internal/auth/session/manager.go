// Package session moves the opaque session token between the browser and
// the auth service. The token itself is stored server side; the cookie is
// only a handle.
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solarishq/solaris/internal/config"
)

// DefaultCookieName is short and unprefixed on purpose; the cookie carries
// no readable state.
const DefaultCookieName = "_sid"

const cookiePath = "/"

// Manager writes and reads the session cookie with consistent attributes
// (HttpOnly, SameSite=Lax, Secure per config).
type Manager struct {
	cookieName string
	secure     bool
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{
		cookieName: DefaultCookieName,
		secure:     cfg.AuthCookieSecure,
	}
}

func (m *Manager) CookieName() string { return m.cookieName }

// ReadToken extracts the session token from the request, reporting false
// when the cookie is absent or blank.
func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	token, err := c.Cookie(m.cookieName)
	if err != nil || strings.TrimSpace(token) == "" {
		return "", false
	}
	return token, true
}

// Set issues the cookie with a max-age matching the session row's expiry.
func (m *Manager) Set(c *gin.Context, value string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, maxAge, cookiePath, "", m.secure, true)
}

// Clear expires the cookie immediately. The session row is revoked
// separately by the auth service.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, cookiePath, "", m.secure, true)
}
