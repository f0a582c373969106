package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const SessionCookieName = "access_token"

// Manager writes the session cookie. The API is called cross-site from the
// front-end, so the cookie is SameSite=None and therefore must be Secure.
type Manager struct {
	Domain string
	Secure bool
}

func NewCookie(domain string, secure bool) *Manager {
	return &Manager{Domain: domain, Secure: secure}
}

// SetSession stores the token. A zero exp yields a browser-session cookie.
func (m *Manager) SetSession(c *gin.Context, token string, exp time.Time) {
	c.SetSameSite(http.SameSiteNoneMode)
	maxAge := 0
	if !exp.IsZero() {
		maxAge = maxAgeFrom(exp)
	}
	c.SetCookie(SessionCookieName, token, maxAge, "/", m.Domain, m.Secure, true)
}

// Clear overwrites the session cookie with an empty, immediately expiring value.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(SessionCookieName, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(exp time.Time) int {
	sec := int(time.Until(exp).Seconds())
	if sec < 1 {
		return 1
	}
	return sec
}
