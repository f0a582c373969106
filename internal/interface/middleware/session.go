package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bg-companion-api/internal/domain/entity"
	"github.com/oksasatya/bg-companion-api/pkg/helpers"
	"github.com/oksasatya/bg-companion-api/pkg/response"
)

// CtxIdentityKey holds the entity.Identity of the authenticated caller.
const CtxIdentityKey = "user"

// TokenVerifier checks a session token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (map[string]any, error)
}

// Session reads the access_token cookie, verifies it, and injects the
// caller identity into the context.
func Session(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.Abort(c, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Invalid session token", nil)
			return
		}
		id, err := entity.IdentityFromClaims(claims)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Invalid session token", nil)
			return
		}
		c.Set(CtxIdentityKey, id)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by Session.
func CurrentIdentity(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return entity.Identity{}, false
	}
	id, ok := v.(entity.Identity)
	return id, ok
}
