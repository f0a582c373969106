package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/bg-companion-api/internal/interface/http"
	"github.com/oksasatya/bg-companion-api/internal/interface/middleware"
)

// AuthModule mounts the session endpoints.
// Public: POST /auth/register, POST /auth/login
// Protected: GET /auth/me, POST /auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Session gin.HandlerFunc
	RDB     *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, session gin.HandlerFunc, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Session: session, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	limiter := middleware.RateLimit(m.RDB, publicLimit, time.Minute, middleware.KeyByIPAndPath())
	rg.POST("/auth/register", limiter, m.Handler.Register)
	rg.POST("/auth/login", limiter, m.Handler.Login)

	auth := rg.Group("/auth", protected(m.Session, m.RDB)...)
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/logout", m.Handler.Logout)
	}
}
