package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/bg-companion-api/internal/interface/middleware"
)

const (
	publicLimit    = 10  // per IP and route
	protectedLimit = 120 // per user
)

// protected is the chain in front of every session-only route.
func protected(session gin.HandlerFunc, rdb *redis.Client) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		session,
		middleware.RateLimit(rdb, protectedLimit, time.Minute, middleware.KeyByUser()),
	}
}
