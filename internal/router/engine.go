package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bg-companion-api/internal/container"
	handlers "github.com/oksasatya/bg-companion-api/internal/interface/http"
	"github.com/oksasatya/bg-companion-api/internal/interface/middleware"
	"github.com/oksasatya/bg-companion-api/pkg/validation"
)

// New returns the Gin engine with global middleware and every module mounted.
func New(c *container.Container) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     c.Cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if c.Cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	r.GET("/healthcheck", handlers.Health)

	reg := NewRegistry(r)
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}
