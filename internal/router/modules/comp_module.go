package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/bg-companion-api/internal/interface/http"
)

type CompModule struct {
	Handler *handlers.CompHandler
	Session gin.HandlerFunc
	RDB     *redis.Client
}

func NewCompModule(h *handlers.CompHandler, session gin.HandlerFunc, rdb *redis.Client) *CompModule {
	return &CompModule{Handler: h, Session: session, RDB: rdb}
}

func (m *CompModule) Register(rg *gin.RouterGroup) {
	comps := rg.Group("/comps", protected(m.Session, m.RDB)...)
	{
		comps.POST("/create", m.Handler.Create)
		comps.GET("/my-comps", m.Handler.Mine)
		comps.GET("/search", m.Handler.Search)
		comps.GET("/:id", m.Handler.Get)
		comps.PUT("/:id", m.Handler.Update)
		comps.DELETE("/:id", m.Handler.Delete)
	}
}
