package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/bg-companion-api/internal/interface/http"
)

type CardModule struct {
	Handler *handlers.CardHandler
	Session gin.HandlerFunc
	RDB     *redis.Client
}

func NewCardModule(h *handlers.CardHandler, session gin.HandlerFunc, rdb *redis.Client) *CardModule {
	return &CardModule{Handler: h, Session: session, RDB: rdb}
}

func (m *CardModule) Register(rg *gin.RouterGroup) {
	cards := rg.Group("/blizzard/cards", protected(m.Session, m.RDB)...)
	{
		cards.GET("/common", m.Handler.Minions)
		cards.GET("/hero", m.Handler.Heroes)
		cards.GET("/spell", m.Handler.Spells)
	}
}
