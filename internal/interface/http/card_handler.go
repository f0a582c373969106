package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bg-companion-api/internal/application"
	"github.com/oksasatya/bg-companion-api/pkg/response"
)

// CardHandler proxies the card catalog. Upstream bodies are passed through as data.
type CardHandler struct {
	Svc    *application.CardService
	Logger *logrus.Logger
}

func NewCardHandler(svc *application.CardService, logger *logrus.Logger) *CardHandler {
	return &CardHandler{Svc: svc, Logger: logger}
}

// Minions GET /api/v1/blizzard/cards/common?tier=&type=
func (h *CardHandler) Minions(c *gin.Context) {
	body, err := h.Svc.Minions(c.Request.Context(), c.Query("tier"), c.Query("type"))
	h.write(c, body, err)
}

// Heroes GET /api/v1/blizzard/cards/hero
func (h *CardHandler) Heroes(c *gin.Context) {
	body, err := h.Svc.Heroes(c.Request.Context())
	h.write(c, body, err)
}

// Spells GET /api/v1/blizzard/cards/spell?tier=
func (h *CardHandler) Spells(c *gin.Context) {
	body, err := h.Svc.Spells(c.Request.Context(), c.Query("tier"))
	h.write(c, body, err)
}

func (h *CardHandler) write(c *gin.Context, body json.RawMessage, err error) {
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Warn("card catalog request failed")
		}
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, body, "", nil)
}
