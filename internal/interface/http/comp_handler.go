package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bg-companion-api/internal/application"
	"github.com/oksasatya/bg-companion-api/internal/interface/middleware"
	"github.com/oksasatya/bg-companion-api/pkg/response"
	"github.com/oksasatya/bg-companion-api/pkg/validation"
)

type CompHandler struct {
	Svc    *application.CompService
	Logger *logrus.Logger
}

func NewCompHandler(svc *application.CompService, logger *logrus.Logger) *CompHandler {
	return &CompHandler{Svc: svc, Logger: logger}
}

// Card lists must be present; an empty list is fine.
type compRequest struct {
	Name       string   `json:"name" binding:"required"`
	CoreCards  []string `json:"coreCards" binding:"required,dive,url"`
	AddonCards []string `json:"addonCards" binding:"required,dive,url"`
	HeroCards  []string `json:"heroCards" binding:"required,dive,url"`
	SpellCards []string `json:"spellCards" binding:"required,dive,url"`
}

func (r compRequest) input() application.CompInput {
	return application.CompInput{
		Name:       r.Name,
		CoreCards:  r.CoreCards,
		AddonCards: r.AddonCards,
		HeroCards:  r.HeroCards,
		SpellCards: r.SpellCards,
	}
}

// owner returns the caller id; Session runs before every comp route.
func owner(c *gin.Context) (string, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return "", false
	}
	return id.ID, true
}

func compID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid comp id", map[string]string{"id": "must be a valid UUID"})
		return "", false
	}
	return id, true
}

// Create POST /api/v1/comps/create
func (h *CompHandler) Create(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	var req compRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	comp, err := h.Svc.Create(c.Request.Context(), uid, req.input())
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"comp": comp}, "Comp created successfully!", nil)
}

// Mine GET /api/v1/comps/my-comps
func (h *CompHandler) Mine(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	comps, err := h.Svc.ListMine(c.Request.Context(), uid)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"comps": comps}, "", map[string]any{"count": len(comps)})
}

// Search GET /api/v1/comps/search?q=&size=
func (h *CompHandler) Search(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	comps, err := h.Svc.Search(c.Request.Context(), uid, c.Query("q"), size)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"comps": comps}, "", map[string]any{"count": len(comps)})
}

// Get GET /api/v1/comps/:id
func (h *CompHandler) Get(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	id, ok := compID(c)
	if !ok {
		return
	}
	comp, err := h.Svc.Get(c.Request.Context(), uid, id)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"comp": comp}, "", nil)
}

// Update PUT /api/v1/comps/:id
func (h *CompHandler) Update(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	id, ok := compID(c)
	if !ok {
		return
	}
	var req compRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	comp, err := h.Svc.Update(c.Request.Context(), uid, id, req.input())
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"comp": comp}, "Comp updated successfully!", nil)
}

// Delete DELETE /api/v1/comps/:id
func (h *CompHandler) Delete(c *gin.Context) {
	uid, ok := owner(c)
	if !ok {
		return
	}
	id, ok := compID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), uid, id); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "Comp deleted successfully!")
}
