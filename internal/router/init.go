package router

import (
	"github.com/oksasatya/bg-companion-api/internal/application"
	"github.com/oksasatya/bg-companion-api/internal/container"
	handlers "github.com/oksasatya/bg-companion-api/internal/interface/http"
	"github.com/oksasatya/bg-companion-api/internal/interface/middleware"
	"github.com/oksasatya/bg-companion-api/internal/router/modules"
)

// InitModules builds services and handlers from the container and registers
// every feature module. Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	session := middleware.Session(c.JWT)

	authSvc := application.NewAuthService(c.Users, c.Hasher, c.JWT, c.Jobs, c.Logger)
	compSvc := application.NewCompService(c.Comps, c.CompIndex, c.Logger)
	cardSvc := application.NewCardService(c.Cards)

	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(authSvc, c.Cookies, c.JWT.ExpiresAt, c.Logger),
		session,
		c.Redis,
	))
	r.Add(modules.NewCompModule(handlers.NewCompHandler(compSvc, c.Logger), session, c.Redis))
	r.Add(modules.NewCardModule(handlers.NewCardHandler(cardSvc, c.Logger), session, c.Redis))
}
