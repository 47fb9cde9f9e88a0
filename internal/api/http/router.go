package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poopticket/citation-service/internal/api/http/handlers"
	"github.com/poopticket/citation-service/internal/auth"
	"github.com/poopticket/citation-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Citations      *handlers.CitationsHandler
	Auth           *handlers.AuthHandler
	AdminCitations *handlers.AdminCitationsHandler
	AdminDirectory *handlers.AdminDirectoryHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/citations/search", cfg.Citations.Search)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdminAccess())
	admin.Get("/citations", cfg.AdminCitations.List)
	admin.Post("/citations", cfg.AdminCitations.Create)

	superAdmin := auth.RequireRole(domain.RoleSuperAdmin)
	admin.Get("/summary", superAdmin, cfg.AdminDirectory.Overview)
	admin.Get("/properties", superAdmin, cfg.AdminDirectory.ListProperties)
	admin.Post("/properties", superAdmin, cfg.AdminDirectory.CreateProperty)
	admin.Get("/users", superAdmin, cfg.AdminDirectory.ListUsers)
	admin.Post("/users", superAdmin, cfg.AdminDirectory.CreateUser)
	admin.Put("/users/:id/properties", superAdmin, cfg.AdminDirectory.AssignProperties)
	admin.Post("/users/:id/password-reset", superAdmin, cfg.AdminDirectory.RequestPasswordReset)
}
