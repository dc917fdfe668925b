package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/emberworks/studio-portal/internal/api/http/handlers"
	"github.com/emberworks/studio-portal/internal/gate"
	"github.com/emberworks/studio-portal/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Gate        *gate.Gate
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Users       *handlers.UsersHandler
	Roles       *handlers.RolesHandler
	Settings    *handlers.SettingsHandler
	Audit       *handlers.AuditHandler
	DevLogs     *handlers.DevLogsHandler
	Projects    *handlers.ProjectsHandler
	Tickets     *handlers.TicketsHandler
	Suggestions *handlers.SuggestionsHandler
	Metrics     *observability.Metrics
}

// RegisterRoutes wires HTTP routes. The gate runs ahead of every route, so
// handlers only ever see requests it allowed through.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Gate.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	admin := app.Group("/api/admin")
	admin.Get("/users", cfg.Users.List)
	admin.Post("/users", cfg.Users.Create)
	admin.Get("/roles", cfg.Roles.List)
	admin.Get("/settings", cfg.Settings.Get)
	admin.Put("/settings", cfg.Settings.Update)
	admin.Get("/auditlog", cfg.Audit.List)

	admin.Get("/devlogs", cfg.DevLogs.List)
	admin.Post("/devlogs", cfg.DevLogs.Create)
	admin.Get("/devlogs/:id", cfg.DevLogs.Get)
	admin.Put("/devlogs/:id", cfg.DevLogs.Update)
	admin.Delete("/devlogs/:id", cfg.DevLogs.Archive)

	admin.Get("/projects", cfg.Projects.List)
	admin.Post("/projects", cfg.Projects.Create)
	admin.Get("/projects/:id", cfg.Projects.Get)
	admin.Put("/projects/:id", cfg.Projects.Update)
	admin.Delete("/projects/:id", cfg.Projects.Archive)

	tickets := app.Group("/api/tickets")
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Put("/:id", cfg.Tickets.Update)
	tickets.Post("/:id/replies", cfg.Tickets.Reply)

	suggestions := app.Group("/api/suggestions")
	suggestions.Get("/", cfg.Suggestions.List)
	suggestions.Post("/", cfg.Suggestions.Create)
}
