package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Assignments    *handlers.AssignmentsHandler
	Technicians    *handlers.TechniciansHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Post("/users", auth.RequireRole(domain.RoleAdmin), cfg.Users.CreateUser)

	protected.Post("/tickets", auth.RequireAuthenticated(), cfg.Tickets.CreateTicket)
	protected.Get("/tickets", auth.RequireRole(domain.RoleAdmin, domain.RoleTechnician), cfg.Tickets.ListTickets)
	protected.Get("/tickets/:id", auth.RequireAuthenticated(), cfg.Tickets.GetTicket)
	protected.Post("/tickets/:id/transition", auth.RequireRole(domain.RoleAdmin, domain.RoleTechnician), cfg.Tickets.Transition)
	protected.Post("/tickets/:id/assign", auth.RequireRole(domain.RoleAdmin), cfg.Assignments.AssignManual)

	protected.Post("/assignments/autotriage", auth.RequireRole(domain.RoleAdmin), cfg.Assignments.Autotriage)

	protected.Get("/technicians", auth.RequireRole(domain.RoleAdmin, domain.RoleTechnician), cfg.Technicians.ListRoster)
	protected.Patch("/technicians/:id/availability", auth.RequireRole(domain.RoleAdmin), cfg.Technicians.UpdateAvailability)
}
