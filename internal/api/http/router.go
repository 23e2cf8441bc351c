package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/balayogigmcs/labms/internal/api/http/handlers"
	"github.com/balayogigmcs/labms/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireAccountManager())
	users.Post("", cfg.Users.CreateUser)
	users.Get("", cfg.Users.ListUsers)
	users.Patch("/:id/role", cfg.Users.UpdateUserRole)
	users.Delete("/:id", cfg.Users.RemoveUser)

	reports := app.Group("/reports", cfg.AuthMiddleware.Handle)
	reports.Get("/permissions", cfg.Reports.GetPermissions)
	reports.Post("", cfg.Reports.SubmitReport)
	reports.Get("", cfg.Reports.ListReports)
	reports.Get("/:id", cfg.Reports.GetReport)
	reports.Patch("/:id/fields", cfg.Reports.EditField)
	reports.Patch("/:id/results", cfg.Reports.EditNestedResult)
	reports.Post("/:id/status", cfg.Reports.TransitionStatus)
}
