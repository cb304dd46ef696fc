package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hrms-service/internal/api/http/handlers"
	"github.com/spec-kit/hrms-service/internal/auth"
	"github.com/spec-kit/hrms-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Staff          *handlers.StaffHandler
	Roles          *handlers.RolesHandler
	Attendance     *handlers.AttendanceHandler
	Leave          *handlers.LeaveHandler
	Assistant      *handlers.AssistantHandler
	AuthMiddleware *auth.AuthMiddleware
	Resolver       *auth.PermissionResolver
}

// RegisterRoutes wires HTTP routes. HR routes sit behind the permission
// resolver; role management and staff administration behind the admin gate.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/organizations/register", cfg.Auth.RegisterOrganization)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, cfg.Auth.ChangePassword)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	staff := api.Group("/staff")
	staff.Get("/", auth.RequirePermission(cfg.Resolver, "staff", domain.PermissionView, ""), cfg.Staff.List)
	staff.Get("/:id", auth.RequirePermission(cfg.Resolver, "staff", domain.PermissionView, ""), cfg.Staff.Get)
	staff.Post("/", auth.RequireAdmin(), cfg.Auth.RegisterStaff)
	staff.Put("/:id/role", auth.RequireAdmin(), cfg.Staff.AssignRole)
	staff.Delete("/:id", auth.RequireAdmin(), cfg.Staff.Archive)

	roles := api.Group("/roles", auth.RequireAdmin())
	roles.Get("/", cfg.Roles.List)
	roles.Get("/:name", cfg.Roles.Get)
	roles.Post("/", cfg.Roles.Create)
	roles.Put("/:name", cfg.Roles.Update)
	roles.Delete("/:name", cfg.Roles.Delete)

	attendance := api.Group("/attendance")
	attendance.Post("/check-in", auth.RequirePermission(cfg.Resolver, "attendance", domain.PermissionFull, "check-in"), cfg.Attendance.CheckIn)
	attendance.Post("/check-out", auth.RequirePermission(cfg.Resolver, "attendance", domain.PermissionFull, "check-in"), cfg.Attendance.CheckOut)
	attendance.Get("/", auth.RequirePermission(cfg.Resolver, "attendance", domain.PermissionView, ""), cfg.Attendance.ListMine)

	leaves := api.Group("/leaves")
	leaves.Post("/", auth.RequirePermission(cfg.Resolver, "leave", domain.PermissionFull, "apply"), cfg.Leave.Create)
	leaves.Get("/", auth.RequirePermission(cfg.Resolver, "leave", domain.PermissionView, ""), cfg.Leave.ListMine)
	leaves.Put("/:id/decision", auth.RequireAdmin(), cfg.Leave.Decide)

	api.Post("/assistant/query", cfg.Assistant.Query)
}
