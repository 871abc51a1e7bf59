package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/realty-service/internal/api/http/handlers"
	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Approvals      *handlers.ApprovalsHandler
	Agents         *handlers.AgentsHandler
	Companies      *handlers.CompaniesHandler
	Properties     *handlers.PropertiesHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes. Property listings and details are
// readable anonymously; agent and company reads require a session.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/verify-email", cfg.Auth.VerifyEmail)
	authGroup.Post("/resend-verification", cfg.Auth.ResendVerification)
	authGroup.Post("/forgot-password", cfg.Auth.ForgotPassword)
	authGroup.Post("/reset-password", cfg.Auth.ResetPassword)

	agents := app.Group("/agents", cfg.AuthMiddleware.Handle)
	agents.Get("/", cfg.Agents.List)
	agents.Post("/", cfg.Agents.Create)
	agents.Get("/:id", cfg.Agents.Get)

	companies := app.Group("/companies", cfg.AuthMiddleware.Handle)
	companies.Get("/", cfg.Companies.List)
	companies.Post("/", cfg.Companies.Create)
	companies.Get("/:id", cfg.Companies.Get)

	app.Get("/properties/:kind", cfg.Properties.List)
	app.Post("/properties/:kind", cfg.AuthMiddleware.Handle, cfg.Properties.Create)
	// pending before :id so the static segment is not captured as an id
	app.Get("/properties/:kind/pending", cfg.AuthMiddleware.Handle, cfg.Properties.ListPending)
	app.Get("/properties/:kind/:id", cfg.Properties.Get)

	app.Put("/approvals", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Approvals.Update)
}
