// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"veriloan/internal/handlers"
	"veriloan/internal/middleware"
	"veriloan/internal/models"
	"veriloan/internal/repositories"
	"veriloan/internal/services/auth"
	"veriloan/internal/services/classifier"
	"veriloan/internal/services/decision"
	"veriloan/internal/services/registry"
	"veriloan/internal/services/user"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)
	registryRepo := repositories.NewVerifiedApplicantRepository(repositories.DB, repositories.CacheService)
	loanRepo := repositories.NewLoanApplicationRepository(repositories.DB)

	// Initialize services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, registryRepo)
	registryService := registry.NewService(registryRepo)

	metrics := decision.NewPrometheusMetrics(prometheus.DefaultRegisterer)
	predictor := classifier.NewAdapter(classifier.NewTrainedModel())
	decisionService := decision.NewService(registryRepo, loanRepo, predictor, metrics)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	loanHandler := handlers.NewLoanHandler(decisionService)
	adminHandler := handlers.NewAdminHandler(registryService, userService)
	documentHandler := handlers.NewDocumentHandler(registryService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to VeriLoan API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})
	app.Get("/health", handlers.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Public endpoints (no auth required)
	api := app.Group("/api")
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.LogoutUser)
	protected.Post("/change-password", authHandler.ChangePassword)

	setupLoanRoutes(protected, loanHandler)
	setupAdminRoutes(app, authMiddleware, adminHandler, loanHandler, documentHandler)
}

func setupLoanRoutes(router fiber.Router, loanHandler *handlers.LoanHandler) {
	loans := router.Group("/loans")
	loans.Post("/apply", middleware.HasPermission(models.PermissionLoanApply), loanHandler.Apply)
	loans.Get("/", middleware.HasPermission(models.PermissionLoanRead), loanHandler.MyApplications)
	loans.Get("/latest", middleware.HasPermission(models.PermissionLoanRead), loanHandler.LatestApplication)
}

func setupAdminRoutes(app *fiber.App, authMiddleware *middleware.AuthMiddleware, adminHandler *handlers.AdminHandler, loanHandler *handlers.LoanHandler, documentHandler *handlers.DocumentHandler) {
	admin := app.Group("/api/admin", authMiddleware.Handler, middleware.AdminAuthMiddleware)

	// Registry maintenance
	admin.Get("/registry", middleware.HasPermission(models.PermissionRegistryRead), adminHandler.ListVerifiedApplicants)
	admin.Get("/registry/statuses", middleware.HasPermission(models.PermissionRegistryRead), adminHandler.EmploymentStatuses)
	admin.Get("/registry/:email", middleware.HasPermission(models.PermissionRegistryRead), adminHandler.GetVerifiedApplicant)
	admin.Post("/registry", middleware.HasPermission(models.PermissionRegistryWrite), adminHandler.UpsertVerifiedApplicant)
	admin.Put("/registry/:email/status", middleware.HasPermission(models.PermissionRegistryWrite), adminHandler.UpdateRegistryStatus)
	admin.Delete("/registry/:email", middleware.HasPermission(models.PermissionRegistryWrite), adminHandler.DeleteVerifiedApplicant)
	admin.Get("/registry/:email/documents/:kind", middleware.HasPermission(models.PermissionRegistryRead), documentHandler.Download)

	// Applications
	admin.Get("/applications", middleware.HasPermission(models.PermissionReadAdmin), loanHandler.ListAll)
	admin.Put("/applications/:id/prediction", middleware.HasPermission(models.PermissionWriteAdmin), loanHandler.UpdatePrediction)

	// User administration
	admin.Get("/users", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.ListUsers)
	admin.Delete("/users/:id", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.DeleteUser)
}
