package routes

import (
	"time"

	"carconnect/internal/adapters/http/handlers"
	"carconnect/internal/adapters/http/middleware"
	"carconnect/internal/config"
	"carconnect/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// availableVehiclesMaxAge is how long clients may cache the public vehicle list
const availableVehiclesMaxAge = time.Minute

// Setup configures all routes for the application
func Setup(app *fiber.App, reg *services.Registry, cfg *config.Config, dbCheck func() error) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, dbCheck)
	authHandler := handlers.NewAuthHandler(reg.Auth, reg.Customers, reg.Admins)
	vehicleHandler := handlers.NewVehicleHandler(reg.Vehicles)
	customerHandler := handlers.NewCustomerHandler(reg.Customers)
	adminHandler := handlers.NewAdminHandler(reg.Admins)
	reservationHandler := handlers.NewReservationHandler(reg.Reservations)
	reportHandler := handlers.NewReportHandler(reg.Reports)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := apiV1.Group("/auth", middleware.NoCacheHeaders())
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Public catalogue
	apiV1.Get("/vehicles/available", middleware.CacheControl(availableVehiclesMaxAge), vehicleHandler.ListAvailable)

	// Customer area
	customerRoutes := apiV1.Group("/customer",
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.CustomerOnly(),
		middleware.NoCacheHeaders(),
	)
	setupCustomerRoutes(customerRoutes, customerHandler, reservationHandler)

	// Admin area
	adminRoutes := apiV1.Group("/admin",
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.AdminOnly(),
		middleware.NoCacheHeaders(),
	)
	setupVehicleRoutes(adminRoutes.Group("/vehicles"), vehicleHandler, reservationHandler)
	setupCustomerAdminRoutes(adminRoutes.Group("/customers"), customerHandler)
	setupAdminRoutes(adminRoutes.Group("/admins"), adminHandler)
	setupReservationAdminRoutes(adminRoutes.Group("/reservations"), reservationHandler)
	setupReportRoutes(adminRoutes.Group("/reports"), reportHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	limit := middleware.AuthRateLimiter()

	router.Post("/customer/register", limit, handler.RegisterCustomer)
	router.Post("/customer/login", limit, handler.CustomerLogin)
	router.Post("/admin/login", limit, handler.AdminLogin)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg.JWT.Secret), handler.Me)
}

// setupCustomerRoutes configures the logged in customer's routes
func setupCustomerRoutes(router fiber.Router, customers *handlers.CustomerHandler, reservations *handlers.ReservationHandler) {
	router.Get("/profile", customers.GetProfile)
	router.Put("/profile", customers.UpdateProfile)

	router.Post("/reservations", reservations.Book)
	router.Get("/reservations", reservations.Mine)
	router.Post("/reservations/:id/cancel", reservations.CancelMine)
}

// setupVehicleRoutes configures fleet management routes (Admin only)
func setupVehicleRoutes(router fiber.Router, handler *handlers.VehicleHandler, reservations *handlers.ReservationHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/registration/:regNo", handler.GetByRegistration)
	router.Get("/:id", handler.Get)
	router.Get("/:id/reservations", reservations.ByVehicle)
	router.Put("/:id", handler.Update)
	router.Put("/:id/availability", handler.SetAvailability)
	router.Delete("/:id", handler.Delete)
}

// setupCustomerAdminRoutes configures customer management routes (Admin only)
func setupCustomerAdminRoutes(router fiber.Router, handler *handlers.CustomerHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupAdminRoutes configures admin account routes (Admin only)
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler) {
	router.Get("/", handler.List)
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupReservationAdminRoutes configures reservation management routes (Admin only)
func setupReservationAdminRoutes(router fiber.Router, handler *handlers.ReservationHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Put("/:id/status", handler.UpdateStatus)
	router.Post("/:id/cancel", handler.Cancel)
}

// setupReportRoutes configures report routes (Admin only)
func setupReportRoutes(router fiber.Router, handler *handlers.ReportHandler) {
	router.Get("/reservations", handler.ReservationHistory)
	router.Get("/utilization", handler.VehicleUtilization)
	router.Get("/revenue", handler.Revenue)
}
