package server

import (
	"log"

	"marketplace-billing-be/internal/bootstrap"
	"marketplace-billing-be/internal/config"
	"marketplace-billing-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware())

	// Rendered payment receipts
	app.Static("/receipts", cfg.Billing.ReceiptDir)

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.PlanController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.SubscriptionController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.InvoiceController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.PaymentController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.StatsController.RegisterRoutes(api, serverutils.JwtMiddleware)
	c.SettingsController.RegisterRoutes(api, serverutils.JwtMiddleware)
}
