package main

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/helpnexus/feedback-backend/internal/config"
	"github.com/helpnexus/feedback-backend/internal/database"
	"github.com/helpnexus/feedback-backend/internal/feedback"
	"github.com/helpnexus/feedback-backend/internal/handlers"
	"github.com/helpnexus/feedback-backend/internal/sentiment"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Printf("Sentry initialization failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database
	if err := database.Connect(cfg); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Disconnect()

	// Build the core components
	analyzer := sentiment.NewDefault()
	svc := feedback.NewService(feedback.NewMongoStore(database.DB))
	feedbackHandler := handlers.NewFeedbackHandler(svc, analyzer)
	analyzerHandler := handlers.NewAnalyzerHandler(analyzer)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Routes
	api := app.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", handlers.Signup)
	auth.Post("/login", handlers.Login)
	auth.Get("/me", handlers.AuthMiddleware, handlers.Me)

	// Community routes (public)
	api.Get("/community/feedback", feedbackHandler.Community)

	// Protected routes
	api.Use(handlers.AuthMiddleware)

	// Feedback routes
	api.Post("/feedback", feedbackHandler.Submit)
	api.Get("/feedback", feedbackHandler.Mine)
	api.Get("/feedback/:id", feedbackHandler.GetByID)
	api.Post("/feedback/:id/replies", feedbackHandler.AddReply)

	// Admin routes (protected by Auth + Admin middleware)
	admin := api.Group("/admin")
	admin.Use(handlers.AdminMiddleware)
	admin.Get("/stats", handlers.GetAdminStats)
	admin.Get("/users", handlers.GetAllUsers)
	admin.Post("/promote", handlers.PromoteToAdmin)
	admin.Post("/demote", handlers.DemoteToUser)
	admin.Get("/feedbacks", handlers.GetAllFeedbacks)
	admin.Get("/feedbacks/status/:status", feedbackHandler.ByStatus)
	admin.Get("/feedbacks/sentiment/:sentiment", feedbackHandler.BySentiment)
	admin.Patch("/feedbacks/:id/status", feedbackHandler.UpdateStatus)
	admin.Patch("/feedbacks/:id/response", feedbackHandler.SetResponse)
	admin.Delete("/feedbacks/:id", feedbackHandler.Delete)
	admin.Post("/feedbacks/rescore", feedbackHandler.Rescore)
	admin.Post("/analyze", analyzerHandler.Analyze)
	admin.Post("/analyze-batch", analyzerHandler.AnalyzeBatch)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
