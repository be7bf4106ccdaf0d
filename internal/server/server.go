// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"context"
	"log"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/notifications"
	"quill/internal/observability"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo         repository.UserRepository
	interactionRepo  repository.InteractionRepository
	trendRepo        repository.TrendRepository
	notificationRepo repository.NotificationRepository

	notifier *notifications.Notifier

	timelineService     *service.TimelineService
	interactionService  *service.InteractionService
	trendService        *service.TrendService
	notificationService *service.NotificationService
	userService         *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized
// dependencies. Used by tests and by bootstrap layers that establish
// DB/Redis themselves.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("quill-api"),
		userRepo:         repository.NewUserRepository(db),
		interactionRepo:  repository.NewInteractionRepository(db),
		trendRepo:        repository.NewTrendRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}

	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	server.timelineService = service.NewTimelineService(server.userRepo, server.interactionRepo)
	server.interactionService = service.NewInteractionService(
		server.interactionRepo, server.userRepo, server.trendRepo,
		server.notificationRepo, server.notifier)
	server.trendService = service.NewTrendService(server.trendRepo)
	server.notificationService = service.NewNotificationService(server.notificationRepo)
	server.userService = service.NewUserService(server.userRepo, server.notificationRepo, server.notifier)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Tracing spans per request once the tracer is initialized
	if observability.Tracer != nil {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit, so browser clients
	// still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", s.Signup)
	auth.Post("/login", s.Login)

	// Public trend browsing
	trends := api.Group("/trends")
	trends.Get("/", s.GetTrends)
	trends.Get("/:trend", s.GetTrendTimeline)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	protected.Get("/timeline", s.GetTimeline)

	notifs := protected.Group("/notifications")
	notifs.Get("/", s.GetNotifications)
	notifs.Get("/unseen", s.GetUnseenNotificationCount)

	protected.Post("/tweets", s.CreateTweet)

	interactions := protected.Group("/interactions")
	interactions.Post("/:id/reply", s.CreateReply)
	interactions.Post("/:id/retweet", s.CreateRetweet)
	interactions.Post("/:id/like", s.LikeInteraction)
	interactions.Delete("/:id/like", s.UnlikeInteraction)
	interactions.Delete("/:id", s.DeleteInteraction)

	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Post("/:id/follow", s.FollowUser)
	users.Delete("/:id/follow", s.UnfollowUser)
	users.Get("/:username", s.GetUserProfile)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The feed serves without Redis; degraded, not down.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Quill API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
