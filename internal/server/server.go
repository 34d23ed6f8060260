// Package server contains the HTTP and WebSocket handlers of the DevSwipe API.
package server

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	_ "devswipe/docs" // swagger docs
	"devswipe/internal/auth"
	"devswipe/internal/cache"
	"devswipe/internal/config"
	"devswipe/internal/database"
	"devswipe/internal/featureflags"
	"devswipe/internal/middleware"
	"devswipe/internal/models"
	"devswipe/internal/notifications"
	"devswipe/internal/observability"
	"devswipe/internal/repository"
	"devswipe/internal/service"
	"devswipe/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	appOnce        sync.Once
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	tokens       *auth.TokenManager
	userRepo     repository.UserRepository
	notifier     *notifications.Notifier
	hub          *notifications.Hub
	dispatcher   *notifications.Dispatcher
	store        storage.Backend
	featureFlags *featureflags.Manager

	authService         *service.AuthService
	profileService      *service.ProfileService
	projectService      *service.ProjectService
	collabService       *service.CollabService
	chatService         *service.ChatService
	notificationService *service.NotificationService
	uploadService       *service.UploadService
}

// NewServer creates a Server on top of an open database and an optional
// Redis client. Storage and the push gateway are built from cfg.
func NewServer(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	store, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}
	gateway, err := pushGateway(cfg)
	if err != nil {
		return nil, fmt.Errorf("push gateway init failed: %w", err)
	}

	shutdownCtx, shutdownFn := context.WithCancel(context.Background())
	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(observability.ServiceName),
		shutdownCtx:    shutdownCtx,
		shutdownFn:     shutdownFn,
		store:          store,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		hub:            notifications.NewHub(),
	}

	// A nil *TokenRevoker must not end up inside the interface.
	var revoker auth.Revoker
	if redisClient != nil {
		revoker = cache.NewTokenRevoker(redisClient)
	}
	s.tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL(), revoker)

	s.userRepo = repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	collabRepo := repository.NewCollabRepository(db)
	chatRepo := repository.NewChatRepository(db)

	s.notifier = notifications.NewNotifier(redisClient, s.hub)
	s.dispatcher = notifications.NewDispatcher(gateway, notifications.DispatcherConfig{
		Workers:   cfg.PushWorkers,
		QueueSize: cfg.PushQueueSize,
		Timeout:   time.Duration(cfg.PushTimeoutSecond) * time.Second,
		OnUnregistered: func(ctx context.Context, token string) {
			s.notificationService.ForgetToken(ctx, token)
		},
	})

	s.authService = service.NewAuthService(s.userRepo, s.tokens)
	s.profileService = service.NewProfileService(s.userRepo, profileRepo)
	s.projectService = service.NewProjectService(projectRepo)
	s.collabService = service.NewCollabService(collabRepo)
	s.notificationService = service.NewNotificationService(s.userRepo, s.dispatcher, s.notifier, s.featureFlags)
	s.chatService = service.NewChatService(chatRepo, s.userRepo, s.notificationService, service.PageConfig{
		Default: cfg.MessagePageDefault,
		Max:     cfg.MessagePageMax,
	})
	s.uploadService = service.NewUploadService(store, cfg.UploadMaxBytes(), s.featureFlags)

	return s, nil
}

func pushGateway(cfg *config.Config) (notifications.PushGateway, error) {
	if !cfg.APNsConfigured() {
		return &notifications.LogGateway{Log: middleware.Logger}, nil
	}
	return notifications.NewAPNsGateway(notifications.APNsConfig{
		KeyPath:    cfg.APNsKeyPath,
		KeyID:      cfg.APNsKeyID,
		TeamID:     cfg.APNsTeamID,
		Topic:      cfg.APNsTopic,
		Production: cfg.APNsProduction,
	})
}

// App returns the configured Fiber application, building it on first use.
func (s *Server) App() *fiber.App {
	s.appOnce.Do(func() {
		app := fiber.New(fiber.Config{
			AppName:   "DevSwipe API",
			BodyLimit: int(s.config.UploadMaxBytes()) + 1<<20,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				var fe *fiber.Error
				if errors.As(err, &fe) {
					return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
				}
				middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "path", c.Path(), "error", err.Error())
				return models.RespondWithError(c, fiber.StatusInternalServerError,
					models.NewInternalError(err))
			},
		})
		s.SetupMiddleware(app)
		s.SetupRoutes(app)
		s.app = app
	})
	return s.app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Uploaded images are embedded by the mobile and web clients.
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(middleware.StructuredLogger())

	// CORS runs before anything that can short-circuit so error responses
	// still carry the headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:8081"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	app.Use(middleware.RequestTimeout(s.config.RequestTimeout()))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	if local, ok := s.store.(*storage.LocalBackend); ok {
		app.Static("/uploads", filepath.Join(local.Dir(), "uploads"))
	}

	api := app.Group("/api", middleware.RateLimit(s.redis, middleware.RateLimitConfig{
		Name:   "api",
		Limit:  s.config.RateLimitPerMinute,
		Window: time.Minute,
	}))
	authRequired := s.AuthRequired()

	authLimit := middleware.RateLimit(s.redis, middleware.RateLimitConfig{
		Name:   "auth",
		Limit:  s.config.AuthRateLimitPerMin,
		Window: time.Minute,
	})
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authLimit, s.Register)
	authRoutes.Post("/login", authLimit, s.Login)
	authRoutes.Get("/me", authRequired, s.Me)
	authRoutes.Post("/logout", authRequired, s.Logout)

	profile := api.Group("/profile", authRequired)
	profile.Get("/", s.GetMyProfile)
	profile.Post("/", s.SaveMyProfile)
	profile.Put("/", s.SaveMyProfile)
	profile.Post("/complete-onboarding", s.CompleteOnboarding)
	profile.Get("/:userId", s.GetUserProfile)

	// Specific paths are registered before the generic /:id routes.
	projects := api.Group("/projects")
	projects.Get("/", s.ListProjects)
	projects.Get("/mine", authRequired, s.GetMyProjects)
	projects.Get("/user/:userId", s.GetUserProjects)
	projects.Get("/:id", s.GetProject)
	projects.Post("/", authRequired, s.CreateProject)
	projects.Put("/:id", authRequired, s.UpdateProject)
	projects.Delete("/:id", authRequired, s.DeleteProject)

	collabs := api.Group("/collaborations")
	collabs.Get("/", s.ListCollabs)
	collabs.Get("/mine", authRequired, s.GetMyCollabs)
	collabs.Get("/user/:userId", s.GetUserCollabs)
	collabs.Get("/:id", s.GetCollab)
	collabs.Post("/", authRequired, s.CreateCollab)
	collabs.Put("/:id", authRequired, s.UpdateCollab)
	collabs.Delete("/:id", authRequired, s.DeleteCollab)

	chat := api.Group("/chat", authRequired)
	chat.Post("/messages", middleware.RateLimit(s.redis, middleware.RateLimitConfig{
		Name:   "send_chat",
		Limit:  60,
		Window: time.Minute,
	}), s.SendMessage)
	chat.Get("/conversations", s.GetConversations)
	chat.Get("/unread-count", s.GetUnreadCount)
	chat.Get("/messages/:otherUserId", s.GetMessages)
	chat.Post("/messages/:otherUserId/mark-as-read", s.MarkMessagesAsRead)

	notif := api.Group("/notifications", authRequired)
	notif.Post("/register-token", s.RegisterPushToken)
	notif.Post("/unregister-token", s.UnregisterPushToken)

	api.Get("/feature-flags", authRequired, s.GetFeatureFlags)

	api.Post("/upload", authRequired, middleware.RateLimit(s.redis, middleware.RateLimitConfig{
		Name:   "upload",
		Limit:  20,
		Window: time.Minute,
	}), s.Upload)

	// Browsers cannot set headers on the WebSocket handshake.
	api.Get("/ws", middleware.AuthRequired(s.tokens, s.authService.Me, middleware.AuthOptions{AllowQueryToken: true}),
		s.WebsocketHandler())
}

// AuthRequired verifies the bearer token and loads the caller.
func (s *Server) AuthRequired() fiber.Handler {
	return middleware.AuthRequired(s.tokens, s.authService.Me, middleware.AuthOptions{})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so
// only an unreachable configured Redis makes the service unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"storage":      s.store.Name(),
		"push_gateway": s.dispatcher.Gateway(),
		"websockets":   s.hub.ConnectionCount(),
		"time":         time.Now(),
	})
}

// Start wires realtime delivery and serves HTTP until the app is shut down.
func (s *Server) Start() error {
	app := s.App()

	if s.notifier.Distributed() {
		if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
			middleware.Logger.Error("failed to start notification wiring", "error", err.Error())
		}
	}

	middleware.Logger.Info("server starting", "port", s.config.Port, "storage", s.store.Name(),
		"push_gateway", s.dispatcher.Gateway(), "realtime_distributed", s.notifier.Distributed())
	return app.Listen(":" + s.config.Port)
}

// Shutdown stops HTTP, closes WebSockets, drains pending pushes and closes
// the database and Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownFn()

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err.Error())
		}
	}

	if err := s.hub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down hub", "error", err.Error())
	}

	if err := s.dispatcher.Shutdown(ctx); err != nil {
		middleware.Logger.Error("push dispatcher did not drain", "error", err.Error())
	}

	if err := database.Close(s.db); err != nil {
		middleware.Logger.Error("error closing database", "error", err.Error())
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", "error", err.Error())
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
