// Package server wires the HTTP surface of the application together: routing,
// middleware, and the handlers for feeds, posts, comments, and follows.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"quill/internal/cache"
	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/middleware"
	"quill/internal/models"
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

// Server holds the application's dependencies and handler state.
type Server struct {
	cfg   *config.Config
	db    *gorm.DB
	redis *redis.Client
	app   *fiber.App
	prom  *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	followRepo  repository.FollowRepository

	postService    *service.PostService
	commentService *service.CommentService
	followService  *service.FollowService
	feedService    *service.FeedService
	groupService   *service.GroupService
}

// NewServer connects to the database and Redis and assembles a Server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps assembles a Server around pre-built dependencies. Tests
// use it to inject an in-memory database and a fake Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	s := &Server{
		cfg:   cfg,
		db:    db,
		redis: redisClient,
	}

	s.userRepo = repository.NewUserRepository(db)
	s.groupRepo = repository.NewGroupRepository(db)
	s.postRepo = repository.NewPostRepository(db)
	s.commentRepo = repository.NewCommentRepository(db)
	s.followRepo = repository.NewFollowRepository(db)

	s.postService = service.NewPostService(s.postRepo, s.groupRepo)
	s.commentService = service.NewCommentService(s.commentRepo, s.postRepo, s.userRepo.IsAdmin)
	s.followService = service.NewFollowService(s.followRepo, s.userRepo)
	s.feedService = service.NewFeedService(
		s.postRepo, s.groupRepo, s.userRepo, s.followRepo,
		cfg.PageSize, cfg.HomeCacheTTL(),
	)
	s.groupService = service.NewGroupService(s.groupRepo, s.userRepo.IsAdmin)

	middleware.InitMiddleware(cfg)

	return s
}

// SetupMiddleware installs the global middleware chain, ordered so that
// recovery and request IDs wrap everything else.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	s.prom = middleware.InitMetrics("quill-api")
	s.prom.RegisterAt(app, "/metrics")
	app.Use(middleware.MetricsMiddleware(s.prom))

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.cfg.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
	}))

	app.Use(middleware.TracingMiddleware())
}

// SetupRoutes registers every route on the app.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Tighter redis-counted limits on the credential endpoints, on top of
	// the global limiter.
	auth := app.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(s.redis, 10, time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(s.redis, 10, time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)

	app.Get("/", middleware.OptionalAuth, s.HomeFeed)
	app.Get("/group", s.ListGroups)
	app.Post("/group", middleware.AuthRequired, s.CreateGroup)
	app.Get("/group/:slug", s.GroupFeed)

	app.Get("/create", middleware.LoginRequired, s.NewPostForm)
	app.Post("/create", middleware.LoginRequired, s.CreatePost)

	app.Get("/posts/:id", s.GetPost)
	app.Get("/posts/:id/edit", middleware.LoginRequired, s.EditPostForm)
	app.Post("/posts/:id/edit", middleware.LoginRequired, s.EditPost)
	app.Delete("/posts/:id", middleware.AuthRequired, s.DeletePost)
	app.Post("/posts/:id/comment", middleware.LoginRequired, s.AddComment)
	app.Delete("/comments/:id", middleware.AuthRequired, s.DeleteComment)

	app.Get("/follow", middleware.LoginRequired, s.FollowFeed)
	app.Get("/profile/:username", middleware.OptionalAuth, s.ProfileFeed)
	app.Get("/profile/:username/follow", middleware.LoginRequired, s.FollowAuthor)
	app.Get("/profile/:username/unfollow", middleware.LoginRequired, s.UnfollowAuthor)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
		})
	})
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessCheck verifies the database and Redis connections. Redis being
// down degrades the response but does not fail it, matching the cache's
// graceful-degradation behavior.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	status := fiber.Map{"status": "ready", "database": "ok", "redis": "ok"}
	healthy := true

	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "unreachable"
		healthy = false
	}

	if s.redis == nil {
		status["redis"] = "disabled"
	} else if err := s.redis.Ping(ctx).Err(); err != nil {
		status["redis"] = "unreachable"
	}

	if !healthy {
		status["status"] = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(status)
	}
	return c.JSON(status)
}

// Start builds the fiber app and begins serving on the configured port.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Quill API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				slog.ErrorContext(c.Context(), "unhandled error", "error", err, "path", c.Path())
			}
			return models.RespondWithError(c, code, err)
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app

	addr := s.cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	slog.Info("server listening", "addr", addr, "env", s.cfg.Env)
	return app.Listen(addr)
}

// Shutdown drains in-flight requests and closes the database and Redis
// connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			return err
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Warn("closing database", "error", err)
			}
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			slog.Warn("closing redis", "error", err)
		}
	}
	return nil
}
