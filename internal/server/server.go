// Package server contains the HTTP handlers and routing for the application.
package server

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"connectin/internal/config"
	"connectin/internal/database"
	"connectin/internal/middleware"
	"connectin/internal/repository"
	"connectin/internal/service"
	appsession "connectin/internal/session"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/session"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	sessions       *session.Store
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	followRepo     repository.FollowRepository
	authService    *service.AuthService
	postService    *service.PostService
	commentService *service.CommentService
	userService    *service.UserService
	followService  *service.FollowService
	searchService  *service.SearchService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	sessions := appsession.NewStore(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, sessions)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes the DB and session
// storage itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, sessions *session.Store) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)

	prom := middleware.InitMetrics("connectin")

	server := &Server{
		config:         cfg,
		db:             db,
		sessions:       sessions,
		promMiddleware: prom,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		followRepo:     followRepo,
	}
	server.authService = service.NewAuthService(userRepo)
	server.postService = service.NewPostService(postRepo)
	server.commentService = service.NewCommentService(commentRepo, postRepo)
	server.userService = service.NewUserService(userRepo, postRepo, followRepo)
	server.followService = service.NewFollowService(followRepo, userRepo)
	server.searchService = service.NewSearchService(userRepo, postRepo, followRepo)

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

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Cookies (session id included) go out encrypted with a key derived
	// from the configured session secret.
	app.Use(encryptcookie.New(encryptcookie.Config{
		Key: deriveCookieKey(s.config.SessionSecret),
	}))

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// Uploaded images are served from a fixed path prefix.
	app.Static("/uploads", s.config.UploadDir)
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Public pages
	app.Get("/", s.Landing)
	app.Get("/register", s.ShowRegister)
	app.Post("/register", s.Register)
	app.Get("/login", s.ShowLogin)
	app.Post("/login", s.Login)
	app.Get("/logout", s.Logout)
	app.Get("/u/:id", s.ShowProfile)

	// Protected pages and mutations
	app.Get("/feed", s.AuthRequired(), s.Feed)
	app.Post("/posts", s.AuthRequired(), s.CreatePost)
	app.Post("/posts/:id/like", s.AuthRequired(), s.ToggleLike)
	app.Post("/posts/:id/comment", s.AuthRequired(), s.AddComment)
	app.Post("/u/:id/edit", s.AuthRequired(), s.EditProfile)
	app.Post("/u/:id/follow", s.AuthRequired(), s.ToggleFollow)
	app.Get("/search", s.AuthRequired(), s.Search)
	app.Post("/account/delete", s.AuthRequired(), s.DeleteAccount)

	// Everything else renders the 404 page.
	app.Use(s.NotFound)
}

// Landing handles GET /
func (s *Server) Landing(c *fiber.Ctx) error {
	return s.render(c, "index", fiber.Map{"Title": "Welcome to ConnectIn"})
}

// NotFound renders the 404 page for unmatched routes.
func (s *Server) NotFound(c *fiber.Ctx) error {
	return s.renderNotFound(c, "Not Found")
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

	status := fiber.StatusOK
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"status":   dbStatus,
		"database": dbStatus,
		"time":     time.Now(),
	})
}

// deriveCookieKey turns the configured session secret into the base64 key
// format the cookie encryption middleware expects.
func deriveCookieKey(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}
