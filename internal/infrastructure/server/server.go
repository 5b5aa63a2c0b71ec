package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	httpHandlers "github.com/manageer/core/internal/adapters/http"
	"github.com/manageer/core/internal/adapters/repository"
	"github.com/manageer/core/internal/application/services"
	"github.com/manageer/core/internal/infrastructure/config"
	"github.com/manageer/core/internal/infrastructure/database"
	"github.com/manageer/core/internal/infrastructure/logger"
	"github.com/manageer/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *database.DB
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Repositories bundles the persistence dependencies of the server.
type Repositories struct {
	Users     ports.UserRepository
	TaskLists ports.TaskListRepository
	Tasks     ports.TaskRepository
	Cache     ports.CacheRepository
}

// New creates a new server instance backed by the database
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	repos := Repositories{
		Users:     repository.NewUserRepository(db.DB),
		TaskLists: repository.NewTaskListRepository(db.DB),
		Tasks:     repository.NewTaskRepository(db.DB),
	}

	// Redis is optional; the server runs without the cache when it is
	// disabled or unreachable.
	if cfg.Redis.Enabled {
		cache, err := repository.NewCacheRepository(cfg.Redis)
		if err != nil {
			appLogger.Warnw("Redis unavailable, running without cache", "error", err)
		} else {
			repos.Cache = cache
		}
	}

	return NewWithRepositories(cfg, db, repos, appLogger)
}

// NewWithRepositories creates a server instance with explicit repositories
func NewWithRepositories(cfg *config.Config, db *database.DB, repos Repositories, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize services
	authService := services.NewAuthService(repos.Users, cfg.JWT, appLogger)
	listService := services.NewTaskListService(repos.TaskLists, repos.Tasks, repos.Cache, cfg.Redis.CacheTTL, appLogger)
	taskService := services.NewTaskService(repos.Tasks, repos.TaskLists, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, cfg.Security.SecureCookies, appLogger)
	listHandler := httpHandlers.NewTaskListHandler(listService, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	server.setupMiddleware(authService)
	server.setupRoutes(authHandler, listHandler, taskHandler)

	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(authService ports.AuthService) {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods:     []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
		AllowCredentials: true,
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, httpHandlers.NewErrorResponse("rate limit exceeded"))
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: s.config.Server.RequestTimeout,
	}))

	// Session resolver runs on every request before routing decisions
	s.echo.Use(s.sessionResolver(authService))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, listHandler *httpHandlers.TaskListHandler, taskHandler *httpHandlers.TaskHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	s.echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome to Manageer API")
	})

	// User routes (public; currentuser works with or without identity)
	users := s.echo.Group("/api/users")
	users.POST("/signup", authHandler.Signup)
	users.POST("/signin", authHandler.Signin)
	users.POST("/signout", authHandler.Signout)
	users.GET("/currentuser", authHandler.CurrentUser)

	// Task list routes (authenticated)
	lists := s.echo.Group("/api/task-lists", s.requireAuth)
	lists.POST("", listHandler.CreateTaskList)
	lists.GET("", listHandler.ListTaskLists)
	lists.GET("/:id", listHandler.GetTaskList)
	lists.DELETE("/:id", listHandler.DeleteTaskList)

	// Task routes (authenticated)
	tasks := s.echo.Group("/api/tasks", s.requireAuth)
	tasks.POST("", taskHandler.CreateTask)
	tasks.GET("", taskHandler.ListTasks)
	tasks.GET("/:id", taskHandler.GetTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)
	tasks.DELETE("/:id", taskHandler.DeleteTask)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) readinessCheck(c echo.Context) error {
	if s.db == nil || s.db.HealthCheck() != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"database": s.db.Stats(),
	})
}

// Handler exposes the underlying router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}
