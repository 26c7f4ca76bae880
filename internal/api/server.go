package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	apimiddleware "github.com/dbspend360/dbspend360/internal/api/middleware"
	"github.com/dbspend360/dbspend360/internal/cache"
	"github.com/dbspend360/dbspend360/internal/config"
	"github.com/dbspend360/dbspend360/internal/insight"
	"github.com/dbspend360/dbspend360/internal/store"
	"github.com/dbspend360/dbspend360/internal/workspace"
	"github.com/dbspend360/dbspend360/pkg/types"
)

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
	EnableCORS      bool
	AllowedOrigins  []string
	MaxBodySize     string
	RequestTimeout  time.Duration
	RateLimitRPS    rate.Limit
	RateLimitBurst  int
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:            8080,
		ShutdownTimeout: 10 * time.Second,
		EnableCORS:      true,
		AllowedOrigins:  []string{"http://localhost:3000"}, // SPA dev server
		MaxBodySize:     "64K",
		RequestTimeout:  30 * time.Second,
		RateLimitRPS:    rate.Limit(50),
		RateLimitBurst:  100,
	}
}

// Server represents the HTTP API server
type Server struct {
	echo      *echo.Echo
	config    *ServerConfig
	store     *store.Store
	cache     *cache.Cache
	workspace *workspace.Client
	insights  *insight.Service
	appConfig *config.AppConfig
}

// NewServer creates a new API server. cache, workspace, and insights may be
// nil; the routes that need them degrade per their handlers.
func NewServer(
	cfg *ServerConfig,
	st *store.Store,
	respCache *cache.Cache,
	ws *workspace.Client,
	insights *insight.Service,
	appCfg *config.AppConfig,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Disable Echo's default logger, we'll use our own
	e.Logger.SetOutput(io.Discard)

	e.Validator = NewValidator()

	s := &Server{
		echo:      e,
		config:    cfg,
		store:     st,
		cache:     respCache,
		workspace: ws,
		insights:  insights,
		appConfig: appCfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures middleware stack
func (s *Server) setupMiddleware() {
	// Recover from panics
	s.echo.Use(middleware.Recover())

	// Request ID for tracing
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.New().String() },
	}))

	// Logging middleware
	s.echo.Use(apimiddleware.Logger())

	// CORS if enabled
	if s.config.EnableCORS {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:  s.config.AllowedOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost},
			AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
			ExposeHeaders: []string{echo.HeaderContentLength, echo.HeaderContentDisposition},
		}))
	}

	// Body limit
	s.echo.Use(middleware.BodyLimit(s.config.MaxBodySize))

	// Per-IP rate limiting
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  s.config.RateLimitRPS,
			Burst: s.config.RateLimitBurst,
		}),
	}))

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: s.config.RequestTimeout,
	}))
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	// Health checks (no rate-limit sensitive state)
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/ready", s.readyCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	spendHandler := NewSpendHandler(s.store, s.cache, s.appConfig)
	spendsGroup := v1.Group("/spends")
	spendsGroup.GET("", spendHandler.List)
	spendsGroup.GET("/grouped", spendHandler.ListGrouped)
	spendsGroup.GET("/summary", spendHandler.Summary)
	spendsGroup.GET("/top", spendHandler.Top)
	spendsGroup.GET("/export", spendHandler.Export)

	v1.GET("/jobs/:job_id/breakdown", spendHandler.Breakdown)
	v1.GET("/presets", s.datePresets)

	clusterHandler := NewClusterHandler(s.workspace)
	v1.GET("/clusters/:id", clusterHandler.Get)
	v1.GET("/workspace", clusterHandler.Host)

	insightHandler := NewInsightHandler(s.store, s.workspace, s.insights, s.appConfig)
	insightsGroup := v1.Group("/insights")
	insightsGroup.POST("/cost", insightHandler.AnalyzeCost)
	insightsGroup.POST("/cluster", insightHandler.AnalyzeCluster)

	ingestionHandler := NewIngestionHandler(s.store)
	ingestionGroup := v1.Group("/ingestion")
	ingestionGroup.GET("/audit", ingestionHandler.ListAudit)
	ingestionGroup.GET("/errors", ingestionHandler.ListErrors)
}

// datePresets returns the named date ranges computed relative to now.
func (s *Server) datePresets(c echo.Context) error {
	return c.JSON(http.StatusOK, types.DatePresets(time.Now()))
}

// healthCheck returns basic health status
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// readyCheck checks if server is ready to handle requests
func (s *Server) readyCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "cost record store unavailable",
		})
	}

	// Cache is optional and non-correctness-critical; report but don't fail
	cacheStatus := "disabled"
	if s.cache != nil {
		cacheStatus = "ok"
		if err := s.cache.Ping(ctx); err != nil {
			cacheStatus = "degraded"
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"cache":  cacheStatus,
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	fmt.Printf("Starting API server on %s\n", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying Echo instance for testing
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
