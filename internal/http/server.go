// Package http provides the HTTP server, router setup, and shared middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	otelmetric "go.opentelemetry.io/otel/metric"

	accessHTTP "github.com/bitmarket/contentgate/internal/access/http"
	authHTTP "github.com/bitmarket/contentgate/internal/auth/http"
	"github.com/bitmarket/contentgate/internal/metrics"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	host   string
	port   int
	logger *slog.Logger
	router *gin.Engine
	server *http.Server
}

// NewServer creates a new HTTP server. The router is configured separately
// via SetupRouter so tests can exercise handlers without binding a socket.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		host:   host,
		port:   port,
		logger: logger,
	}
}

// RouterConfig carries the handlers and policy toggles for route setup.
type RouterConfig struct {
	AccessHandler   *accessHTTP.AccessHandler
	RedirectHandler *accessHTTP.RedirectHandler
	AuthMiddleware  *authHTTP.AuthMiddleware

	GinMode string

	CORSEnabled      bool
	CORSAllowOrigins string

	// MeterProvider enables HTTP metrics when non-nil.
	MeterProvider    otelmetric.MeterProvider
	MetricsNamespace string

	// RedirectRateLimit guards the unauthenticated redirect routes when
	// non-nil.
	RedirectRateLimit gin.HandlerFunc
}

// SetupRouter builds the gin engine and registers all routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	content := router.Group("/v1/content")
	{
		content.POST("/access",
			cfg.AuthMiddleware.RequireSession(),
			cfg.AccessHandler.GrantAccessHandler,
		)

		// Redirect routes authenticate by signature, not by session.
		redirects := content.Group("")
		if cfg.RedirectRateLimit != nil {
			redirects.Use(cfg.RedirectRateLimit)
		}
		redirects.GET("/download/drive", cfg.RedirectHandler.DriveDownloadHandler)
		redirects.GET("/video/youtube", cfg.RedirectHandler.YouTubeVideoHandler)
	}

	s.router = router
}

// Router returns the configured gin engine for testing purposes.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic, including
// database connectivity.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}

	ready := true
	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server. SetupRouter must have been called first.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.host, s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
