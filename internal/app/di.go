// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	accessHTTP "github.com/bitmarket/contentgate/internal/access/http"
	accessUseCase "github.com/bitmarket/contentgate/internal/access/usecase"
	authHTTP "github.com/bitmarket/contentgate/internal/auth/http"
	authService "github.com/bitmarket/contentgate/internal/auth/service"
	authUseCase "github.com/bitmarket/contentgate/internal/auth/usecase"
	"github.com/bitmarket/contentgate/internal/config"
	"github.com/bitmarket/contentgate/internal/database"
	"github.com/bitmarket/contentgate/internal/http"
	licenseUseCase "github.com/bitmarket/contentgate/internal/license/usecase"
	"github.com/bitmarket/contentgate/internal/metrics"
	"github.com/bitmarket/contentgate/internal/ratelimit"
	signingService "github.com/bitmarket/contentgate/internal/signing/service"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	rateLimitStore  *ratelimit.MemoryStore
	downloadLimiter *ratelimit.Limiter
	urlSigner       signingService.URLSigner

	// Services
	tokenService authService.TokenService

	// Repositories
	sessionRepo     authUseCase.SessionRepository
	contentFileRepo accessUseCase.ContentFileRepository
	licenseRepo     licenseUseCase.LicenseRepository

	// Use Cases
	authUC    authUseCase.AuthUseCase
	licenseUC licenseUseCase.LicenseUseCase
	accessUC  accessUseCase.AccessUseCase

	// HTTP
	authMiddleware  *authHTTP.AuthMiddleware
	accessHandler   *accessHTTP.AccessHandler
	redirectHandler *accessHTTP.RedirectHandler
	httpServer      *http.Server
	metricsServer   *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	rateLimitStoreInit  sync.Once
	downloadLimiterInit sync.Once
	urlSignerInit       sync.Once
	tokenServiceInit    sync.Once
	sessionRepoInit     sync.Once
	contentFileRepoInit sync.Once
	licenseRepoInit     sync.Once
	authUCInit          sync.Once
	licenseUCInit       sync.Once
	accessUCInit        sync.Once
	authMiddlewareInit  sync.Once
	accessHandlerInit   sync.Once
	redirectHandlerInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := database.Connect(database.Config{
			Driver:             c.config.DBDriver,
			ConnectionString:   c.config.DBConnectionString,
			MaxOpenConnections: c.config.DBMaxOpenConnections,
			MaxIdleConnections: c.config.DBMaxIdleConnections,
			ConnMaxLifetime:    c.config.DBConnMaxLifetime,
		})
		if err != nil {
			c.initErrors["db"] = fmt.Errorf("failed to connect to database: %w", err)
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. A no-op recorder is
// returned when metrics are disabled so callers never branch on it.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}

		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// RateLimitStore returns the in-memory store backing the download limiter.
func (c *Container) RateLimitStore() *ratelimit.MemoryStore {
	c.rateLimitStoreInit.Do(func() {
		c.rateLimitStore = ratelimit.NewMemoryStore()
	})
	return c.rateLimitStore
}

// DownloadLimiter returns the per-user download limiter.
func (c *Container) DownloadLimiter() (*ratelimit.Limiter, error) {
	c.downloadLimiterInit.Do(func() {
		limiter, err := ratelimit.NewLimiter(
			c.RateLimitStore(),
			c.config.MaxDownloadsPerHour,
			c.config.DownloadWindow,
		)
		if err != nil {
			c.initErrors["downloadLimiter"] = fmt.Errorf("failed to create download limiter: %w", err)
			return
		}
		c.downloadLimiter = limiter
	})
	if storedErr, exists := c.initErrors["downloadLimiter"]; exists {
		return nil, storedErr
	}
	return c.downloadLimiter, nil
}

// StartRateLimitSweeper starts the background goroutine that purges expired
// quota records. The goroutine exits when ctx is cancelled.
func (c *Container) StartRateLimitSweeper(ctx context.Context) {
	c.RateLimitStore().StartSweeper(ctx, c.config.RateLimitSweepInterval)
}

// URLSigner returns the HMAC URL signer.
func (c *Container) URLSigner() (signingService.URLSigner, error) {
	c.urlSignerInit.Do(func() {
		signer, err := signingService.NewURLSigner(c.config.SigningSecret)
		if err != nil {
			c.initErrors["urlSigner"] = fmt.Errorf("failed to create url signer: %w", err)
			return
		}
		c.urlSigner = signer
	})
	if storedErr, exists := c.initErrors["urlSigner"]; exists {
		return nil, storedErr
	}
	return c.urlSigner, nil
}

// HTTPServer returns the HTTP server instance with all routes configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initHTTPServer wires the full router: auth middleware, access handler,
// redirect handler, metrics, CORS, and the per-IP redirect rate limit.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	accessHandler, err := c.AccessHandler()
	if err != nil {
		return nil, err
	}

	redirectHandler, err := c.RedirectHandler()
	if err != nil {
		return nil, err
	}

	authMiddleware, err := c.AuthMiddleware()
	if err != nil {
		return nil, err
	}

	routerConfig := http.RouterConfig{
		AccessHandler:    accessHandler,
		RedirectHandler:  redirectHandler,
		AuthMiddleware:   authMiddleware,
		GinMode:          c.config.GetGinMode(),
		CORSEnabled:      c.config.CORSEnabled,
		CORSAllowOrigins: c.config.CORSAllowOrigins,
		MetricsNamespace: c.config.MetricsNamespace,
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider != nil {
		routerConfig.MeterProvider = provider.MeterProvider()
	}

	if c.config.RedirectRateLimitEnabled {
		routerConfig.RedirectRateLimit = accessHTTP.IPRateLimitMiddleware(
			c.config.RedirectRateLimitRequestsPerSec,
			c.config.RedirectRateLimitBurst,
			c.Logger(),
		)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(routerConfig)
	return server, nil
}
