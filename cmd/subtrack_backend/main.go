package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/subscription_tracker/internal/core/services"
	"github.com/SscSPs/subscription_tracker/internal/handlers"
	"github.com/SscSPs/subscription_tracker/internal/middleware"
	"github.com/SscSPs/subscription_tracker/internal/platform/config"
	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
	"github.com/SscSPs/subscription_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/subscription_tracker/internal/repositories/database/sqlite"
	"github.com/SscSPs/subscription_tracker/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// @title Subscription Tracker API
// @version 1.0
// @description Tracks recurring subscriptions and their monthly-equivalent spend per currency.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, healthCheck, closeStore, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		return err
	}

	appMetrics := metrics.NewMetrics()
	serviceContainer := services.NewServiceContainer(repos, appMetrics)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(appMetrics),
	)
	if corsHandler := newCORS(cfg.CORSAllowedOrigins); corsHandler != nil {
		r.Use(corsHandler)
	}
	r.Use(middleware.RateLimit(rateLimiter, appMetrics))

	handlers.RegisterRoutes(r, cfg, serviceContainer, appMetrics, healthCheck)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", slog.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newCORS returns nil when no origins are configured. A "*" entry allows any
// origin without credentials.
func newCORS(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	return cors.New(corsCfg)
}

// openStorage runs migrations for the configured backend and returns its
// repositories, a health probe and a closer.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, handlers.HealthCheck, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageSQLite:
		if err := database.RunSQLiteMigrations(cfg.SQLitePath); err != nil {
			return repositories.RepositoryProvider{}, nil, nil, err
		}
		db, err := database.NewSQLiteDB(ctx, cfg.SQLitePath)
		if err != nil {
			return repositories.RepositoryProvider{}, nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		closer := func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing sqlite database", slog.String("error", err.Error()))
			}
		}
		return sqlite.NewRepositoryProvider(db), db.PingContext, closer, nil

	default:
		if err := database.RunPostgresMigrations(cfg.DatabaseURL); err != nil {
			return repositories.RepositoryProvider{}, nil, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return repositories.RepositoryProvider{}, nil, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		closer := func() { database.ClosePgxPool(pool) }
		return pgsql.NewRepositoryProvider(pool), pool.Ping, closer, nil
	}
}
