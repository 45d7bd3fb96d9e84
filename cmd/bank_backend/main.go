package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/core/services"
	"github.com/SscSPs/bank_ledger_app/internal/handlers"
	"github.com/SscSPs/bank_ledger_app/internal/middleware"
	"github.com/SscSPs/bank_ledger_app/internal/outbox"
	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
	"github.com/SscSPs/bank_ledger_app/internal/platform/kafka"
	"github.com/SscSPs/bank_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bank_ledger_app/internal/repositories/memory"
	"github.com/SscSPs/bank_ledger_app/internal/utils"
	"github.com/SscSPs/bank_ledger_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title Bank Ledger API
// @version 1.0
// @description Accounts, balances and credit/debit transactions of a bank ledger.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStorage()

	serviceContainer := services.NewServiceContainer(cfg, repos)

	limiterStore, err := utils.NewLimiterStore(ctx, cfg.RedisURL, logger)
	if err != nil {
		logger.Error("Failed to initialize rate limiter store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer limiterStore.Close()

	var limiters handlers.Limiters
	if limiters.API, err = limiterStore.NewLimiter(cfg.RateLimit); err != nil {
		logger.Error("Failed to create API rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if limiters.Auth, err = limiterStore.NewLimiter(cfg.AuthRateLimit); err != nil {
		logger.Error("Failed to create auth rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, metrics, analytics, cors)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.MetricsMiddleware(),
		middleware.PosthogMiddleware(posthogClient),
		cors.New(corsConfig(cfg)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	auditWriter := middleware.NewAuditWriter(serviceContainer.Audit, middleware.DefaultAuditBuffer, logger)
	handlers.RegisterRoutes(r, cfg, serviceContainer, limiters, auditWriter, posthogClient)

	var workers sync.WaitGroup
	if cfg.EventPublishingEnabled() {
		producer := kafka.NewProducer(cfg.KafkaBrokers, logger)
		processor := outbox.NewProcessor(repos.OutboxRepo, producer, cfg.KafkaTopic, cfg.OutboxPollInterval, cfg.OutboxBatchSize, logger)
		workers.Add(1)
		go func() {
			defer workers.Done()
			defer func() {
				if err := producer.Close(); err != nil {
					logger.Error("Failed to close kafka producer", slog.String("error", err.Error()))
				}
			}()
			processor.Run(ctx)
		}()
		logger.Info("Ledger event publishing enabled", slog.String("topic", cfg.KafkaTopic))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	if err := auditWriter.Close(shutdownCtx); err != nil {
		logger.Error("Failed to flush audit log", slog.String("error", err.Error()))
	}
	workers.Wait()
	logger.Info("Server stopped")
}

// setupStorage runs migrations and opens the pool for postgres, or creates the in-memory store.
func setupStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewRepositoryProvider(memory.NewStore()), func() {}, nil
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		return repositories.RepositoryProvider{}, nil, err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return repositories.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool, cfg.CommitTimeout), func() { database.ClosePgxPool(dbPool) }, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", handlers.IdempotencyKeyHeader)
	corsCfg.ExposeHeaders = []string{"X-Request-ID", "Retry-After"}
	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
	}
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	return corsCfg
}
