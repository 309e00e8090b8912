package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	apprefund "github.com/retailpos/backend/internal/application/refund"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/cache"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/event"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"github.com/retailpos/backend/internal/infrastructure/storage"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/retailpos/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/retailpos/backend/docs"
)

//	@title			RetailPOS Refund API
//	@version		1.0
//	@description	Refund workflow of the RetailPOS backend: policies, approval, payout and compensation of completed sales.

//	@contact.name	RetailPOS Backend Team

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	baseLog, err := logger.New(cfg.Log, zap.String("service", cfg.App.Name), zap.String("env", cfg.App.Env))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = baseLog.Sync() }()

	ctx := context.Background()

	// Telemetry comes first so the bridged logger and instrumentation see it
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log := loggerProvider.Bridge(baseLog, cfg.Telemetry.ServiceName, zapcore.InfoLevel)

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting refund service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", telemetry.ServiceVersion),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL))
	db, err := persistence.Open(ctx, &cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.DBTraceEnabled {
		plugin, err := telemetry.NewDBTracingPlugin(cfg.Telemetry, cfg.Database.DBName, meterProvider.Meter(telemetry.MeterName), log)
		if err != nil {
			log.Fatal("Failed to create DB tracing plugin", zap.Error(err))
		}
		if err := plugin.Register(db.DB); err != nil {
			log.Fatal("Failed to register DB tracing plugin", zap.Error(err))
		}
	}
	log.Info("Database connected")

	guardStore, err := cache.NewIdempotencyStore(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() { _ = guardStore.Close() }()

	eventBus := event.NewInMemoryEventBus(log,
		event.WithHandlerTimeout(cfg.Event.HandlerTimeout),
		event.WithAsyncDispatch(),
	)

	repos := persistence.NewRepositories(db.DB)
	refundService := apprefund.NewRefundService(repos, persistence.NewGormTransactionScope(db.DB), log)
	refundService.SetEventPublisher(eventBus)
	refundService.SetIdempotencyStore(guardStore)
	refundService.SetCompletionGuardTTL(cfg.Refund.CompletionGuardTTL)
	if err := refundService.SetLocale(cfg.Refund.Locale); err != nil {
		log.Fatal("Invalid refund configuration", zap.Error(err))
	}
	metrics, err := telemetry.NewRefundMetrics(meterProvider.Meter(telemetry.MeterName))
	if err != nil {
		log.Fatal("Failed to create refund metrics", zap.Error(err))
	}
	refundService.SetMetrics(metrics)

	batchProcessor := apprefund.NewBatchProcessor(refundService, repos.Sales, log)

	if cfg.Storage.Enabled {
		receipts, err := storage.NewS3ReceiptStore(ctx, cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to create receipt store", zap.Error(err))
		}
		if err := receipts.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare receipt bucket", zap.Error(err))
		}
		outcomes, err := telemetry.NewEventOutcomes(meterProvider.Meter(telemetry.MeterName))
		if err != nil {
			log.Fatal("Failed to create event metrics", zap.Error(err))
		}
		archiver := event.NewIdempotentHandler("receipt-archive", apprefund.NewReceiptArchiver(receipts, log), guardStore, log,
			event.WithIdempotencyConfig(shared.IdempotencyConfig{TTL: cfg.Event.ProcessedTTL, Enabled: true}),
			event.WithOutcomeRecorder(outcomes.Record))
		eventBus.Subscribe(archiver)
		log.Info("Receipt archive enabled", zap.String("bucket", cfg.Storage.Bucket))
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Close()
	}

	engine := router.New(router.Dependencies{
		Config:    cfg,
		Logger:    log,
		Tokens:    auth.NewJWTService(cfg.JWT),
		Refunds:   refundService,
		Policies:  refundService,
		Batches:   batchProcessor,
		DB:        db,
		Version:   telemetry.ServiceVersion,
		Limiter:   limiter,
		Profiling: profiler.IsEnabled(),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	// Drain in-flight receipt uploads before the telemetry pipelines flush
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	log.Info("Server exited gracefully")
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		baseLog.Error("Error shutting down logger provider", zap.Error(err))
	}
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.HTTP.ShutdownTimeout > 0 {
		return cfg.HTTP.ShutdownTimeout
	}
	return 30 * time.Second
}
