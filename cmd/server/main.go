package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/growai/backend/internal/application/catalog"
	financeapp "github.com/growai/backend/internal/application/finance"
	reportapp "github.com/growai/backend/internal/application/report"
	tradeapp "github.com/growai/backend/internal/application/trade"
	"github.com/growai/backend/internal/domain/report"
	"github.com/growai/backend/internal/domain/shared"
	"github.com/growai/backend/internal/infrastructure/cache"
	"github.com/growai/backend/internal/infrastructure/config"
	"github.com/growai/backend/internal/infrastructure/logger"
	"github.com/growai/backend/internal/infrastructure/persistence"
	"github.com/growai/backend/internal/infrastructure/telemetry"
	"github.com/growai/backend/internal/interfaces/http/handler"
	"github.com/growai/backend/internal/interfaces/http/middleware"
	"github.com/growai/backend/internal/interfaces/http/router"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine; the environment and config.toml still apply
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting GrowAI backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	ctx := context.Background()
	clock := shared.NewSystemClock(cfg.App.Location())

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	database, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(gormLog),
		persistence.WithNowFunc(clock.Now),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        cfg.Database.Driver,
	}, log)
	if err := dbTracing.Register(database.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	db := database.DB
	productRepo := persistence.NewGormProductRepository(db)
	saleRepo := persistence.NewGormSaleRepository(db)
	dueRepo := persistence.NewGormDueRepository(db)

	metrics, err := telemetry.NewRetailMetrics(meterProvider.Meter("growai-backend"),
		func(ctx context.Context) (int64, error) {
			products, err := productRepo.FindLowStock(ctx)
			return int64(len(products)), err
		}, log)
	if err != nil {
		log.Fatal("Failed to register retail metrics", zap.Error(err))
	}

	saleOpts := []tradeapp.SaleServiceOption{tradeapp.WithSaleObserver(metrics)}
	if cfg.Idempotency.Enabled {
		store, err := cache.NewIdempotencyStoreFactory(cfg.Idempotency, cfg.Redis,
			cache.WithLogger(log),
			cache.WithInMemoryFallback(cfg.App.Env != "production"),
		).CreateStore(ctx)
		if err != nil {
			log.Fatal("Failed to create idempotency store", zap.Error(err))
		}
		defer func() {
			_ = store.Close()
		}()
		saleOpts = append(saleOpts, tradeapp.WithIdempotency(store, shared.IdempotencyConfig{
			TTL:     cfg.Idempotency.TTL,
			Enabled: true,
		}))
	}

	forecaster, err := report.NewTrendForecaster(cfg.Forecast.Alpha, cfg.Forecast.Beta)
	if err != nil {
		log.Fatal("Invalid forecast smoothing factors", zap.Error(err))
	}
	var policy report.SeriesPolicy = report.HistoryOnlyPolicy{}
	if cfg.Forecast.SyntheticFallback {
		policy = report.NewSyntheticBaselinePolicy()
	}

	productService := catalogapp.NewProductService(productRepo, clock)
	saleService := tradeapp.NewSaleService(saleRepo, productRepo,
		persistence.NewGormTransactionScope(db), clock, log, saleOpts...)
	dueService := financeapp.NewDueService(dueRepo, clock)
	reportService := reportapp.NewReportService(persistence.NewGormReportSource(db), clock, reportapp.Limits{
		DefaultSeriesDays:  cfg.Report.DefaultSeriesDays,
		MaxSeriesDays:      cfg.Report.MaxSeriesDays,
		DefaultTopProducts: cfg.Report.DefaultTopProducts,
		MaxTopProducts:     cfg.Report.MaxTopProducts,
		DefaultRecent:      cfg.Report.DefaultRecent,
		MaxRecent:          cfg.Report.MaxRecent,
	})
	exportService := reportapp.NewExportService(reportService, clock)
	forecastService := reportapp.NewForecastService(productRepo, saleRepo, forecaster, policy,
		cfg.Forecast.MaxHorizonDays, clock, log)
	forecastService.SetObserver(metrics)

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine, err := router.NewEngine(router.EngineConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: tracerProvider.IsEnabled(),
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		CORS:           cors,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	}, log)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}
	routes := router.Setup(engine, router.Handlers{
		Product:  handler.NewProductHandler(productService),
		Sale:     handler.NewSaleHandler(saleService),
		Due:      handler.NewDueHandler(dueService),
		Report:   handler.NewReportHandler(reportService, exportService),
		Forecast: handler.NewForecastHandler(forecastService),
		System:   handler.NewSystemHandler(cfg.App.Name, database),
	})
	log.Info("Routes registered", zap.Int("count", len(routes)))

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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := metrics.Close(); err != nil {
		log.Warn("Failed to unregister retail metrics", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
