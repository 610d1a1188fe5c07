// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/Ritesh-Bote/inventory-app-backend/internal/adapters/jsonstore"
	redis_a "github.com/Ritesh-Bote/inventory-app-backend/internal/adapters/redis_adapter"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/ports"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/core/services"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/handlers"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/handlers/middleware"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/pkg/config"
	"github.com/Ritesh-Bote/inventory-app-backend/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting product inventory backend",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	slogger.Info("loading configuration")
	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	store            *jsonstore.Store
	redisClient      *redis.Client
	redisCache       ports.CacheRepository
	inventoryService *services.InventoryService
	inventoryHandler *handlers.InventoryHandler
	dashboardHandler *handlers.DashboardHandler
	exportHandler    *handlers.ExportHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.redisClient != nil {
		d.redisClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	// Initialize the inventory state store
	logger.Info("initializing inventory storage",
		slog.String("dir", cfg.Storage.DataDir),
		slog.String("file", cfg.Storage.DataFile),
	)

	store := jsonstore.NewStore(&jsonstore.Config{
		Dir:      cfg.Storage.DataDir,
		FileName: cfg.Storage.DataFile,
	}, logger)
	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}
	deps.store = store

	// Connect the dashboard cache when enabled. The API works without it;
	// a missing Redis only costs cached dashboards.
	if cfg.Redis.Enabled {
		logger.Info("connecting to Redis",
			slog.String("address", cfg.GetRedisAddress()))

		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.GetRedisAddress(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, dashboard caching disabled",
				slog.String("error", err.Error()))
			redisClient.Close()
		} else {
			deps.redisClient = redisClient
			deps.redisCache = redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)
		}
	}

	deps.inventoryService = services.NewInventoryService(store, logger)

	deps.inventoryHandler = handlers.NewInventoryHandler(deps.inventoryService, logger)
	deps.dashboardHandler = handlers.NewDashboardHandler(deps.inventoryService, deps.redisCache, logger)
	deps.exportHandler = handlers.NewExportHandler(deps.inventoryService, logger)
	deps.healthHandler = handlers.NewHealthHandler(store, deps.redisCache, cfg, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux

	if cfg.App.Environment != "test" {
		handler = middleware.Logger(logger)(handler)
		handler = middleware.RequestID(handler)
		handler = middleware.Recovery(logger)(handler)
	}

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	registerRoutes(mux, deps, cfg)

	server := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return server
}

func registerRoutes(mux *http.ServeMux, deps *dependencies, cfg *config.Config) {
	// Health and readiness endpoints
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)

	// Product endpoints
	mux.HandleFunc("GET /api/products", deps.inventoryHandler.ListProducts)
	mux.HandleFunc("POST /api/products", deps.inventoryHandler.CreateProduct)
	mux.HandleFunc("PUT /api/products/{id}/sell", deps.inventoryHandler.SellProduct)
	mux.HandleFunc("DELETE /api/products/{id}", deps.inventoryHandler.DeleteProduct)

	// Dashboard endpoint
	mux.HandleFunc("GET /api/dashboard", deps.dashboardHandler.GetDashboard)

	// Export endpoints
	mux.HandleFunc("GET /api/export/excel", deps.exportHandler.ExportExcel)
	mux.HandleFunc("GET /api/export/json", deps.exportHandler.ExportJSON)

	// Static files from the working directory on the fallback route
	mux.Handle("GET /", http.FileServer(http.Dir(cfg.Storage.StaticDir)))
}
