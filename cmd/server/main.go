package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placemarks-service/internal/infrastructure/config"
	"placemarks-service/internal/infrastructure/persistence"
	"placemarks-service/internal/interface/httpapi"
	placeRepo "placemarks-service/internal/interface/repository"
	"placemarks-service/internal/usecase"
	"placemarks-service/pkg/logger"
	"placemarks-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration first; logging level comes from it
	cfg, err := config.LoadConfig()
	if err != nil {
		fallback := logger.NewLogger("info")
		fallback.Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting Placemarks Service", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for the freshness cache
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	placeRepository := placeRepo.NewGormPlaceRepository(gormDB)
	cacheRepository := placeRepo.NewMongoPlaceCacheRepository(db)
	detailsRepository := placeRepo.NewGooglePlacesRepository(cfg.PlacesAPIKey, cfg.PlacesBaseURL, log)

	// Set up metrics and usecases
	appMetrics := metrics.NewMetrics("placemarks")
	enhancer := usecase.NewPlaceEnhancer(placeRepository, cacheRepository, detailsRepository, cfg.CacheTTL, appMetrics, log)
	sweeper := usecase.NewMigrationSweeper(placeRepository, enhancer, log)
	janitor := usecase.NewCacheJanitor(cacheRepository, cfg.CacheCleanupInterval, appMetrics, log)

	// Start cache cleanup sweeps in a goroutine
	go janitor.StartSweeping(ctx)

	// Set up HTTP server
	mux := http.NewServeMux()
	httpapi.NewHandler(enhancer, sweeper, janitor, log).Register(mux)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Placemarks Service stopped")
}
