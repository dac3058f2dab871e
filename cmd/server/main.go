package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"carona/internal/app"
	"carona/internal/config"
	"carona/internal/handler"
	internalRedis "carona/internal/redis"
	"carona/internal/repository/postgres"
	"carona/internal/service"
	"carona/internal/storage"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	// Initialize database.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize Redis.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Stores.
	snapshotStore := internalRedis.NewSnapshotStore(redisClient)
	photoStore := storage.NewFileStore(cfg.Uploads.Dir, cfg.Uploads.BaseURL)

	// Repositories.
	userRepo := postgres.NewUserRepository(db)
	rideRepo := postgres.NewRideRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)

	// Services.
	rideService := service.NewRideService(rideRepo)
	listingService := service.NewListingService(rideRepo, userRepo, ratingRepo, snapshotStore)
	ratingService := service.NewRatingService(ratingRepo, rideRepo)
	userService := service.NewUserService(userRepo, photoStore, snapshotStore)

	// Handlers.
	rideHandler := handler.NewRideHandler(rideService, listingService)
	userHandler := handler.NewUserHandler(userService)
	ratingHandler := handler.NewRatingHandler(ratingService)

	// Router.
	router := app.NewRouter(app.RouterDeps{
		RideHandler:   rideHandler,
		UserHandler:   userHandler,
		RatingHandler: ratingHandler,
		RedisClient:   redisClient,
		NewRelicApp:   nrApp,
		JWTSecret:     cfg.Auth.JWTSecret,
		UploadsDir:    cfg.Uploads.Dir,
		UploadsURL:    cfg.Uploads.BaseURL,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
