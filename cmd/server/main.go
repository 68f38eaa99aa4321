package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "carrental-backend/internal/api/http"
	"carrental-backend/internal/config"
	"carrental-backend/internal/jobs"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository/postgres"
	"carrental-backend/internal/repository/rediscache"
	"carrental-backend/internal/scheduler"
	"carrental-backend/internal/service"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Car Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Redis configuration", "address", cfg.GetRedisAddress(), "db", cfg.Redis.DB)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Redis. A failed ping is logged, not fatal: the cache layer
	// degrades to misses and the store remains authoritative.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddress(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis unreachable at startup, cache will degrade to misses", "error", err)
	} else {
		logger.Info("Redis connection established")
	}
	cancelPing()

	// Wire the core explicitly: store and cache are passed down, never
	// looked up from ambient state.
	store := postgres.NewStore(db)
	cache := rediscache.NewRentalCache(rdb)
	rentalSvc := service.NewRentalService(store, cache)

	handler := httpapi.NewRentalHandler(rentalSvc)
	router := httpapi.NewRouter(handler)

	// Scheduled jobs: cache warming and lifecycle reporting
	jobRunner := jobs.NewJobRunner(db, store, cache, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Info("Shutting down", "signal", fmt.Sprintf("%v", sig))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}
