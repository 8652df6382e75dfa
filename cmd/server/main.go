package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"linkledger/internal/config"
	"linkledger/internal/db"
	"linkledger/internal/email"
	"linkledger/internal/jobs"
	"linkledger/internal/metrics"
	"linkledger/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Register Prometheus collectors
	metrics.Init(database)

	notifier := email.NewNotifier(cfg, database)

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, notifier); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Background published-URL checker
	if cfg.EnableLinkChecker {
		checker := jobs.NewLinkChecker(database,
			time.Duration(cfg.LinkCheckIntervalMin)*time.Minute,
			cfg.LinkCheckMaxAgeHours)
		go checker.Start(ctx)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
