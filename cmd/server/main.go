package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matelog-backend/internal/config"
	"matelog-backend/internal/database"
	"matelog-backend/internal/handlers"
	"matelog-backend/internal/middleware"
	"matelog-backend/internal/repository"
	"matelog-backend/internal/router"
	"matelog-backend/internal/services"
	"matelog-backend/internal/session"
)

func main() {
	log.Println("🚀 Starting Matelog Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	activityRepo := repository.NewScreenActivityRepo(pool)
	studySessionRepo := repository.NewStudySessionRepo(pool)
	returnEventRepo := repository.NewReturnEventRepo(pool)

	// ──── Initialize Services ────
	clock := services.SystemClock{}
	sessionStore := session.NewRedisStore(redisClient, cfg.SessionTTL)
	sessionAuth := middleware.NewSessionAuth(sessionStore)
	identityService := services.NewIdentityService(userRepo, sessionStore, clock)
	trackingService := services.NewTrackingService(activityRepo, studySessionRepo, returnEventRepo, clock)

	// ──── Initialize Handlers ────
	cookie := session.Cookie{Secure: cfg.IsProduction(), MaxAge: cfg.SessionTTL}
	userHandler := handlers.NewUserHandler(identityService, cookie)
	trackingHandler := handlers.NewTrackingHandler(trackingService, clock)

	// ──── Step 5: Start HTTP Server ────
	r := router.New(sessionAuth, userHandler, trackingHandler, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Matelog Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
