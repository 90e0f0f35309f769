package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctchen222/Crypto-Tracker/internal/api/controller"
	"ctchen222/Crypto-Tracker/internal/api/repository"
	"ctchen222/Crypto-Tracker/internal/api/service"
	"ctchen222/Crypto-Tracker/internal/cache"
	"ctchen222/Crypto-Tracker/internal/config"
	"ctchen222/Crypto-Tracker/internal/db"
	"ctchen222/Crypto-Tracker/internal/email"
	"ctchen222/Crypto-Tracker/internal/logger"
	"ctchen222/Crypto-Tracker/internal/server"
	"ctchen222/Crypto-Tracker/internal/telemetry"
	"ctchen222/Crypto-Tracker/internal/upstream"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize telemetry
	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		otelEndpoint = "otel-collector:4317"
	}
	shutdown, err := telemetry.InitOtel(otelEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init()

	// Initialize SQLite DB
	pool, err := db.Connect(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize sqlite db: %v", err)
	}
	defer pool.Close()

	// Response cache: in-process by default, Redis when configured.
	var store cache.Store
	if cfg.Cache.Backend == "redis" {
		rdb, err := db.NewRedisClient(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			log.Fatalf("failed to initialize redis: %v", err)
		}
		defer rdb.Close()
		store = cache.NewRedis(rdb, cfg.Cache.TTL)
	} else {
		store = cache.NewMemory(cfg.Cache.TTL)
	}

	// Create repositories and services
	userRepo := repository.NewUserRepository(pool)
	tokens := service.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime)
	mailer := email.NewSMTPMailer(cfg.Email)
	userService := service.NewUserService(userRepo, tokens, mailer, cfg.Server.FrontendURL, cfg.Auth.ResetLifetime)
	watchlistService := service.NewWatchlistService(userRepo)

	// Create controllers
	authController := controller.NewAuthController(userService)
	coinController := controller.NewCoinController(upstream.NewCoinGecko(cfg.Upstream), upstream.NewNews(cfg.Upstream), store)
	watchlistController := controller.NewWatchlistController(watchlistService)

	// Create the Gin-based server
	srv := server.NewServer(tokens, authController, coinController, watchlistController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on :%s", cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
