package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/linkshorter/linkshorter/internal/auth"
	"github.com/linkshorter/linkshorter/internal/config"
	"github.com/linkshorter/linkshorter/internal/handler"
	"github.com/linkshorter/linkshorter/internal/keygen"
	"github.com/linkshorter/linkshorter/internal/logger"
	"github.com/linkshorter/linkshorter/internal/middleware"
	"github.com/linkshorter/linkshorter/internal/service"
	"github.com/linkshorter/linkshorter/internal/store"
)

func main() {
	// ============================================================
	// LOAD CONFIGURATION
	// ============================================================
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)

	log.Info("starting linkshorter",
		"environment", cfg.App.Environment,
		"store_driver", cfg.Store.Driver,
		"cors", cfg.App.CORS,
		"no_ref", cfg.App.NoRef,
		"unique_link", cfg.App.UniqueLink,
	)

	if cfg.App.AccessPassword == "" {
		log.Warn("ACCESS_PASSWORD is not set; every create/delete request will be rejected")
	}

	// ============================================================
	// INITIALIZE STORE
	// ============================================================
	kv, err := openStore(&cfg.Store)
	if err != nil {
		log.Error("Failed to initialize store", "driver", cfg.Store.Driver, "error", err.Error())
		os.Exit(1)
	}

	// ============================================================
	// INITIALIZE SERVICE AND HANDLERS
	// ============================================================
	svc := service.NewShortenerService(kv, keygen.New(), cfg.App.UniqueLink)
	verifier := auth.NewVerifier(cfg.App.AccessPassword)

	h := handler.NewURLHandler(svc, verifier, handler.Options{
		CORS:  cfg.App.CORS,
		NoRef: cfg.App.NoRef,
	})
	router := h.SetupRoutes()

	// ============================================================
	// BUILD MIDDLEWARE CHAIN
	// ============================================================
	middlewares := []middleware.Middleware{
		middleware.RequestID,
		middleware.RecoveryWithLogger(log),
		middleware.LoggingWithLogger(log),
	}
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(
			middleware.RateLimiterConfig{
				Rate:     cfg.RateLimit.Rate,
				Burst:    cfg.RateLimit.Burst,
				Interval: cfg.RateLimit.Interval,
				Cleanup:  cfg.RateLimit.Cleanup,
			},
			log,
		)
		middlewares = append(middlewares, rateLimiter.Middleware())
		log.Info("rate limiter enabled",
			"rate", cfg.RateLimit.Rate,
			"burst", cfg.RateLimit.Burst,
		)
	}

	wrappedRouter := middleware.Chain(router, middlewares...)

	// ============================================================
	// CREATE SERVER WITH CONFIG TIMEOUTS
	// ============================================================
	addr := ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      wrappedRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)

	go func() {
		if cfg.IsDevelopment() {
			fmt.Printf("🚀 Server starting on http://localhost%s\n", addr)
			fmt.Println("───────────────────────────────────────")
			fmt.Println("Endpoints:")
			fmt.Println("  POST   /            - Create short link")
			fmt.Println("  POST   /{key}       - Create with custom key")
			fmt.Println("  POST   /api-auth    - Check password")
			fmt.Println("  POST   /api-del     - Delete by short_key field")
			fmt.Println("  GET    /{key}       - Redirect to target")
			fmt.Println("  DELETE /{key}       - Delete short link")
			fmt.Println("───────────────────────────────────────")
			fmt.Println("Press Ctrl+C to shutdown gracefully")
		}
		log.Info("server starting", "addr", "http://localhost"+addr)
		serverErr <- server.ListenAndServe()
	}()

	// ============================================================
	// WAIT FOR SHUTDOWN OR ERROR
	// ============================================================
	select {
	case err := <-serverErr:
		log.Error("server error", "error", err.Error())
		os.Exit(1)

	case sig := <-shutdown:
		log.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "error", err.Error())
			if err := server.Close(); err != nil {
				log.Error("forced shutdown failed", "error", err.Error())
			}
		}

		if err := kv.Close(); err != nil {
			log.Error("failed to close store", "error", err.Error())
		}

		log.Info("server stopped")
	}
}

// openStore builds the configured key-value store backend.
func openStore(cfg *config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return store.NewSQLiteStore(cfg.DSN)
	case "redis":
		return store.NewRedisStore(store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case "postgres":
		return store.NewPostgresStore(cfg.DSN)
	default:
		return store.NewMemoryStore(), nil
	}
}
