package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/itemshuffle/internal/config"
	"github.com/jwebster45206/itemshuffle/internal/handlers"
	"github.com/jwebster45206/itemshuffle/internal/logger"
	"github.com/jwebster45206/itemshuffle/internal/middleware"
	"github.com/jwebster45206/itemshuffle/internal/multiworld"
	"github.com/jwebster45206/itemshuffle/internal/session"
	"github.com/jwebster45206/itemshuffle/internal/storage"
	"github.com/jwebster45206/itemshuffle/internal/worker"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Item Shuffle API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"data_dir", cfg.DataDir,
		"relay_interval", cfg.RelayInterval)

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.DataDir, cfg.SessionTTL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()

	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	relay := multiworld.NewRelay(store.Client(), log)
	sessions := session.NewManager(store, log, session.WithRelay(relay))

	w := worker.New(sessions, store.Client(), log, cfg.WorkerID, cfg.RelayInterval)
	go func() {
		if err := w.Start(); err != nil {
			log.Error("Worker error", "error", err)
			os.Exit(1)
		}
	}()

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, sessions, log)
	mux.Handle("/health", healthHandler)

	seedHandler := handlers.NewSeedHandler(log, store)
	mux.Handle("/v1/seeds", seedHandler)
	mux.Handle("/v1/seeds/", seedHandler)

	sessionHandler := handlers.NewSessionHandler(sessions, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", sessionHandler)

	var handler http.Handler = mux
	if cfg.RateLimit > 0 {
		handler = middleware.RateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst)(handler)
	}
	handler = middleware.Logger(middleware.Recovery(handler))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")
	w.Stop()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	if err := sessions.SaveAll(shutdownCtx); err != nil {
		log.Error("Failed to save sessions", "error", err)
	}

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
