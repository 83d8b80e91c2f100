package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"birds-api/internal/config"
	"birds-api/internal/platform/logger"
	"birds-api/internal/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, closeStore, err := router.NewRouter(ctx, router.Options{Config: cfg, Logger: log})
	if err != nil {
		log.Error("router setup failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Error("close store", map[string]any{"error": err.Error()})
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Shutdown drena requests en curso; el store se cierra recién después.
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", map[string]any{"error": err.Error()})
		}
	}()

	log.Info("starting server", map[string]any{
		"addr":     cfg.Addr,
		"envelope": cfg.Envelope,
		"render":   cfg.Render,
	})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		_ = closeStore()
		os.Exit(1)
	}
	<-drained
	log.Info("server stopped", nil)
}
