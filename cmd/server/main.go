package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webdemo/internal/config"
	"webdemo/internal/db"
	"webdemo/internal/models"
	"webdemo/internal/server"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	log.Info("starting webdemo", slog.String("env", cfg.Env), slog.String("addr", cfg.Address))

	database, err := db.Open(cfg.Storage.Path)
	if err != nil {
		log.Error("failed to open database", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	if err := models.SeedMessages(database, cfg.Pages.SeedMessages); err != nil {
		log.Error("failed to seed messages", slog.String("err", err.Error()))
		os.Exit(1)
	}

	srv, err := server.New(database, log, cfg)
	if err != nil {
		log.Error("failed to build server", slog.String("err", err.Error()))
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         cfg.Address,
		Handler:      srv,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info("shutdown signal received")
		cancel()
	}()

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed", slog.String("err", err.Error()))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", slog.String("err", err.Error()))
		return
	}
	log.Info("server stopped gracefully")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
