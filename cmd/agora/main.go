package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arawak/agora/internal/config"
	"github.com/arawak/agora/internal/httpapi"
	"github.com/arawak/agora/internal/render"
	"github.com/arawak/agora/internal/seed"
	"github.com/arawak/agora/internal/store"
	"github.com/arawak/agora/migrations"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})).With("version", version)

	if err := migrations.Up(cfg.DBDriver, migrationDSN(cfg)); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	db, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("failed to open db", "error", err)
		os.Exit(1)
	}

	storeSvc := store.New(db, render.New(), logger)

	if cfg.Seed {
		items, err := seed.Load(cfg.SeedFile)
		if err != nil {
			logger.Error("failed to load seed questions", "error", err)
			os.Exit(1)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		_, err = seed.Run(ctx, storeSvc, items, logger)
		cancel()
		if err != nil {
			logger.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	router := httpapi.NewRouter(cfg, storeSvc, logger)

	srv := &http.Server{Addr: cfg.Bind, Handler: router, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Info("server starting", "addr", cfg.Bind, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}
}

func migrationDSN(cfg *config.Config) string {
	if cfg.DBDriver == "sqlite" {
		return store.SQLiteDSN(cfg.DBDSN)
	}
	return cfg.DBDSN
}
