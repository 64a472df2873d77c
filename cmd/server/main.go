// Package main runs the tenancy reconciliation server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pigeonworks-llc/tenancy-recon/internal/api"
	"github.com/pigeonworks-llc/tenancy-recon/internal/db"
	"github.com/pigeonworks-llc/tenancy-recon/internal/session"
	"github.com/pigeonworks-llc/tenancy-recon/internal/view"
	"github.com/pigeonworks-llc/tenancy-recon/pkg/config"
)

func main() {
	// Load configuration (.env, environment, optional settings file).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	// Setup structured JSON logging.
	level, err := cfg.SlogLevel()
	if err != nil {
		slog.Error("invalid log level", "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Open the run history store.
	conn, err := db.Open(cfg.Server.DBDSN)
	if err != nil {
		slog.Error("failed to open run history store", "error", err, "dsn", cfg.Server.DBDSN)
		os.Exit(1)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Error("failed to close run history store", "error", err)
		}
	}()

	slog.Info("run history store initialized", "dsn", cfg.Server.DBDSN)

	// Parse page templates.
	views, err := view.New()
	if err != nil {
		slog.Error("failed to parse templates", "error", err)
		os.Exit(1)
	}

	// Wire the handler.
	sessions := session.NewManager()
	history := db.NewRunHistory(conn)
	handler := api.NewHandler(logger, cfg, sessions, history, views)

	// Start server.
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	slog.Info("starting tenancy reconciliation server", "addr", addr, "port", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		slog.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
