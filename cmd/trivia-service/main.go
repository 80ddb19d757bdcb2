package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"trivia-app/internal/app"
	"trivia-app/internal/config"
	"trivia-app/internal/httpapi"
	"trivia-app/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	addr := flag.String("addr", cfg.HTTP.Addr, "HTTP listen address")
	dbPath := flag.String("db", cfg.DB.Path, "SQLite file for game history (empty disables history)")
	flag.Parse()

	cfg.HTTP.Addr = *addr
	cfg.DB.Path = *dbPath

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service, closeResults, err := app.NewService(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to build game service", zap.Error(err))
	}
	defer func() {
		if err := closeResults(); err != nil {
			log.Error("failed to close history store", zap.Error(err))
		}
	}()

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           httpapi.NewRouter(service, log.Named("http"), cfg.HTTP.HandlerTimeout),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("trivia-service listening", zap.String("addr", cfg.HTTP.Addr))
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", zap.Error(err))
		}
		return
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
