package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"trivia-app/internal/app"
	"trivia-app/internal/cli"
	"trivia-app/internal/config"
	"trivia-app/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	player := flag.String("player", cfg.Player, "player name recorded with finished games")
	dbPath := flag.String("db", cfg.DB.Path, "SQLite file for game history (empty disables history)")
	source := flag.String("bank", cfg.Bank.Source, "question source: builtin or opentdb")
	verbose := flag.Bool("verbose", false, "log game events below warn level to stderr")
	flag.Parse()

	cfg.DB.Path = *dbPath
	cfg.Bank.Source = *source
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	var logOpts []logger.Option
	if !*verbose {
		logOpts = append(logOpts, logger.WithMinLevel(zapcore.WarnLevel))
	}
	log, err := logger.New(cfg, logOpts...)
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

	if err := cli.Run(ctx, os.Stdin, os.Stdout, service, *player); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
