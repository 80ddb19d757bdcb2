package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"trivia-app/internal/app"
	"trivia-app/internal/config"
	"trivia-app/internal/logger"
	"trivia-app/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	token, err := cfg.TelegramToken()
	if err != nil {
		log.Fatal("telegram token is not configured", zap.Error(err))
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Telegram.Debug
	log.Info("authorized on account", zap.String("username", bot.Self.UserName))

	if _, err := bot.Request(tgbotapi.NewSetMyCommands(telegram.Commands()...)); err != nil {
		log.Warn("failed to set bot commands", zap.Error(err))
	}

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

	handler := telegram.NewHandler(bot, log.Named("telegram"), service)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("telegram handler stopped", zap.Error(err))
	}
}
