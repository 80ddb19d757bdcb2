// Package app wires configuration into the pieces every command needs.
package app

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trivia-app/internal/config"
	"trivia-app/internal/opentdb"
	"trivia-app/internal/trivia"
	"trivia-app/internal/trivia/sqlite"
)

type QuestionsFetcher func(ctx context.Context, amount int) ([]opentdb.RawQuestion, error)

// LoadBank returns the configured question bank. The built-in bank is used
// when the remote source fails or yields no usable questions.
func LoadBank(ctx context.Context, cfg config.Bank, fetch QuestionsFetcher, log *zap.Logger) trivia.Bank {
	if cfg.Source != config.BankSourceOpenTDB || fetch == nil {
		return trivia.DefaultBank()
	}

	if cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.FetchTimeout)
		defer cancel()
	}

	raw, err := fetch(ctx, cfg.Amount)
	if err != nil {
		log.Warn("falling back to built-in questions", zap.Error(err))
		return trivia.DefaultBank()
	}

	bank, err := trivia.NewBank(trivia.BuildQuestions(raw))
	if err != nil {
		log.Warn("falling back to built-in questions", zap.Error(err))
		return trivia.DefaultBank()
	}

	log.Info("loaded questions from opentdb", zap.Int("count", bank.Len()))
	return bank
}

// OpenResults opens the game history store. An empty path disables history
// and returns a nil repository.
func OpenResults(cfg config.DB) (trivia.ResultRepository, func() error, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, func() error { return nil }, nil
	}

	store, err := sqlite.NewSQLiteStore(cfg.Path)
	if err != nil {
		return nil, nil, err
	}
	return store, store.Close, nil
}

// NewService builds the game service every presentation layer runs on. The
// returned close func releases the history store.
func NewService(ctx context.Context, cfg *config.Config, log *zap.Logger) (*trivia.Service, func() error, error) {
	fetcher := opentdb.NewClient(&http.Client{Timeout: cfg.Bank.FetchTimeout})
	bank := LoadBank(ctx, cfg.Bank, fetcher.FetchQuestions, log)

	results, closeResults, err := OpenResults(cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return trivia.NewService(bank, results, log.Named("trivia")), closeResults, nil
}
