package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"trivia-app/internal/config"
)

type Option func(*zap.Config)

// WithMinLevel raises the configured level to at least level. The terminal
// game uses it so routine events stay off the screen.
func WithMinLevel(level zapcore.Level) Option {
	return func(c *zap.Config) {
		if c.Level.Level() < level {
			c.Level.SetLevel(level)
		}
	}
}

func New(cfg *config.Config, opts ...Option) (*zap.Logger, error) {
	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Env == "production" {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.LogLevel != "" {
		level, err := zapcore.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		zapCfg.Level = zap.NewAtomicLevelAt(level)
	}

	for _, opt := range opts {
		opt(&zapCfg)
	}

	return zapCfg.Build()
}
