package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingTelegramToken = errors.New("missing TELEGRAM_API_TOKEN")

const (
	BankSourceBuiltin = "builtin"
	BankSourceOpenTDB = "opentdb"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env      string   `mapstructure:"env"`       // local, dev, production
	LogLevel string   `mapstructure:"log_level"` // zap level name
	Player   string   `mapstructure:"player"`    // default player name for the terminal client
	HTTP     HTTP     `mapstructure:"http"`
	DB       DB       `mapstructure:"database"`
	Bank     Bank     `mapstructure:"bank"`
	Remote   Remote   `mapstructure:"remote"`
	Telegram Telegram `mapstructure:"telegram"`
}

type HTTP struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	HandlerTimeout    time.Duration `mapstructure:"handler_timeout"`
}

// DB points at the SQLite file holding finished games. Empty disables history.
type DB struct {
	Path string `mapstructure:"path"`
}

type Bank struct {
	Source       string        `mapstructure:"source"`
	Amount       int           `mapstructure:"amount"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type Remote struct {
	ServerURL   string        `mapstructure:"server_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
}

type Telegram struct {
	Token string `mapstructure:"-"` // loaded from environment only
	Debug bool   `mapstructure:"debug"`
}

// Load reads .env, an optional config/config.yaml, and environment overrides.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("log_level", "info")
	v.SetDefault("player", "player")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_header_timeout", "5s")
	v.SetDefault("http.handler_timeout", "10s")
	v.SetDefault("database.path", "trivia.db")
	v.SetDefault("bank.source", BankSourceBuiltin)
	v.SetDefault("bank.amount", 10)
	v.SetDefault("bank.fetch_timeout", "5s")
	v.SetDefault("remote.server_url", "http://127.0.0.1:8080")
	v.SetDefault("remote.http_timeout", "5s")
	v.SetDefault("telegram.debug", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Telegram.Token = v.GetString("telegram_api_token")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// TelegramToken returns the bot token, which only the bot requires.
func (c *Config) TelegramToken() (string, error) {
	if c.Telegram.Token == "" {
		return "", ErrMissingTelegramToken
	}
	return c.Telegram.Token, nil
}

// Validate checks values that flags may have overridden after Load.
func (c *Config) Validate() error {
	switch c.Bank.Source {
	case BankSourceBuiltin, BankSourceOpenTDB:
	default:
		return fmt.Errorf("unknown bank source %q", c.Bank.Source)
	}
	if c.Bank.Amount <= 0 {
		return fmt.Errorf("bank.amount must be positive, got %d", c.Bank.Amount)
	}
	return nil
}
