package config

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Env != "local" || cfg.Player != "player" || cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Bank.Source != BankSourceBuiltin || cfg.Bank.Amount != 10 {
		t.Fatalf("unexpected bank defaults: %+v", cfg.Bank)
	}
	if cfg.HTTP.ReadHeaderTimeout != 5*time.Second || cfg.Remote.HTTPTimeout != 5*time.Second {
		t.Fatalf("unexpected durations: http=%v remote=%v", cfg.HTTP.ReadHeaderTimeout, cfg.Remote.HTTPTimeout)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DATABASE_PATH", "/tmp/games.db")
	t.Setenv("TELEGRAM_API_TOKEN", "token-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Env != "production" || cfg.HTTP.Addr != ":9090" || cfg.DB.Path != "/tmp/games.db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	token, err := cfg.TelegramToken()
	if err != nil || token != "token-123" {
		t.Fatalf("TelegramToken() = (%q, %v)", token, err)
	}
}

func TestLoadRejectsUnknownBankSource(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("BANK_SOURCE", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown bank source")
	}
}

func TestTelegramTokenMissing(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.TelegramToken(); !errors.Is(err, ErrMissingTelegramToken) {
		t.Fatalf("err = %v, want ErrMissingTelegramToken", err)
	}
}

func TestValidateAfterOverride(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg.Bank.Source = "foo"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for overridden bank source")
	}

	cfg.Bank.Source = BankSourceOpenTDB
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate(opentdb) = %v", err)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
