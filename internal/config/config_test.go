package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/park285/justcheckers-go/internal/checkers"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CHECKERS_CONFIG", "CHECKERS_VARIANT", "CHECKERS_LIGHT_NAME", "CHECKERS_DARK_NAME",
		"CHECKERS_RENDER_DIR", "CHECKERS_SQUARE_SIZE", "CHECKERS_SHOW_COORDS",
		"CHECKERS_MESSAGES_DIR", "CHECKERS_MAX_MATCHES", "REDIS_URL",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_TO_CONSOLE", "LOG_FILE", "LOG_CALLER",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Variant != checkers.American {
		t.Fatalf("expected american, got %s", cfg.Variant)
	}
	if cfg.SquareSize != 64 || !cfg.ShowCoords || cfg.MaxActiveMatches != 200 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Log.Format != "legacy" || !cfg.Log.Console {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "checkers.yaml")
	body := []byte(`
variant: international
light_name: Ann
dark_name: Bob
square_size: 48
show_coords: false
log:
  format: json
  console: false
`)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CHECKERS_CONFIG", path)
	t.Setenv("CHECKERS_SQUARE_SIZE", "80")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Variant != checkers.International || cfg.LightName != "Ann" || cfg.DarkName != "Bob" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.SquareSize != 80 {
		t.Fatalf("env should override file, got %d", cfg.SquareSize)
	}
	if cfg.ShowCoords || cfg.Log.Console || cfg.Log.Format != "json" {
		t.Fatalf("bool/log values not applied: %+v", cfg)
	}
	rules, err := cfg.Rules()
	if err != nil || rules.BoardSize != 10 {
		t.Fatalf("rules: %+v %v", rules, err)
	}
}

func TestLoadRejectsUnknownVariant(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHECKERS_VARIANT", "xiangqi")
	_, err := Load()
	if !errors.Is(err, checkers.ErrUnknownVariant) {
		t.Fatalf("expected ErrUnknownVariant, got %v", err)
	}
}

func TestLoadRejectsBadSquareSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHECKERS_SQUARE_SIZE", "4")
	if _, err := Load(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoadRedisURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://127.0.0.1:6379/2")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.RedisURL != "redis://127.0.0.1:6379/2" {
		t.Fatalf("unexpected redis url %q", cfg.RedisURL)
	}

	t.Setenv("REDIS_URL", "http://example.com")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-redis url")
	}
}
