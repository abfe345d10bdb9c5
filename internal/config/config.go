package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/park285/justcheckers-go/internal/checkers"
	"github.com/park285/justcheckers-go/internal/obslog"
)

type AppConfig struct {
	Variant   checkers.Variant
	LightName string
	DarkName  string

	RenderDir   string
	SquareSize  int
	ShowCoords  bool
	MessagesDir string

	MaxActiveMatches int
	// RedisURL enables the Redis profile store, e.g. redis://localhost:6379/0.
	RedisURL string

	Log obslog.Config
}

// fileConfig mirrors the optional YAML file named by CHECKERS_CONFIG.
type fileConfig struct {
	Variant          string `yaml:"variant"`
	LightName        string `yaml:"light_name"`
	DarkName         string `yaml:"dark_name"`
	RenderDir        string `yaml:"render_dir"`
	SquareSize       int    `yaml:"square_size"`
	ShowCoords       *bool  `yaml:"show_coords"`
	MessagesDir      string `yaml:"messages_dir"`
	MaxActiveMatches int    `yaml:"max_active_matches"`
	RedisURL         string `yaml:"redis_url"`
	Log              struct {
		Level   string `yaml:"level"`
		Format  string `yaml:"format"`
		Console *bool  `yaml:"console"`
		File    string `yaml:"file"`
		Caller  *bool  `yaml:"caller"`
	} `yaml:"log"`
}

func defaults() *AppConfig {
	return &AppConfig{
		Variant:          checkers.American,
		LightName:        "Light",
		DarkName:         "Dark",
		SquareSize:       64,
		ShowCoords:       true,
		MaxActiveMatches: 200,
		Log: obslog.Config{
			Level:   "warn",
			Format:  "legacy",
			Console: true,
		},
	}
}

// Load reads CHECKERS_CONFIG (if set) and then applies environment overrides.
func Load() (*AppConfig, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CHECKERS_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := cfg.applyYAML(raw); err != nil {
			return nil, err
		}
	}

	if v := strings.TrimSpace(os.Getenv("CHECKERS_VARIANT")); v != "" {
		variant, err := checkers.ParseVariant(v)
		if err != nil {
			return nil, err
		}
		cfg.Variant = variant
	}
	if v := strings.TrimSpace(os.Getenv("CHECKERS_LIGHT_NAME")); v != "" {
		cfg.LightName = v
	}
	if v := strings.TrimSpace(os.Getenv("CHECKERS_DARK_NAME")); v != "" {
		cfg.DarkName = v
	}
	if v := strings.TrimSpace(os.Getenv("CHECKERS_RENDER_DIR")); v != "" {
		cfg.RenderDir = v
	}
	if v := strings.TrimSpace(os.Getenv("CHECKERS_SQUARE_SIZE")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SquareSize = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHECKERS_SHOW_COORDS")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ShowCoords = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("CHECKERS_MESSAGES_DIR")); v != "" {
		cfg.MessagesDir = v
	}
	if v := strings.TrimSpace(os.Getenv("CHECKERS_MAX_MATCHES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxActiveMatches = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}

	// Logging
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FORMAT")); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_TO_CONSOLE")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.Console = b
		}
	}
	if v := strings.TrimSpace(os.Getenv("LOG_FILE")); v != "" {
		cfg.Log.File = v
	}
	if v := strings.TrimSpace(os.Getenv("LOG_CALLER")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Log.Caller = b
		}
	}
	cfg.Log = cfg.Log.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyYAML(raw []byte) error {
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if v := strings.TrimSpace(fc.Variant); v != "" {
		variant, err := checkers.ParseVariant(v)
		if err != nil {
			return err
		}
		c.Variant = variant
	}
	if v := strings.TrimSpace(fc.LightName); v != "" {
		c.LightName = v
	}
	if v := strings.TrimSpace(fc.DarkName); v != "" {
		c.DarkName = v
	}
	if v := strings.TrimSpace(fc.RenderDir); v != "" {
		c.RenderDir = v
	}
	if fc.SquareSize > 0 {
		c.SquareSize = fc.SquareSize
	}
	if fc.ShowCoords != nil {
		c.ShowCoords = *fc.ShowCoords
	}
	if v := strings.TrimSpace(fc.MessagesDir); v != "" {
		c.MessagesDir = v
	}
	if fc.MaxActiveMatches > 0 {
		c.MaxActiveMatches = fc.MaxActiveMatches
	}
	if v := strings.TrimSpace(fc.RedisURL); v != "" {
		c.RedisURL = v
	}
	if v := strings.TrimSpace(fc.Log.Level); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(fc.Log.Format); v != "" {
		c.Log.Format = v
	}
	if fc.Log.Console != nil {
		c.Log.Console = *fc.Log.Console
	}
	if v := strings.TrimSpace(fc.Log.File); v != "" {
		c.Log.File = v
	}
	if fc.Log.Caller != nil {
		c.Log.Caller = *fc.Log.Caller
	}
	return nil
}

func (c *AppConfig) Validate() error {
	if c.SquareSize < 16 || c.SquareSize > 256 {
		return fmt.Errorf("square size %d out of range [16, 256]", c.SquareSize)
	}
	if c.LightName == c.DarkName {
		return errors.New("light and dark player names must differ")
	}
	if c.RedisURL != "" && !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
		return fmt.Errorf("unsupported redis url %q", c.RedisURL)
	}
	return nil
}

// Rules returns the rule set for the configured variant.
func (c *AppConfig) Rules() (checkers.Rules, error) {
	return checkers.RulesFor(c.Variant)
}
