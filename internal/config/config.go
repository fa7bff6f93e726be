package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string        `env:"POLL_HTTP_ADDR"        envDefault:"0.0.0.0:8080"`
	DefaultDeadline time.Duration `env:"POLL_DEFAULT_DEADLINE" envDefault:"5m"`
	ShutdownTimeout time.Duration `env:"POLL_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// DatabaseURL enables the closed-poll results archive when set.
	DatabaseURL string `env:"POLL_DATABASE_URL"`

	GeneratorURL     string        `env:"POLL_GENERATOR_URL"     envDefault:"https://app.seker.live/fm1/send-message"`
	GeneratorID      string        `env:"POLL_GENERATOR_ID"`
	GeneratorTimeout time.Duration `env:"POLL_GENERATOR_TIMEOUT" envDefault:"20s"`

	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DefaultDeadline <= 0 {
		return Config{}, errors.New("POLL_DEFAULT_DEADLINE must be positive")
	}
	return cfg, nil
}

func (c Config) ArchiveEnabled() bool {
	return c.DatabaseURL != ""
}

func (c Config) GeneratorEnabled() bool {
	return c.GeneratorURL != "" && c.GeneratorID != ""
}

// NewLogger builds the root logger from LOG_LEVEL and LOG_FORMAT.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
