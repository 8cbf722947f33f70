package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ja-ri/HabitQuest/internal/storage"
)

// Config holds runtime settings, all overridable via environment.
type Config struct {
	DBPath           string        `env:"HQ_DB_PATH"`
	RolloverInterval time.Duration `env:"HQ_ROLLOVER_INTERVAL" envDefault:"30s"`
	LogPath          string        `env:"HQ_LOG_PATH"`
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		path, err := storage.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	// A check interval past a minute can miss the rollover for most of a
	// minute after midnight; clamp rather than reject.
	if cfg.RolloverInterval <= 0 || cfg.RolloverInterval > time.Minute {
		cfg.RolloverInterval = 30 * time.Second
	}
	return cfg, nil
}

// Logger builds a file-backed zap logger so log lines never tear the TUI.
// Without HQ_LOG_PATH it is a no-op logger.
func (c Config) Logger() (*zap.Logger, error) {
	if c.LogPath == "" {
		return zap.NewNop(), nil
	}
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{c.LogPath}
	zc.ErrorOutputPaths = []string{c.LogPath}
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
