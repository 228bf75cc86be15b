package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// config is the daemon's environment.
type config struct {
	Addr     string
	DBPath   string
	LogLevel slog.Level
	Location *time.Location
	MongoURI string
	MongoDB  string
}

// loadConfig reads QUOTA_* variables, falling back to defaults.
func loadConfig(getenv func(string) string) (config, error) {
	cfg := config{
		Addr:     ":8080",
		DBPath:   "data/quota.db",
		LogLevel: slog.LevelInfo,
		Location: time.Local,
		MongoURI: getenv("QUOTA_MONGO_URI"),
		MongoDB:  getenv("QUOTA_MONGO_DB"),
	}
	if v := getenv("QUOTA_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := getenv("QUOTA_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("QUOTA_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("QUOTA_LOG_LEVEL: %w", err)
		}
	}
	if v := getenv("QUOTA_TZ"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return cfg, fmt.Errorf("QUOTA_TZ: %w", err)
		}
		cfg.Location = loc
	}
	return cfg, nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
