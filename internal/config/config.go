package config

import (
	"log/slog"
	"os"
	"strings"
)

const (
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultEnv           = "dev"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
	defaultMigrationsDir = "migrations"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env            string
	DBPath         string
	Port           string
	LogLevel       string
	LogFormat      string
	RiskConfigPath string
	MigrationsDir  string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	if err := loadDotEnv(".env"); err != nil {
		slog.Warn("config.dotenv", "error", err)
	}

	cfg := Config{
		Env:            os.Getenv("APP_ENV"),
		DBPath:         os.Getenv("DB_PATH"),
		Port:           os.Getenv("PORT"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
		RiskConfigPath: os.Getenv("RISK_CONFIG"),
		MigrationsDir:  os.Getenv("MIGRATIONS_DIR"),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaultLogFormat
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = defaultMigrationsDir
	}

	return cfg
}

// IsDev reports whether the app runs in the development environment.
func (c Config) IsDev() bool {
	return strings.EqualFold(c.Env, "dev") || strings.EqualFold(c.Env, "development")
}
