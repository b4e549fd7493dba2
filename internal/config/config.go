package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the application reads
const EnvPrefix = "PILOT_LOGBOOK"

// ConfigPathEnv names the variable holding an explicit config file path
const ConfigPathEnv = EnvPrefix + "_CONFIG_PATH"

// Config holds all configuration for the CLI and the watch daemon
type Config struct {
	LogbookPath   string        // ForeFlight export to read when no file argument is given
	DBPath        string        // Path to the SQLite archive
	CategoryClass string        // Category and class used for the per-class currency rules
	WatchInterval time.Duration // How often watch mode re-reads the logbook
	WarnDays      int           // Warn when a currency expires within this many days
	Log           LogConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from .env, the config file and environment variables
func Load() (*Config, error) {
	// A missing .env is the common case
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetDefault("logbook_path", "")
	v.SetDefault("db_path", "pilot_logbook.db")
	v.SetDefault("category_class", "airplane_single_engine_land")
	v.SetDefault("watch_interval", "1h")
	v.SetDefault("warn_days", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/pilot_logbook")
	v.AddConfigPath(".")

	if configPath := os.Getenv(ConfigPathEnv); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Defaults and env vars only. Logger isn't initialized yet.
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		LogbookPath:   v.GetString("logbook_path"),
		DBPath:        v.GetString("db_path"),
		CategoryClass: v.GetString("category_class"),
		WatchInterval: v.GetDuration("watch_interval"),
		WarnDays:      v.GetInt("warn_days"),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// validate validates the configuration values
func validate(cfg *Config) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}

	if cfg.CategoryClass == "" {
		return fmt.Errorf("category_class is required")
	}

	if cfg.WatchInterval <= 0 {
		return fmt.Errorf("watch_interval must be greater than 0")
	}

	if cfg.WarnDays < 0 {
		return fmt.Errorf("warn_days must not be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
