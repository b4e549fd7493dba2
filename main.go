package main

import (
	"io"
	"log/slog"
	"os"

	"pilot_logbook/internal/config"
)

func initLogger(cfg *config.Config, w io.Writer) {
	var logLevel slog.Level
	switch cfg.Log.Level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if cfg.Log.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Logger may not be initialized if configuration failed
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
