package main

import (
	"log/slog"
	"os"

	"github.com/ganeshsahu2020/EcoListing/internal/config"
)

// initLogger installs the default slog.Logger (JSON or text) and returns it.
func initLogger(cfg config.LoggerConfig) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, options)
	} else {
		handler = slog.NewTextHandler(os.Stderr, options)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
