package main

import (
	"go.uber.org/zap"

	"github.com/trade-engine/assistant/internal/config"
)

// createLogger builds the process logger. Logs go to stderr by default so
// results on stdout stay machine readable.
func createLogger(level string, logging config.LoggingConfig) (*zap.Logger, error) {
	var cfg zap.Config

	switch level {
	case "debug":
		cfg = zap.NewDevelopmentConfig()
	case "info":
		cfg = zap.NewProductionConfig()
	case "warn":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg = zap.NewProductionConfig()
	}

	switch logging.Format {
	case "json":
		cfg.Encoding = "json"
	case "console":
		cfg.Encoding = "console"
	}

	output := logging.Output
	if output == "" {
		output = "stderr"
	}
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}
