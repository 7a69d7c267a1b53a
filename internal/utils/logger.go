// Package utils provides utility functions for the scheme recommendation engine.
package utils

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the shared application logger. InitLogger must run at
// startup; GetLogger falls back to a default development logger.
var Logger *zap.Logger

// InitLogger builds the global logger for the given level and stage.
// Production stages get JSON output on stdout/stderr; anything else
// gets the colored development encoder. Unknown levels fall back to
// info rather than failing startup.
func InitLogger(level, stage string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	switch strings.ToLower(stage) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Logger = logger

	return nil
}

// GetLogger returns the global logger, initializing if necessary.
func GetLogger() *zap.Logger {
	if Logger == nil {
		_ = InitLogger("info", "dev")
	}
	return Logger
}

// Sync flushes any buffered log entries.
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
