package config

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}
	if _, ok := validLogLevels[strings.ToLower(cfg.LogLevel)]; !ok {
		return ErrInvalidLogLevel
	}
	return nil
}

// ZapLevel maps the configured log level to a zap level. Unrecognized
// levels fall back to info.
func ZapLevel(cfg Config) zapcore.Level {
	if lvl, ok := validLogLevels[strings.ToLower(cfg.LogLevel)]; ok {
		return lvl
	}
	return zapcore.InfoLevel
}
