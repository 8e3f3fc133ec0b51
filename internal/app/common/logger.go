package common

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger. Development mode gives a console encoder
// with colored levels, otherwise JSON. An empty level keeps the preset's default.
func NewLogger(development bool, level string) (*zap.Logger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	if level = strings.TrimSpace(level); level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}

	return config.Build()
}

// MustNewLogger creates a new logger and panics if it fails
func MustNewLogger(development bool, level string) *zap.Logger {
	logger, err := NewLogger(development, level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	return logger
}
