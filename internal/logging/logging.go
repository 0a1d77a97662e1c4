// Package logging builds the zap loggers used by the CLI and the server.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// New returns a JSON production logger at the given level ("debug", "info",
// "warn", "error"). An empty level means DefaultLevel.
func New(level string) (*zap.Logger, error) {
	logger, _, err := NewLeveled(level)
	return logger, err
}

// NewLeveled is New but also returns the logger's level handle so the
// level can be changed while the process runs.
func NewLeveled(level string) (*zap.Logger, zap.AtomicLevel, error) {
	lvl, err := parse(level)
	if err != nil {
		return nil, zap.AtomicLevel{}, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if lvl > zapcore.DebugLevel {
		config.Sampling = nil
	}

	logger, err := config.Build()
	if err != nil {
		return nil, zap.AtomicLevel{}, fmt.Errorf("build logger: %w", err)
	}
	return logger, config.Level, nil
}

// SetLevel parses level and applies it to al.
func SetLevel(al zap.AtomicLevel, level string) error {
	lvl, err := parse(level)
	if err != nil {
		return err
	}
	al.SetLevel(lvl)
	return nil
}

func parse(level string) (zapcore.Level, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("parse log level %q: %w", level, err)
	}
	return lvl, nil
}

// Verbose returns "debug" when verbose is set and the configured level
// otherwise.
func Verbose(configured string, verbose bool) string {
	if verbose {
		return zapcore.DebugLevel.String()
	}
	return configured
}
