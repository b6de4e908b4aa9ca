// Package logging builds the zap loggers used across mentordeck.
// Rendering is a leaf concern: core packages log at debug/warn only and
// never surface rendering problems as errors to the host.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a production logger at the given level ("debug", "info",
// "warn", "error"). Verbose CLI runs pass "debug".
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Nop returns a logger that discards everything. Core components accept
// a *zap.Logger and treat nil as Nop via this helper.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// OrNop returns logger unchanged, or a no-op logger when nil. Keeps the
// hot rendering path free of nil checks.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
