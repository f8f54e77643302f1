package app

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the diagnostic logger. It is unrelated to the activity log: it carries
// SQL traces and failures for operators, not the clerk's audit trail.
func NewLogger(l Logging) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if l.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if len(l.Output) > 0 {
		config.OutputPaths = l.Output
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
