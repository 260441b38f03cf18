// Package logging wraps zerolog the way the teacher's internal/logging
// does: a package-level InitLogger, a context-carried logger, and Log*
// convenience wrappers. The teacher's HTTP correlation-ID middleware has no
// equivalent here — this module has no HTTP surface — so it is replaced
// with NewRun/WithStage, which tag a logger with the pipeline run and
// stage producing each log line.
package logging

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	runIDKey  contextKey = "run_id"
	loggerKey contextKey = "logger"
)

// InitLogger configures the global logger for console output.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// NewRun returns a context carrying a logger tagged with a fresh run ID, so
// every stage of one pipeline invocation logs under the same ID.
func NewRun(ctx context.Context) context.Context {
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Logger()
	ctx = context.WithValue(ctx, runIDKey, runID)
	return context.WithValue(ctx, loggerKey, logger)
}

// WithStage returns a logger tagged with the given pipeline stage name.
func WithStage(ctx context.Context, stage string) *zerolog.Logger {
	l := FromContext(ctx).With().Str("stage", stage).Logger()
	return &l
}

// FromContext returns the logger carried in ctx, or the global logger if
// none was attached.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return &logger
	}
	return &log.Logger
}

// RunID returns the run identifier carried in ctx, or "" if none.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// LogError logs an error with context.
func LogError(ctx context.Context, err error, message string, fields map[string]interface{}) {
	event := FromContext(ctx).Error().Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

// LogInfo logs an info message with context.
func LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
	event := FromContext(ctx).Info()
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

// LogWarning logs a warning message with context.
func LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	event := FromContext(ctx).Warn()
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}
