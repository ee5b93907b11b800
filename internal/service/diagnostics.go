package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/redact"
)

// Diagnostics receives the full context of unexpected failures before the
// service replaces them with an opaque error.
type Diagnostics interface {
	Record(ctx context.Context, operation string, details map[string]any, fault error)
}

// LogDiagnostics records faults as structured error logs with the fault text redacted.
type LogDiagnostics struct {
	logger *slog.Logger
}

// NewLogDiagnostics creates a Diagnostics that writes to logger.
// If logger is nil, a default logger will be used.
func NewLogDiagnostics(logger *slog.Logger) *LogDiagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogDiagnostics{logger: logger.With(slog.String("component", "diagnostics"))}
}

var _ Diagnostics = (*LogDiagnostics)(nil)

// Record implements Diagnostics. The request-scoped logger in ctx, if any, is
// preferred so the entry carries the trace id.
func (d *LogDiagnostics) Record(ctx context.Context, operation string, details map[string]any, fault error) {
	log := logger.FromContextOrDefault(ctx, d.logger)

	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, len(keys)+2)
	attrs = append(attrs,
		slog.String("operation", operation),
		slog.String("error", redact.Error(fault)),
	)
	for _, key := range keys {
		attrs = append(attrs, slog.Any(key, details[key]))
	}

	log.ErrorContext(ctx, "task operation failed", attrs...)
}
