package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tasks-api/internal/service"
)

// DiagnosticRecord is one call captured by CapturingDiagnostics.
type DiagnosticRecord struct {
	Operation string
	Details   map[string]any
	Fault     error
}

// CapturingDiagnostics implements service.Diagnostics by keeping every record in memory.
type CapturingDiagnostics struct {
	mu      sync.Mutex
	records []DiagnosticRecord
}

var _ service.Diagnostics = (*CapturingDiagnostics)(nil)

// Record implements service.Diagnostics
func (d *CapturingDiagnostics) Record(_ context.Context, operation string, details map[string]any, fault error) {
	copied := make(map[string]any, len(details))
	for key, value := range details {
		copied[key] = value
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = append(d.records, DiagnosticRecord{
		Operation: operation,
		Details:   copied,
		Fault:     fault,
	})
}

// Records returns a copy of everything recorded so far.
func (d *CapturingDiagnostics) Records() []DiagnosticRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DiagnosticRecord(nil), d.records...)
}
