// internal/quoting/transport/audit.go
package transport

import (
	"context"
	"time"
)

// AuditRecord captures one carrier call end to end. Carrier APIs are
// contractual; disputes require replaying exactly what was sent and what
// came back.
type AuditRecord struct {
	ID            string
	CarrierID     string
	ApplicationID string
	Operation     string
	Method        string
	URL           string
	RequestBody   string
	ResponseBody  string
	StatusCode    int
	Error         string
	StartedAt     time.Time
	Duration      time.Duration
}

// AuditSink persists audit records. Implementations must tolerate partial
// records (failed calls have no response body or status).
type AuditSink interface {
	Record(ctx context.Context, record AuditRecord) error
}

// NopSink discards audit records. Test use only.
type NopSink struct{}

func (NopSink) Record(context.Context, AuditRecord) error { return nil }
