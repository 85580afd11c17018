// internal/quoting/audit/store.go

// Package audit persists carrier call records to Postgres. Carrier APIs
// are contractual; every request and raw response must be replayable.
package audit

import (
	"context"
	"database/sql"

	"carrier-quoting/internal/common/errors"
	"carrier-quoting/internal/common/logger"
	"carrier-quoting/internal/quoting/transport"
)

const insertRecord = `
	INSERT INTO carrier_call_audit (
		id, carrier_id, application_id, operation, method, url,
		request_body, response_body, status_code, error, started_at, duration_ms
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// Store writes audit records through a shared *sql.DB.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{db: db, logger: log}
}

// Record implements transport.AuditSink.
func (s *Store) Record(ctx context.Context, r transport.AuditRecord) error {
	_, err := s.db.ExecContext(ctx, insertRecord,
		r.ID,
		r.CarrierID,
		nullable(r.ApplicationID),
		r.Operation,
		r.Method,
		r.URL,
		r.RequestBody,
		nullable(r.ResponseBody),
		nullableInt(r.StatusCode),
		nullable(r.Error),
		r.StartedAt,
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return errors.NewAuditWriteFailedError(err)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}
