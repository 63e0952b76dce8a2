package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/refdeck/refdeck/internal/audit"
	"github.com/refdeck/refdeck/internal/payload"
)

// Append inserts a record at the end of the trail.
// Uses ON CONFLICT(trace_id) DO NOTHING for idempotency - re-appending the
// same record is silently ignored.
func (s *Store) Append(ctx context.Context, rec audit.Record) error {
	var payloadText sql.NullString
	if rec.Payload != nil {
		data, err := payload.MarshalCanonical(rec.Payload)
		if err != nil {
			return fmt.Errorf("append record %s: marshal payload: %w", rec.TraceID, err)
		}
		payloadText = sql.NullString{String: string(data), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_records
		(seq, trace_id, ts_unix_nano, layer, status, message, payload, capture_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(trace_id) DO NOTHING
	`,
		rec.Seq,
		rec.TraceID,
		rec.Time.UnixNano(),
		string(rec.Layer),
		string(rec.Status),
		rec.Message,
		payloadText,
		rec.CaptureError,
	)
	if err != nil {
		return fmt.Errorf("append record %s: %w", rec.TraceID, err)
	}

	return nil
}

// List returns all records in append order, oldest first.
// Returns an empty slice (not nil) when the trail is empty.
func (s *Store) List(ctx context.Context) ([]audit.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, trace_id, ts_unix_nano, layer, status, message, payload, capture_error
		FROM audit_records
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []audit.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}

// Clear deletes every record. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM audit_records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	return nil
}

// scanRecord reads one row into an audit.Record.
func scanRecord(rows *sql.Rows) (audit.Record, error) {
	var (
		rec         audit.Record
		tsNano      int64
		layer       string
		status      string
		payloadText sql.NullString
	)

	if err := rows.Scan(
		&rec.Seq,
		&rec.TraceID,
		&tsNano,
		&layer,
		&status,
		&rec.Message,
		&payloadText,
		&rec.CaptureError,
	); err != nil {
		return audit.Record{}, fmt.Errorf("scan record: %w", err)
	}

	rec.Time = time.Unix(0, tsNano).UTC()
	rec.Layer = audit.Layer(layer)
	rec.Status = audit.Status(status)

	if payloadText.Valid {
		val, err := payload.UnmarshalValue([]byte(payloadText.String))
		if err != nil {
			return audit.Record{}, fmt.Errorf("decode payload for record %s: %w", rec.TraceID, err)
		}
		rec.Payload = val
	}

	return rec, nil
}
