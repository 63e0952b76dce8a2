package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/refdeck/refdeck/internal/payload"
)

// Engine is the audit log engine.
//
// Every reported action becomes exactly one Record, appended to the trail
// in call order. Records carry non-decreasing timestamps and session-unique
// trace identifiers.
//
// Thread-safety model: Record, Clear, and View are serialized by one mutex.
// Append-then-observe is therefore atomic - a View never sees a partially
// stamped record or an interleaved clear.
type Engine struct {
	mu       sync.Mutex
	clock    Clock
	traceGen TraceGenerator
	trail    Trail
	seq      int64
	lastTime time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the timestamp source.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithTraceGenerator sets the trace identifier source.
func WithTraceGenerator(g TraceGenerator) Option {
	return func(e *Engine) {
		e.traceGen = g
	}
}

// WithTrail sets the record storage.
func WithTrail(t Trail) Option {
	return func(e *Engine) {
		e.trail = t
	}
}

// New creates an engine with an in-memory trail, the system clock, and
// random trace tokens. Options override each collaborator.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:    SystemClock{},
		traceGen: RandomGenerator{},
		trail:    NewMemoryTrail(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Record stamps and appends one audit record for a reported action.
//
// The payload argument is optional: nil means the action carried no data,
// and the stored record has a true absence rather than an empty snapshot.
// A non-nil payload is captured as a structural deep copy; mutating the
// original afterwards never alters the stored record.
//
// The layer and status sets are closed: a tag outside them is a caller
// bug and is rejected before anything is stamped or appended.
//
// Record does not fail for payloads that cannot be captured losslessly
// (cycles, non-serializable values): the record is still appended with the
// payload dropped and the failure noted on the record. Past tag
// validation, the returned error is non-nil only when the trail itself
// rejected the append - and even then the loss is logged, never silent.
func (e *Engine) Record(ctx context.Context, layer Layer, status Status, message string, pl any) (Record, error) {
	if !layer.Valid() {
		return Record{}, fmt.Errorf("invalid layer %q", layer)
	}
	if !status.Valid() {
		return Record{}, fmt.Errorf("invalid status %q", status)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	if now.Before(e.lastTime) {
		now = e.lastTime
	}
	e.lastTime = now
	e.seq++

	rec := Record{
		TraceID: e.traceGen.Generate(),
		Seq:     e.seq,
		Time:    now,
		Layer:   layer,
		Status:  status,
		Message: message,
	}

	if pl != nil {
		snap, err := payload.Capture(pl)
		if err != nil {
			rec.CaptureError = captureReason(err)
			slog.Warn("payload capture failed, recording without payload",
				"trace_id", rec.TraceID,
				"status", rec.Status,
				"error", err,
			)
		} else {
			rec.Payload = snap
		}
	}

	if err := e.trail.Append(ctx, rec); err != nil {
		slog.Error("audit record lost: trail append failed",
			"trace_id", rec.TraceID,
			"seq", rec.Seq,
			"layer", rec.Layer,
			"status", rec.Status,
			"message", rec.Message,
			"error", err,
		)
		return rec, fmt.Errorf("append audit record %s: %w", rec.TraceID, err)
	}

	slog.Debug("audit record appended",
		"trace_id", rec.TraceID,
		"seq", rec.Seq,
		"layer", rec.Layer,
		"status", rec.Status,
	)
	return rec, nil
}

// View returns the audit sequence in append order, oldest first.
// The returned slice and its payloads are independent copies.
func (e *Engine) View(ctx context.Context) ([]Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	recs, err := e.trail.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	return recs, nil
}

// Clear resets the audit sequence to empty. Idempotent.
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.trail.Clear(ctx); err != nil {
		return fmt.Errorf("clear audit records: %w", err)
	}
	slog.Info("audit trail cleared")
	return nil
}

// captureReason extracts the short notation stored on a record whose
// payload capture failed.
func captureReason(err error) string {
	var ce *payload.CaptureError
	if errors.As(err, &ce) {
		return ce.Reason
	}
	return err.Error()
}
