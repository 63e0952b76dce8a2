package audit

import (
	"context"
	"sync"
)

// Trail is the storage behind an engine's audit sequence.
//
// Implementations must keep records in append order and return them oldest
// first. The engine serializes its own calls, but a Trail may also be read
// directly by a host, so implementations are expected to be safe for
// concurrent use on their own.
type Trail interface {
	// Append adds a record to the end of the sequence.
	Append(ctx context.Context, rec Record) error

	// List returns all records in append order, oldest first.
	List(ctx context.Context) ([]Record, error)

	// Clear resets the sequence to empty. Idempotent.
	Clear(ctx context.Context) error
}

// MemoryTrail keeps the audit sequence in a slice. It is the default trail
// and never fails.
type MemoryTrail struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryTrail creates an empty in-memory trail.
func NewMemoryTrail() *MemoryTrail {
	return &MemoryTrail{}
}

// Append adds a record to the sequence. The record's payload is cloned so
// the trail owns its copy outright.
func (t *MemoryTrail) Append(_ context.Context, rec Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = append(t.records, rec.clonePayload())
	return nil
}

// List returns a copy of the sequence in append order. Payloads are cloned
// so callers cannot reach trail-owned structure.
func (t *MemoryTrail) List(_ context.Context) ([]Record, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Record, len(t.records))
	for i, rec := range t.records {
		out[i] = rec.clonePayload()
	}
	return out, nil
}

// Clear resets the sequence to empty.
func (t *MemoryTrail) Clear(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = nil
	return nil
}
