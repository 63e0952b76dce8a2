package cli

import (
	"context"
	"fmt"

	"github.com/refdeck/refdeck/internal/audit"
	"github.com/refdeck/refdeck/internal/catalog"
	"github.com/refdeck/refdeck/internal/payload"
)

// Session bundles the catalog, the audit engine, and the clipboard
// capability for one interactive or one-shot run.
//
// All user-visible actions flow through Session methods so each one is
// reported to the audit engine exactly once.
type Session struct {
	Catalog *catalog.Catalog
	Engine  *audit.Engine
	Clip    Clipboard
}

// NewSession wires a session from its three collaborators.
func NewSession(cat *catalog.Catalog, engine *audit.Engine, clip Clipboard) *Session {
	return &Session{Catalog: cat, Engine: engine, Clip: clip}
}

// List filters and sorts the catalog, recording the browse action.
func (s *Session) List(ctx context.Context, term string, mode catalog.SortMode) ([]catalog.Entry, error) {
	entries := catalog.Sort(s.Catalog.Filter(term), mode)

	msg := fmt.Sprintf("listed catalog (%d entries)", len(entries))
	if term != "" {
		msg = fmt.Sprintf("filtered catalog by %q (%d matches)", term, len(entries))
	}
	_, err := s.Engine.Record(ctx, audit.LayerPresentation, audit.StatusInfo, msg, payload.Object{
		"term":    payload.String(term),
		"matches": payload.Int(len(entries)),
	})
	return entries, err
}

// Open looks up one entry, recording the read as a data access.
// A miss is reported too - and is not an error, just an absent entry.
func (s *Session) Open(ctx context.Context, id string) (catalog.Entry, bool, error) {
	entry, ok := s.Catalog.Lookup(id)
	if !ok {
		_, err := s.Engine.Record(ctx, audit.LayerDataAccess, audit.StatusInfo,
			fmt.Sprintf("entry %q not found", id), nil)
		return catalog.Entry{}, false, err
	}

	_, err := s.Engine.Record(ctx, audit.LayerDataAccess, audit.StatusAccess,
		fmt.Sprintf("opened entry %q", id), nil)
	return entry, true, err
}

// Copy hands an entry's text to the clipboard capability and records the
// copy. With full=false the raw snippet is copied and the record's payload
// is the snippet's byte count; with full=true the canonical JSON rendering of
// the whole entry is copied and the record's payload is the entry itself.
//
// The COPY record is emitted after the clipboard invocation regardless of
// the write's outcome; a write failure is returned alongside.
func (s *Session) Copy(ctx context.Context, id string, full bool) (catalog.Entry, bool, error) {
	entry, ok := s.Catalog.Lookup(id)
	if !ok {
		_, err := s.Engine.Record(ctx, audit.LayerDataAccess, audit.StatusInfo,
			fmt.Sprintf("entry %q not found", id), nil)
		return catalog.Entry{}, false, err
	}

	var (
		text string
		pl   any
		what string
	)
	if full {
		rendered, err := renderEntryJSON(entry)
		if err != nil {
			return catalog.Entry{}, false, fmt.Errorf("render entry %q: %w", id, err)
		}
		text = rendered
		pl = entry
		what = "entry"
	} else {
		text = entry.Snippet
		pl = payload.Object{"chars": payload.Int(len(entry.Snippet))}
		what = "snippet"
	}

	writeErr := s.Clip.WriteText(text)

	_, recErr := s.Engine.Record(ctx, audit.LayerPresentation, audit.StatusCopy,
		fmt.Sprintf("copied %s of %q to clipboard", what, id), pl)
	if recErr != nil {
		return entry, true, recErr
	}
	if writeErr != nil {
		return entry, true, fmt.Errorf("clipboard write for %q: %w", id, writeErr)
	}
	return entry, true, nil
}

// Trail returns the session's audit sequence, oldest first.
func (s *Session) Trail(ctx context.Context) ([]audit.Record, error) {
	return s.Engine.View(ctx)
}

// ClearTrail resets the session's audit sequence.
func (s *Session) ClearTrail(ctx context.Context) error {
	return s.Engine.Clear(ctx)
}

// renderEntryJSON produces the canonical JSON rendering of an entry used
// for full copies.
func renderEntryJSON(entry catalog.Entry) (string, error) {
	snap, err := payload.Capture(entry)
	if err != nil {
		return "", err
	}
	data, err := payload.MarshalCanonical(snap)
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
