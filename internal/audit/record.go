package audit

import (
	"time"

	"github.com/refdeck/refdeck/internal/payload"
)

// Layer tags the conceptual side that originated an action.
// The set is closed: no extension point is provided.
type Layer string

const (
	LayerPresentation Layer = "PRESENTATION"
	LayerDataAccess   Layer = "DATA_ACCESS"
)

// Valid reports whether the layer is one of the fixed values.
func (l Layer) Valid() bool {
	return l == LayerPresentation || l == LayerDataAccess
}

// Status classifies the outcome of a reported action.
// The set is closed: no extension point is provided.
type Status string

const (
	StatusAccess Status = "ACCESS"
	StatusCopy   Status = "COPY"
	StatusInfo   Status = "INFO"
)

// Valid reports whether the status is one of the fixed values.
func (s Status) Valid() bool {
	return s == StatusAccess || s == StatusCopy || s == StatusInfo
}

// Record is one logged action.
//
// Records are created exactly once by Engine.Record and never modified
// afterwards. They are passed and stored by value; the Payload tree is
// owned by the record and cloned at every trail boundary.
type Record struct {
	// TraceID is a short token unique within the session.
	TraceID string `json:"trace_id"`

	// Seq is the record's position in emission order, starting at 1.
	Seq int64 `json:"seq"`

	// Time is the timestamp captured at the moment of the report.
	// Non-decreasing across records in emission order.
	Time time.Time `json:"time"`

	// Layer is the originating layer.
	Layer Layer `json:"layer"`

	// Status is the outcome classification.
	Status Status `json:"status"`

	// Message describes the action in human-readable form.
	Message string `json:"message"`

	// Payload is the deep-copied snapshot of data accompanying the action.
	// nil means the report carried no payload; this is distinct from a
	// snapshot of an empty structure.
	Payload payload.Value `json:"payload,omitempty"`

	// CaptureError notes that a payload accompanied the report but could
	// not be captured losslessly. When set, Payload is nil.
	CaptureError string `json:"capture_error,omitempty"`
}

// clonePayload returns a copy of the record with an independent payload
// tree, so handing the copy out cannot expose engine-owned structure.
func (r Record) clonePayload() Record {
	if r.Payload != nil {
		r.Payload = r.Payload.Clone()
	}
	return r
}
