package payload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// CaptureError reports that a payload could not be captured losslessly.
//
// Capture failures are recoverable by design: the audit record carrying the
// payload is still emitted, with the payload dropped and this error's message
// recorded alongside it.
type CaptureError struct {
	// Reason is a human-readable description of why capture failed.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *CaptureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payload capture failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("payload capture failed: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *CaptureError) Unwrap() error {
	return e.Err
}

// Capture converts an arbitrary Go value into an independent Value tree.
//
// The snapshot shares no mutable structure with the input: mutating the
// original after Capture never alters the returned Value.
//
// Inputs that are already a Value are cloned directly. Everything else is
// routed through JSON serialization, which bounds the accepted shapes to
// structurally serializable data. Cycles, channels, functions, and
// non-finite floats are rejected with a CaptureError.
func Capture(v any) (Value, error) {
	if v == nil {
		return Null{}, nil
	}

	// Already a snapshot value - deep copy is enough.
	if pv, ok := v.(Value); ok {
		return pv.Clone(), nil
	}

	// Reject non-finite floats up front: json.Marshal reports them too, but
	// with a less useful message than the value itself.
	switch f := v.(type) {
	case float64:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &CaptureError{Reason: fmt.Sprintf("non-finite float %v", f)}
		}
	case float32:
		f64 := float64(f)
		if math.IsNaN(f64) || math.IsInf(f64, 0) {
			return nil, &CaptureError{Reason: fmt.Sprintf("non-finite float %v", f)}
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		// json.Marshal detects cycles and unsupported kinds for us.
		return nil, &CaptureError{Reason: describeMarshalError(err), Err: err}
	}

	val, err := UnmarshalValue(data)
	if err != nil {
		return nil, &CaptureError{Reason: "decode serialized payload", Err: err}
	}
	return val, nil
}

// describeMarshalError classifies a json.Marshal failure for the capture
// notation stored on the audit record.
func describeMarshalError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "encountered a cycle"):
		return "circular reference"
	case strings.Contains(msg, "unsupported type"):
		return "non-serializable type"
	case strings.Contains(msg, "unsupported value"):
		return "non-serializable value"
	default:
		return "serialization error"
	}
}

// UnmarshalValue decodes JSON into a Value tree.
// Integers are preserved exactly via json.Number; fractional and exponent
// forms decode as Float.
func UnmarshalValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}
	return fromDecoded(raw)
}

// fromDecoded converts the output of a UseNumber JSON decode into a Value.
func fromDecoded(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", val.String(), err)
		}
		return Float(f), nil
	case []any:
		arr := make(Array, len(val))
		for i, elem := range val {
			pv, err := fromDecoded(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			arr[i] = pv
		}
		return arr, nil
	case map[string]any:
		obj := make(Object, len(val))
		for k, elem := range val {
			pv, err := fromDecoded(elem)
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			obj[k] = pv
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported decoded type: %T", v)
	}
}
