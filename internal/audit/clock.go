package audit

import "time"

// Clock supplies timestamps for audit records.
//
// Injected so ordering properties can be tested deterministically.
// The engine tolerates a clock that steps backwards: emitted timestamps
// are clamped to be non-decreasing in call order.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock. time.Now carries a monotonic reading
// on every supported platform, so in-process call order is preserved.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
