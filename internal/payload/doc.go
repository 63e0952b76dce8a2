// Package payload provides the structurally copyable value tree used for
// audit record payload snapshots.
//
// This package contains value types and capture/serialization only. Other
// internal packages import payload; payload imports nothing internal.
//
// Key design constraints:
//   - Value is a sealed interface - only the types defined here implement it
//   - A captured Value shares no mutable structure with its source
//   - Serialization is canonical (sorted keys, NFC strings, no HTML escaping)
//     so stored snapshots and golden output are byte-stable
//   - Non-copyable inputs (cycles, channels, functions, non-finite floats)
//     surface as CaptureError, never as a silent nil
package payload
