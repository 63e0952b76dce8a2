// Package audit implements the audit log engine.
//
// The engine converts discrete action reports into an ordered, immutable
// sequence of audit records. Each record is stamped with a session-unique
// trace identifier and a non-decreasing timestamp, and carries an optional
// deep-copied payload snapshot that shares no structure with caller-owned
// state.
//
// ARCHITECTURE:
//
// The engine is an explicit instance owned by whatever composes the system
// (the CLI shell, a test harness). It is never an ambient singleton. Its
// collaborators are injected:
//   - Clock: timestamp source (SystemClock in production, a manual clock
//     in tests)
//   - TraceGenerator: trace identifier source (random tokens in production,
//     FixedGenerator in tests)
//   - Trail: record storage (in-memory slice by default, SQLite-backed for
//     browse sessions)
//
// Record, Clear, and View guard one logical resource: append-then-observe
// is atomic from the perspective of View. A single mutex serializes them so
// the engine stays correct inside a concurrent host, even though the
// intended usage is a single interactive session.
//
// A report is never silently dropped. When a payload cannot be captured
// losslessly the record is still appended, with the payload removed and the
// failure noted on the record itself.
package audit
