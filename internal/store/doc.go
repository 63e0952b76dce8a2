// Package store provides a SQLite-backed audit trail.
//
// The store implements audit.Trail on top of a single append-only table.
// Payload snapshots are serialized as canonical JSON so a stored record is
// byte-stable; an absent payload is a SQL NULL, never an empty document.
//
// Browse sessions open the database at ":memory:", which scopes the trail
// to the session lifetime. Nothing in this repository opens a file-backed
// database.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes (no-op for :memory:)
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
package store
