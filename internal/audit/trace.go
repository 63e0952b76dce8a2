package audit

import (
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// TraceGenerator generates trace identifiers for audit records.
// Implemented by RandomGenerator (production), SequentialGenerator
// (deterministic hosts), and FixedGenerator (tests).
type TraceGenerator interface {
	Generate() string
}

// RandomGenerator produces short random trace tokens.
//
// Each token is the first 6 bytes of a version 4 UUID, hex encoded to 12
// characters. 48 random bits put the pairwise collision probability below
// one in 2.8e14, far inside the session-uniqueness requirement.
//
// Thread-safety: RandomGenerator is stateless and safe for concurrent use.
type RandomGenerator struct{}

// Generate creates a new random trace token.
//
// Panics if the underlying random source fails (should never happen in
// practice).
func (RandomGenerator) Generate() string {
	u := uuid.Must(uuid.NewRandom())
	return hex.EncodeToString(u[:6])
}

// SequentialGenerator produces counter-based trace tokens.
//
// Useful for hosts that want fully deterministic identifiers without
// supplying an explicit token list.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int64
}

// NewSequentialGenerator creates a generator emitting prefix-000001,
// prefix-000002, and so on.
func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next counter token.
func (g *SequentialGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%06d", g.prefix, g.next)
}

// FixedGenerator returns predetermined trace tokens for testing.
//
// This enables deterministic test execution and golden output comparison.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedGenerator struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedGenerator creates a generator that returns tokens in order.
//
// Example:
//
//	gen := NewFixedGenerator("trace-1", "trace-2")
//	gen.Generate() // "trace-1"
//	gen.Generate() // "trace-2"
//	gen.Generate() // panic: all tokens exhausted
func NewFixedGenerator(tokens ...string) *FixedGenerator {
	return &FixedGenerator{tokens: tokens}
}

// Generate returns the next predetermined token.
//
// Panics if all tokens have been consumed. This is a fail-fast approach to
// catch test misconfiguration (the test reported more actions than it
// provided tokens for).
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedGenerator: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
