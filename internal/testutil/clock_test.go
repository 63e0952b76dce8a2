package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualClock(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	c := NewManualClock(start)

	assert.Equal(t, start, c.Now())
	assert.Equal(t, start, c.Now(), "Now must not advance the clock")

	c.Advance(time.Second)
	assert.Equal(t, start.Add(time.Second), c.Now())

	c.Advance(-time.Minute)
	assert.Equal(t, start.Add(time.Second-time.Minute), c.Now(), "negative advance moves backwards")

	abs := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Set(abs)
	assert.Equal(t, abs, c.Now())
}
