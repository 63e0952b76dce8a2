package payload

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface representing a structurally copyable snapshot
// value. Only Null, String, Int, Float, Bool, Array, and Object implement it.
//
// A Value tree is fully owned by its holder: every element is either an
// immutable scalar or a container built by Capture/Clone, so holding a Value
// never aliases caller-owned mutable state.
type Value interface {
	value() // Sealed - only these types implement it

	// Clone returns a structurally independent deep copy.
	Clone() Value
}

// Null represents an explicit JSON null inside a captured structure.
// Note this is distinct from an absent payload, which is a nil Value.
type Null struct{}

func (Null) value() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Clone returns the Null unchanged (scalars carry no shared structure).
func (n Null) Clone() Value { return n }

// String represents a string value.
type String string

func (String) value() {}

// Clone returns the String unchanged.
func (s String) Clone() Value { return s }

// Int represents an integer value. Always int64.
type Int int64

func (Int) value() {}

// Clone returns the Int unchanged.
func (i Int) Clone() Value { return i }

// Float represents a finite floating-point value.
// Capture rejects NaN and infinities, so a Float is always finite.
type Float float64

func (Float) value() {}

// Clone returns the Float unchanged.
func (f Float) Clone() Value { return f }

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Clone returns the Bool unchanged.
func (b Bool) Clone() Value { return b }

// Array represents an ordered sequence of values.
type Array []Value

func (Array) value() {}

// Clone returns a deep copy of the array.
func (a Array) Clone() Value {
	out := make(Array, len(a))
	for i, v := range a {
		out[i] = v.Clone()
	}
	return out
}

// Object represents a map of string keys to values.
// Use SortedKeys for deterministic iteration.
type Object map[string]Value

func (Object) value() {}

// Clone returns a deep copy of the object.
func (o Object) Clone() Value {
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = v.Clone()
	}
	return out
}

// SortedKeys returns keys ordered by UTF-16 code units.
// Go's sort.Strings uses UTF-8 byte order, which differs for characters
// outside the BMP; UTF-16 order keeps canonical output stable across
// implementations that index strings by code unit.
func (o Object) SortedKeys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

// compareUTF16 compares strings by UTF-16 code units.
func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	n := min(len(a16), len(b16))
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
