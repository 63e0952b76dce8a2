package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Catalog answers read-only queries over a fixed, ordered entry collection.
//
// The entry slice is copied at construction, so later mutation of the input
// cannot reach the catalog. All query results are fresh slices.
type Catalog struct {
	entries []Entry
	byID    map[string]int
}

// New builds a catalog from entries in their canonical order.
//
// The caller is expected to hand in entries that already passed loader
// validation; New itself accepts any slice and keeps the first entry for a
// duplicated identifier.
func New(entries []Entry) *Catalog {
	copied := make([]Entry, len(entries))
	copy(copied, entries)

	byID := make(map[string]int, len(copied))
	for i, e := range copied {
		if _, exists := byID[e.ID]; !exists {
			byID[e.ID] = i
		}
	}

	return &Catalog{entries: copied, byID: byID}
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns all entries in canonical order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Lookup returns the entry with the given identifier.
// The second return value is false when no entry matches; a miss is not an
// error condition.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Filter returns entries whose title, category label, or identifier contains
// the term, case-insensitively. An empty term matches every entry.
// Relative catalog order is preserved among matches.
func (c *Catalog) Filter(term string) []Entry {
	needle := strings.ToLower(term)

	out := []Entry{}
	for _, e := range c.entries {
		if needle == "" || entryMatches(e, needle) {
			out = append(out, e)
		}
	}
	return out
}

// entryMatches reports whether the lowercased needle occurs in the entry's
// searchable fields.
func entryMatches(e Entry, needle string) bool {
	return strings.Contains(strings.ToLower(e.Title), needle) ||
		strings.Contains(strings.ToLower(string(e.Category)), needle) ||
		strings.Contains(strings.ToLower(e.ID), needle)
}

// SortMode selects the ordering applied by Sort.
type SortMode string

const (
	// SortOriginal preserves the input order.
	SortOriginal SortMode = "original"

	// SortAlphabetical orders by title with a locale-aware comparison,
	// ties broken by identifier.
	SortAlphabetical SortMode = "alpha"
)

// ParseSortMode maps a user-supplied mode name to a SortMode.
func ParseSortMode(s string) (SortMode, bool) {
	switch SortMode(strings.ToLower(s)) {
	case SortOriginal:
		return SortOriginal, true
	case SortAlphabetical:
		return SortAlphabetical, true
	}
	return "", false
}

// Sort returns a new slice of entries in the requested order.
// The input slice is never mutated.
//
// SortAlphabetical is a total order: titles compare via x/text collation
// (locale-aware, case-respecting), and equal titles fall back to byte
// comparison of identifiers, so two distinct entries never compare equal.
func Sort(entries []Entry, mode SortMode) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	if mode != SortAlphabetical {
		return out
	}

	coll := collate.New(language.English)
	slices.SortStableFunc(out, func(a, b Entry) int {
		if c := coll.CompareString(a.Title, b.Title); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
