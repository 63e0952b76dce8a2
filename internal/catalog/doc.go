// Package catalog holds the fixed collection of reference entries and the
// read-only query engine over it.
//
// The catalog is constructed once at process start from a YAML source and
// never mutated afterwards. Each raw entry is validated against an embedded
// CUE schema before admission; malformed entries are excluded and reported
// while the rest of the catalog keeps serving.
//
// Queries never fail: a lookup miss is a boolean, a non-matching filter is
// an empty slice, and sorting returns a fresh slice without touching its
// input.
package catalog
