// Package cli implements the refdeck command-line shell.
//
// The shell is the presentation layer: it renders catalog query results,
// reports every read and copy action to the audit engine, and renders the
// chronological audit trail. Composition happens here - each command owns
// the catalog, engine, and clipboard instances it wires together.
package cli
