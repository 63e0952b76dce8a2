package catalog

import (
	_ "embed"
	"fmt"
	"log/slog"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Error codes reported by the loader.
const (
	ErrCodeParse       = "PARSE_ERROR"
	ErrCodeSchema      = "SCHEMA_VIOLATION"
	ErrCodeDuplicateID = "DUPLICATE_ID"
	ErrCodeDuplicate   = "DUPLICATE_PARAM"
)

// LoadError describes one rejected catalog entry.
// A LoadError is fatal to that entry's usability only: the loader excludes
// the entry and keeps going.
type LoadError struct {
	Code    string
	EntryID string // best-effort; empty when the id itself was unreadable
	Index   int    // position of the raw entry in the source document
	Message string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.EntryID != "" {
		return fmt.Sprintf("entry %q (#%d): %s: %s", e.EntryID, e.Index, e.Code, e.Message)
	}
	return fmt.Sprintf("entry #%d: %s: %s", e.Index, e.Code, e.Message)
}

// LoadResult holds the admitted entries plus per-entry rejections.
type LoadResult struct {
	Catalog *Catalog
	Errors  []*LoadError
}

// catalogFile is the YAML document shape of a catalog source.
type catalogFile struct {
	Entries []yaml.Node `yaml:"entries"`
}

// Load parses a YAML catalog source, validates every raw entry against the
// embedded CUE schema, and builds a catalog from the entries that pass.
//
// Malformed entries are excluded and reported in LoadResult.Errors; the
// returned catalog always serves the remaining entries. The only hard
// failure is an unparseable document.
func Load(data []byte) (*LoadResult, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog source: %w", err)
	}

	schemaCtx := cuecontext.New()
	schema := schemaCtx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Entry"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile entry schema: %w", err)
	}

	result := &LoadResult{}
	var entries []Entry
	seen := make(map[string]bool, len(file.Entries))

	for i, node := range file.Entries {
		entry, loadErr := decodeEntry(schemaCtx, schema, node, i)
		if loadErr != nil {
			result.Errors = append(result.Errors, loadErr)
			slog.Warn("catalog entry rejected",
				"index", i,
				"entry_id", loadErr.EntryID,
				"code", loadErr.Code,
				"reason", loadErr.Message,
			)
			continue
		}

		if seen[entry.ID] {
			loadErr := &LoadError{
				Code:    ErrCodeDuplicateID,
				EntryID: entry.ID,
				Index:   i,
				Message: "identifier already used by an earlier entry",
			}
			result.Errors = append(result.Errors, loadErr)
			slog.Warn("catalog entry rejected",
				"index", i,
				"entry_id", entry.ID,
				"code", loadErr.Code,
				"reason", loadErr.Message,
			)
			continue
		}
		seen[entry.ID] = true
		entries = append(entries, entry)
	}

	result.Catalog = New(entries)
	slog.Info("catalog loaded",
		"entries", len(entries),
		"rejected", len(result.Errors),
	)
	return result, nil
}

// LoadDefault loads the catalog shipped inside the binary.
func LoadDefault() (*LoadResult, error) {
	return Load(defaultCatalogYAML)
}

// decodeEntry validates one raw YAML entry against the schema and decodes
// it into an Entry.
func decodeEntry(ctx *cue.Context, schema cue.Value, node yaml.Node, index int) (Entry, *LoadError) {
	// Decode to a plain map first so schema violations are reported against
	// the raw source, not a half-filled struct.
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return Entry{}, &LoadError{
			Code:    ErrCodeParse,
			Index:   index,
			Message: fmt.Sprintf("entry is not a mapping: %v", err),
		}
	}

	id, _ := raw["id"].(string)

	unified := schema.Unify(ctx.Encode(raw))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Entry{}, &LoadError{
			Code:    ErrCodeSchema,
			EntryID: id,
			Index:   index,
			Message: err.Error(),
		}
	}

	var entry Entry
	if err := unified.Decode(&entry); err != nil {
		return Entry{}, &LoadError{
			Code:    ErrCodeParse,
			EntryID: id,
			Index:   index,
			Message: fmt.Sprintf("decode validated entry: %v", err),
		}
	}

	// The CUE schema constrains both enums, but the decoded struct is
	// checked again so schema.cue and the Go constants cannot drift apart.
	if !entry.Category.Valid() {
		return Entry{}, &LoadError{
			Code:    ErrCodeSchema,
			EntryID: entry.ID,
			Index:   index,
			Message: fmt.Sprintf("unknown category %q", entry.Category),
		}
	}
	if !entry.Launch.Pattern.Valid() {
		return Entry{}, &LoadError{
			Code:    ErrCodeSchema,
			EntryID: entry.ID,
			Index:   index,
			Message: fmt.Sprintf("unknown pattern %q", entry.Launch.Pattern),
		}
	}

	// Parameter-list uniqueness is checked here rather than in CUE so the
	// offending name appears in the message.
	if dup, ok := firstDuplicate(entry.Launch.Required); ok {
		return Entry{}, &LoadError{
			Code:    ErrCodeDuplicate,
			EntryID: entry.ID,
			Index:   index,
			Message: fmt.Sprintf("required parameter %q listed twice", dup),
		}
	}
	if dup, ok := firstDuplicate(entry.Launch.Optional); ok {
		return Entry{}, &LoadError{
			Code:    ErrCodeDuplicate,
			EntryID: entry.ID,
			Index:   index,
			Message: fmt.Sprintf("optional parameter %q listed twice", dup),
		}
	}

	return entry, nil
}

// firstDuplicate returns the first repeated name in the list, if any.
func firstDuplicate(names []string) (string, bool) {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return n, true
		}
		seen[n] = true
	}
	return "", false
}
