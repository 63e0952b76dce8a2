package catalog

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validEntryYAML = `
entries:
  - id: text-generation
    category: CORE
    title: Generate text from a prompt
    description: Single-turn text generation.
    model: gemini-2.0-flash
    explanation: One prompt in, one response out.
    snippet: "print(1)\n"
    launch:
      entry_point: models.generate_content
      required_params: [model, contents]
      optional_params: [config]
      pattern: SYNC
      output_type: GenerateContentResponse
`

func TestLoad_ValidEntry(t *testing.T) {
	result, err := Load([]byte(validEntryYAML))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Equal(t, 1, result.Catalog.Len())

	entry, ok := result.Catalog.Lookup("text-generation")
	require.True(t, ok)
	assert.Equal(t, CategoryCore, entry.Category)
	assert.Equal(t, PatternSync, entry.Launch.Pattern)
	assert.Equal(t, []string{"model", "contents"}, entry.Launch.Required)
}

func TestLoad_OptionalFieldsDefaulted(t *testing.T) {
	src := `
entries:
  - id: minimal
    category: SETUP
    title: Minimal entry
    launch:
      entry_point: genai.Client
      pattern: SETUP
`
	result, err := Load([]byte(src))
	require.NoError(t, err)
	assert.Empty(t, result.Errors)

	entry, ok := result.Catalog.Lookup("minimal")
	require.True(t, ok)
	assert.Empty(t, entry.Description)
	assert.Empty(t, entry.Launch.Required)
	assert.Empty(t, entry.Launch.Optional)
}

func TestLoad_InvalidCategoryRejected(t *testing.T) {
	src := validEntryYAML + `
  - id: bad-category
    category: NOPE
    title: Bad
    launch:
      entry_point: x
      pattern: SYNC
`
	result, err := Load([]byte(src))
	require.NoError(t, err)

	// The malformed entry is excluded; the valid one keeps serving.
	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodeSchema, result.Errors[0].Code)
	assert.Equal(t, "bad-category", result.Errors[0].EntryID)
	assert.Equal(t, 1, result.Catalog.Len())

	_, ok := result.Catalog.Lookup("bad-category")
	assert.False(t, ok)
	_, ok = result.Catalog.Lookup("text-generation")
	assert.True(t, ok)
}

func TestLoad_MissingEntryPointRejected(t *testing.T) {
	src := `
entries:
  - id: no-entry-point
    category: CORE
    title: Broken launch
    launch:
      pattern: SYNC
`
	result, err := Load([]byte(src))
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodeSchema, result.Errors[0].Code)
	assert.Equal(t, 0, result.Catalog.Len())
}

func TestLoad_DuplicateIDRejected(t *testing.T) {
	src := validEntryYAML + `
  - id: text-generation
    category: ADVANCED
    title: Impostor
    launch:
      entry_point: x
      pattern: ASYNC
`
	result, err := Load([]byte(src))
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodeDuplicateID, result.Errors[0].Code)

	// First occurrence wins.
	entry, ok := result.Catalog.Lookup("text-generation")
	require.True(t, ok)
	assert.Equal(t, "Generate text from a prompt", entry.Title)
}

func TestLoad_DuplicateParamRejected(t *testing.T) {
	src := `
entries:
  - id: dup-param
    category: CORE
    title: Duplicate parameter
    launch:
      entry_point: x
      required_params: [model, model]
      pattern: SYNC
`
	result, err := Load([]byte(src))
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodeDuplicate, result.Errors[0].Code)
	assert.Contains(t, result.Errors[0].Message, "model")
	assert.Equal(t, 0, result.Catalog.Len())
}

func TestLoad_NonMappingEntryRejected(t *testing.T) {
	src := `
entries:
  - just a string
`
	result, err := Load([]byte(src))
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, ErrCodeParse, result.Errors[0].Code)
}

func TestDecodeEntry_RejectsEnumOutsideGoConstants(t *testing.T) {
	// A schema looser than the Go enum sets must not smuggle unknown tags
	// into the catalog.
	ctx := cuecontext.New()
	schema := ctx.CompileString(`#Entry: {...}`).LookupPath(cue.ParsePath("#Entry"))
	require.NoError(t, schema.Err())

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
id: drifted
category: NOPE
title: Drifted
launch:
  entry_point: x
  pattern: SYNC
`), &node))

	_, loadErr := decodeEntry(ctx, schema, node, 0)
	require.NotNil(t, loadErr)
	assert.Equal(t, ErrCodeSchema, loadErr.Code)
	assert.Contains(t, loadErr.Message, `unknown category "NOPE"`)

	require.NoError(t, yaml.Unmarshal([]byte(`
id: drifted
category: CORE
title: Drifted
launch:
  entry_point: x
  pattern: BATCH
`), &node))

	_, loadErr = decodeEntry(ctx, schema, node, 0)
	require.NotNil(t, loadErr)
	assert.Equal(t, ErrCodeSchema, loadErr.Code)
	assert.Contains(t, loadErr.Message, `unknown pattern "BATCH"`)
}

func TestLoad_UnparseableDocumentFails(t *testing.T) {
	_, err := Load([]byte("entries: [unclosed"))
	assert.Error(t, err)
}

func TestLoadDefault_BuiltInCatalogIsClean(t *testing.T) {
	result, err := LoadDefault()
	require.NoError(t, err)
	assert.Empty(t, result.Errors, "built-in catalog must have no invalid entries")
	assert.Equal(t, 10, result.Catalog.Len())

	// Spot-check a few well-known entries.
	for _, id := range []string{"setup-client", "text-generation", "structured-output"} {
		_, ok := result.Catalog.Lookup(id)
		assert.True(t, ok, "missing built-in entry %q", id)
	}

	// Every built-in entry satisfies the closed enums.
	for _, e := range result.Catalog.Entries() {
		assert.True(t, e.Category.Valid(), "entry %q", e.ID)
		assert.True(t, e.Launch.Pattern.Valid(), "entry %q", e.ID)
	}
}
