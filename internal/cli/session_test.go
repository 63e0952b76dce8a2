package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refdeck/refdeck/internal/audit"
	"github.com/refdeck/refdeck/internal/catalog"
	"github.com/refdeck/refdeck/internal/payload"
	"github.com/refdeck/refdeck/internal/testutil"
)

func sessionCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Entry{
		{
			ID:       "setup-client",
			Category: catalog.CategorySetup,
			Title:    "Configure the API client",
			Snippet:  "client = genai.Client()\n",
		},
		{
			ID:       "text-generation",
			Category: catalog.CategoryCore,
			Title:    "Generate text from a prompt",
			Snippet:  "print(response.text)\n",
			Launch: catalog.Launch{
				EntryPoint: "models.generate_content",
				Pattern:    catalog.PatternSync,
			},
		},
	})
}

func newTestSession(clip Clipboard) (*Session, *testutil.ManualClock) {
	clock := testutil.NewManualClock(time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC))
	engine := audit.New(
		audit.WithClock(clock),
		audit.WithTraceGenerator(audit.NewSequentialGenerator("trace")),
	)
	return NewSession(sessionCatalog(), engine, clip), clock
}

type failingClipboard struct{}

func (failingClipboard) WriteText(string) error { return errors.New("no clipboard device") }

func TestSession_BrowseAndCopyTrail(t *testing.T) {
	ctx := context.Background()
	var clip bytes.Buffer
	session, clock := newTestSession(WriterClipboard{W: &clip})

	_, ok, err := session.Open(ctx, "setup-client")
	require.NoError(t, err)
	require.True(t, ok)

	clock.Advance(time.Second)
	_, ok, err = session.Open(ctx, "text-generation")
	require.NoError(t, err)
	require.True(t, ok)

	clock.Advance(time.Second)
	_, ok, err = session.Copy(ctx, "text-generation", false)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "print(response.text)\n", clip.String())

	records, err := session.Trail(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, audit.StatusAccess, records[0].Status)
	assert.Equal(t, audit.StatusAccess, records[1].Status)
	assert.Equal(t, audit.StatusCopy, records[2].Status)

	assert.Equal(t, audit.LayerDataAccess, records[0].Layer)
	assert.Equal(t, audit.LayerDataAccess, records[1].Layer)
	assert.Equal(t, audit.LayerPresentation, records[2].Layer)

	assert.Equal(t, `opened entry "setup-client"`, records[0].Message)
	assert.Equal(t, `opened entry "text-generation"`, records[1].Message)
	assert.Equal(t, `copied snippet of "text-generation" to clipboard`, records[2].Message)

	obj, isObj := records[2].Payload.(payload.Object)
	require.True(t, isObj)
	assert.Equal(t, payload.Int(len("print(response.text)\n")), obj["chars"])
}

func TestSession_ListRecordsFilterPayload(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(WriterClipboard{W: &bytes.Buffer{}})

	entries, err := session.List(ctx, "gen", catalog.SortOriginal)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "text-generation", entries[0].ID)

	records, err := session.Trail(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `filtered catalog by "gen" (1 matches)`, records[0].Message)

	obj := records[0].Payload.(payload.Object)
	assert.Equal(t, payload.String("gen"), obj["term"])
	assert.Equal(t, payload.Int(1), obj["matches"])
}

func TestSession_ListWithoutTerm(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(WriterClipboard{W: &bytes.Buffer{}})

	entries, err := session.List(ctx, "", catalog.SortAlphabetical)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Configure the API client", entries[0].Title)

	records, err := session.Trail(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "listed catalog (2 entries)", records[0].Message)
	assert.Equal(t, audit.StatusInfo, records[0].Status)
}

func TestSession_OpenMissRecordsInfo(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(WriterClipboard{W: &bytes.Buffer{}})

	_, ok, err := session.Open(ctx, "no-such-id")
	require.NoError(t, err)
	assert.False(t, ok)

	records, err := session.Trail(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, audit.StatusInfo, records[0].Status)
	assert.Equal(t, audit.LayerDataAccess, records[0].Layer)
	assert.Equal(t, `entry "no-such-id" not found`, records[0].Message)
	assert.Nil(t, records[0].Payload)
}

func TestSession_CopyFullPayloadIsEntry(t *testing.T) {
	ctx := context.Background()
	var clip bytes.Buffer
	session, _ := newTestSession(WriterClipboard{W: &clip})

	entry, ok, err := session.Copy(ctx, "text-generation", true)
	require.NoError(t, err)
	require.True(t, ok)

	// The clipboard received the canonical JSON rendering of the entry.
	want, err := renderEntryJSON(entry)
	require.NoError(t, err)
	assert.Equal(t, want, clip.String())

	records, err := session.Trail(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, `copied entry of "text-generation" to clipboard`, records[0].Message)

	obj, isObj := records[0].Payload.(payload.Object)
	require.True(t, isObj)
	assert.Equal(t, payload.String("text-generation"), obj["id"])
	assert.Equal(t, payload.String("CORE"), obj["category"])
}

func TestSession_CopyPayloadCountsBytes(t *testing.T) {
	ctx := context.Background()
	cat := catalog.New([]catalog.Entry{
		{ID: "accents", Category: catalog.CategoryCore, Title: "Accents", Snippet: "café\n"},
	})
	engine := audit.New()
	session := NewSession(cat, engine, WriterClipboard{W: &bytes.Buffer{}})

	_, ok, err := session.Copy(ctx, "accents", false)
	require.NoError(t, err)
	require.True(t, ok)

	records, err := session.Trail(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	// "café\n" is 5 runes but 6 bytes; the payload counts bytes.
	obj := records[0].Payload.(payload.Object)
	assert.Equal(t, payload.Int(6), obj["chars"])
}

func TestSession_CopyRecordSurvivesClipboardFailure(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(failingClipboard{})

	_, ok, err := session.Copy(ctx, "setup-client", false)
	require.Error(t, err)
	assert.True(t, ok)

	records, trailErr := session.Trail(ctx)
	require.NoError(t, trailErr)
	require.Len(t, records, 1, "the copy must be recorded even when the write fails")
	assert.Equal(t, audit.StatusCopy, records[0].Status)
}

func TestSession_ClearTrail(t *testing.T) {
	ctx := context.Background()
	session, _ := newTestSession(WriterClipboard{W: &bytes.Buffer{}})

	_, _, err := session.Open(ctx, "setup-client")
	require.NoError(t, err)

	require.NoError(t, session.ClearTrail(ctx))

	records, err := session.Trail(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}
