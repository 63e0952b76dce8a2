package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refdeck/refdeck/internal/catalog"
)

func trailOutput(t *testing.T, opts *RootOptions) string {
	t.Helper()

	var out bytes.Buffer
	session, _ := newTestSession(WriterClipboard{W: &out})

	ctx := context.Background()
	_, err := session.List(ctx, "", catalog.SortOriginal)
	require.NoError(t, err)
	_, _, err = session.Open(ctx, "text-generation")
	require.NoError(t, err)

	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, printTrailIfVerbose(ctx, opts, session, cmd))
	return out.String()
}

func TestPrintTrail_SilentWithoutVerbose(t *testing.T) {
	out := trailOutput(t, &RootOptions{Verbose: false, Format: "text"})
	assert.NotContains(t, out, "audit trail")
}

func TestPrintTrail_TextRendersTrail(t *testing.T) {
	out := trailOutput(t, &RootOptions{Verbose: true, Format: "text"})

	assert.Contains(t, out, "\naudit trail:\n")
	assert.Contains(t, out, "trace-000001")
	assert.Contains(t, out, "listed catalog (2 entries)")
	assert.Contains(t, out, `opened entry "text-generation"`)
}

func TestPrintTrail_JSONEnvelopeCarriesTrail(t *testing.T) {
	out := trailOutput(t, &RootOptions{Verbose: true, Format: "json"})

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	trail, ok := data["trail"].([]any)
	require.True(t, ok)
	require.Len(t, trail, 2)

	first, ok := trail[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), first["seq"])
	assert.Equal(t, "trace-000001", first["trace_id"])
	assert.Equal(t, "PRESENTATION", first["layer"])
	assert.Equal(t, "INFO", first["status"])
	assert.Equal(t, "listed catalog (2 entries)", first["message"])

	pl, ok := first["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), pl["matches"])

	second, ok := trail[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DATA_ACCESS", second["layer"])
	assert.Equal(t, "ACCESS", second["status"])
	_, hasPayload := second["payload"]
	assert.False(t, hasPayload, "a payload-less record must not serialize a payload field")
}
