package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/refdeck/refdeck/internal/audit"
	"github.com/refdeck/refdeck/internal/catalog"
	"github.com/refdeck/refdeck/internal/payload"
)

// trailTimeFormat is the timestamp layout used in rendered trails.
const trailTimeFormat = "15:04:05.000"

// RenderEntryList renders a catalog listing as an aligned table.
func RenderEntryList(entries []catalog.Entry) string {
	if len(entries) == 0 {
		return "No entries.\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tTITLE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Category, e.Title)
	}
	w.Flush()
	return b.String()
}

// RenderEntry renders the full detail view of one entry.
func RenderEntry(e catalog.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  [%s]\n", e.Title, e.Category)
	fmt.Fprintf(&b, "id:     %s\n", e.ID)
	fmt.Fprintf(&b, "model:  %s\n", e.Model)
	if e.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", e.Description)
	}
	if e.Explanation != "" {
		fmt.Fprintf(&b, "\n%s\n", strings.TrimRight(e.Explanation, "\n"))
	}

	fmt.Fprintf(&b, "\nlaunch: %s (%s -> %s)\n", e.Launch.EntryPoint, e.Launch.Pattern, e.Launch.Output)
	if len(e.Launch.Required) > 0 {
		fmt.Fprintf(&b, "  required: %s\n", strings.Join(e.Launch.Required, ", "))
	}
	if len(e.Launch.Optional) > 0 {
		fmt.Fprintf(&b, "  optional: %s\n", strings.Join(e.Launch.Optional, ", "))
	}

	if e.Snippet != "" {
		fmt.Fprintf(&b, "\n%s", e.Snippet)
		if !strings.HasSuffix(e.Snippet, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderTrail renders the audit sequence chronologically, oldest first.
func RenderTrail(records []audit.Record) string {
	if len(records) == 0 {
		return "Audit trail is empty.\n"
	}

	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "%3d  %s  %s  %-12s %-6s  %s\n",
			rec.Seq,
			rec.Time.UTC().Format(trailTimeFormat),
			rec.TraceID,
			rec.Layer,
			rec.Status,
			rec.Message,
		)
		if rec.Payload != nil {
			if data, err := payload.MarshalCanonical(rec.Payload); err == nil {
				fmt.Fprintf(&b, "     payload: %s\n", data)
			}
		}
		if rec.CaptureError != "" {
			fmt.Fprintf(&b, "     payload not captured: %s\n", rec.CaptureError)
		}
	}
	return b.String()
}

// trailJSON shapes a record slice for the JSON output envelope.
func trailJSON(records []audit.Record) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, rec := range records {
		m := map[string]any{
			"seq":      rec.Seq,
			"trace_id": rec.TraceID,
			"time":     rec.Time.UTC().Format(time.RFC3339Nano),
			"layer":    rec.Layer,
			"status":   rec.Status,
			"message":  rec.Message,
		}
		if rec.Payload != nil {
			m["payload"] = rec.Payload
		}
		if rec.CaptureError != "" {
			m["capture_error"] = rec.CaptureError
		}
		out[i] = m
	}
	return out
}
