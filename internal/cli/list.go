package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refdeck/refdeck/internal/audit"
	"github.com/refdeck/refdeck/internal/catalog"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Filter string
	Sort   string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries",
		Long: `List catalog entries, optionally filtered and sorted.

The filter term matches case-insensitively against entry titles,
category labels, and identifiers. An empty term matches everything.

Examples:
  refdeck list
  refdeck list --filter multimodal
  refdeck list --sort alpha --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter term (title, category, or id substring)")
	cmd.Flags().StringVar(&opts.Sort, "sort", string(catalog.SortOriginal), "sort order (original|alpha)")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	mode, ok := catalog.ParseSortMode(opts.Sort)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid sort order %q: must be original or alpha", opts.Sort))
	}

	loaded, err := loadCatalog(opts.RootOptions)
	if err != nil {
		return err
	}

	session := NewSession(loaded.Catalog, audit.New(), WriterClipboard{W: cmd.OutOrStdout()})
	entries, err := session.List(ctx, opts.Filter, mode)
	if err != nil {
		return WrapExitError(ExitCommandError, "record list action", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		if err := formatter.JSON(entries); err != nil {
			return err
		}
	} else if err := formatter.Text(RenderEntryList(entries)); err != nil {
		return err
	}

	return printTrailIfVerbose(ctx, opts.RootOptions, session, cmd)
}

// printTrailIfVerbose appends the session's audit trail to command output
// when --verbose is set, so one-shot commands still show what was recorded.
// Text output gets the rendered trail; JSON output gets a second envelope
// whose data holds the trail records.
func printTrailIfVerbose(ctx context.Context, opts *RootOptions, session *Session, cmd *cobra.Command) error {
	if !opts.Verbose {
		return nil
	}
	records, err := session.Trail(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "read audit trail", err)
	}
	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
		return formatter.JSON(map[string]any{"trail": trailJSON(records)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\naudit trail:\n%s", RenderTrail(records))
	return nil
}
