package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refdeck/refdeck/internal/audit"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one catalog entry",
		Long: `Show the full detail view of one catalog entry.

A miss is not a crash: the command reports that the entry was not
found and exits with status 1.

Examples:
  refdeck show text-generation
  refdeck show streaming-text --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	ctx := context.Background()

	loaded, err := loadCatalog(opts)
	if err != nil {
		return err
	}

	session := NewSession(loaded.Catalog, audit.New(), WriterClipboard{W: cmd.OutOrStdout()})
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	entry, ok, err := session.Open(ctx, id)
	if err != nil {
		return WrapExitError(ExitCommandError, "record show action", err)
	}
	if !ok {
		if ferr := formatter.Error("NOT_FOUND", fmt.Sprintf("no entry with id %q", id), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitFailure, fmt.Sprintf("entry %q not found", id))
	}

	if opts.Format == "json" {
		if err := formatter.JSON(entry); err != nil {
			return err
		}
	} else if err := formatter.Text(RenderEntry(entry)); err != nil {
		return err
	}

	return printTrailIfVerbose(ctx, opts, session, cmd)
}
