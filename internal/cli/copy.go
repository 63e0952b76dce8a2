package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/refdeck/refdeck/internal/audit"
)

// CopyOptions holds flags for the copy command.
type CopyOptions struct {
	*RootOptions
	Full bool
}

// NewCopyCommand creates the copy command.
func NewCopyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CopyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "copy <id>",
		Short: "Copy an entry's snippet",
		Long: `Copy an entry's code snippet to the clipboard capability.

The default capability writes the text to stdout, so it can be piped
into the environment's clipboard tool:

  refdeck copy text-generation | pbcopy

With --full, the whole entry is copied as canonical JSON instead of
the raw snippet.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCopy(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Full, "full", false, "copy the full entry as canonical JSON")

	return cmd
}

func runCopy(opts *CopyOptions, id string, cmd *cobra.Command) error {
	ctx := context.Background()

	loaded, err := loadCatalog(opts.RootOptions)
	if err != nil {
		return err
	}

	session := NewSession(loaded.Catalog, audit.New(), WriterClipboard{W: cmd.OutOrStdout()})
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	_, ok, err := session.Copy(ctx, id, opts.Full)
	if err != nil {
		return WrapExitError(ExitCommandError, "copy entry", err)
	}
	if !ok {
		if ferr := formatter.Error("NOT_FOUND", fmt.Sprintf("no entry with id %q", id), nil); ferr != nil {
			return ferr
		}
		return NewExitError(ExitFailure, fmt.Sprintf("entry %q not found", id))
	}

	return printTrailIfVerbose(ctx, opts.RootOptions, session, cmd)
}
