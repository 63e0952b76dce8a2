package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/refdeck/refdeck/internal/catalog"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	CatalogPath string // optional catalog source; empty = embedded default
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the refdeck CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "refdeck",
		Short: "refdeck - browsable reference catalog with an audit trail",
		Long: "A reference catalog of documented API recipes, with an audit trail\n" +
			"recording every read and copy action performed against it.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "path to a catalog YAML file (default: built-in catalog)")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewCopyCommand(opts))
	cmd.AddCommand(NewBrowseCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// configureLogging routes slog to stderr so structured logs never corrupt
// command output. Debug level only with --verbose.
func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadCatalog resolves the catalog source for a command run.
// Loader rejections are not fatal here - the remaining entries keep
// serving - but each one is surfaced on stderr via the loader's logging.
func loadCatalog(opts *RootOptions) (*catalog.LoadResult, error) {
	if opts.CatalogPath == "" {
		result, err := catalog.LoadDefault()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load built-in catalog", err)
		}
		return result, nil
	}

	data, err := os.ReadFile(opts.CatalogPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "read catalog file", err)
	}
	result, err := catalog.Load(data)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load catalog file", err)
	}
	return result, nil
}
