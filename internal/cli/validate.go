package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/refdeck/refdeck/internal/catalog"
)

// ValidationResult holds validation results for JSON output.
type ValidationResult struct {
	Valid    bool                 `json:"valid"`
	Entries  int                  `json:"entries"`
	Rejected []*catalog.LoadError `json:"rejected,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a catalog source",
		Long: `Validate a catalog YAML file against the entry schema.

Every rejected entry is reported individually; a rejection never
prevents the remaining entries from loading. With no argument, the
built-in catalog is validated.

Exit status is 1 when any entry was rejected, 2 when the file could
not be read or parsed at all.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runValidate(rootOpts, path, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	var (
		result *catalog.LoadResult
		err    error
	)
	if path == "" {
		result, err = catalog.LoadDefault()
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return WrapExitError(ExitCommandError, "read catalog file", err)
		}
		result, err = catalog.Load(data)
	}
	if err != nil {
		if ferr := formatter.Error(catalog.ErrCodeParse, err.Error(), nil); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitCommandError, "parse catalog source", err)
	}

	vr := ValidationResult{
		Valid:    len(result.Errors) == 0,
		Entries:  result.Catalog.Len(),
		Rejected: result.Errors,
	}

	if opts.Format == "json" {
		if err := formatter.JSON(vr); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%d entries loaded, %d rejected\n", vr.Entries, len(vr.Rejected))
		for _, le := range vr.Rejected {
			fmt.Fprintf(cmd.OutOrStdout(), "  %v\n", le)
		}
	}

	if !vr.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%d catalog entries rejected", len(vr.Rejected)))
	}
	return nil
}
