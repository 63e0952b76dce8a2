package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/refdeck/refdeck/internal/audit"
	"github.com/refdeck/refdeck/internal/catalog"
	"github.com/refdeck/refdeck/internal/store"
)

// NewBrowseCommand creates the interactive browse command.
func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Start an interactive browsing session.

Every read and copy action within the session is recorded to a
session-scoped audit trail (an in-memory SQLite database that is
discarded when the session ends). The 'log' command shows the trail,
'clear' resets it.

Session commands:
  list                 list all entries
  find <term>          filter entries
  sort <original|alpha> change listing order
  open <id>            show one entry
  copy <id> [full]     copy snippet (or full entry) to the clipboard
  log                  show the audit trail
  clear                clear the audit trail
  help                 show this help
  quit                 end the session`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(rootOpts, cmd)
		},
	}

	return cmd
}

func runBrowse(opts *RootOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	loaded, err := loadCatalog(opts)
	if err != nil {
		return err
	}

	trail, err := store.Open(store.MemoryPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open session trail", err)
	}
	defer trail.Close()

	engine := audit.New(audit.WithTrail(trail))
	session := NewSession(loaded.Catalog, engine, WriterClipboard{W: cmd.OutOrStdout()})

	return browseLoop(ctx, session, cmd.InOrStdin(), cmd.OutOrStdout())
}

// browseLoop reads session commands line by line until quit or EOF.
func browseLoop(ctx context.Context, session *Session, in io.Reader, out io.Writer) error {
	mode := catalog.SortOriginal

	fmt.Fprintf(out, "refdeck: %d entries. Type 'help' for commands.\n", session.Catalog.Len())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		command, args := fields[0], fields[1:]

		switch command {
		case "quit", "exit", "q":
			return nil

		case "help":
			printBrowseHelp(out)

		case "list":
			entries, err := session.List(ctx, "", mode)
			if err != nil {
				return err
			}
			fmt.Fprint(out, RenderEntryList(entries))

		case "find":
			term := strings.Join(args, " ")
			entries, err := session.List(ctx, term, mode)
			if err != nil {
				return err
			}
			fmt.Fprint(out, RenderEntryList(entries))

		case "sort":
			if len(args) != 1 {
				fmt.Fprintln(out, "usage: sort <original|alpha>")
				continue
			}
			m, ok := catalog.ParseSortMode(args[0])
			if !ok {
				fmt.Fprintf(out, "unknown sort order %q\n", args[0])
				continue
			}
			mode = m
			fmt.Fprintf(out, "sort order: %s\n", mode)

		case "open":
			if len(args) != 1 {
				fmt.Fprintln(out, "usage: open <id>")
				continue
			}
			entry, ok, err := session.Open(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(out, "no entry with id %q\n", args[0])
				continue
			}
			fmt.Fprint(out, RenderEntry(entry))

		case "copy":
			if len(args) < 1 || len(args) > 2 || (len(args) == 2 && args[1] != "full") {
				fmt.Fprintln(out, "usage: copy <id> [full]")
				continue
			}
			full := len(args) == 2
			_, ok, err := session.Copy(ctx, args[0], full)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(out, "no entry with id %q\n", args[0])
			}

		case "log":
			records, err := session.Trail(ctx)
			if err != nil {
				return err
			}
			fmt.Fprint(out, RenderTrail(records))

		case "clear":
			if err := session.ClearTrail(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "audit trail cleared")

		default:
			fmt.Fprintf(out, "unknown command %q - type 'help'\n", command)
		}
	}
}

func printBrowseHelp(out io.Writer) {
	fmt.Fprint(out, `commands:
  list                  list all entries
  find <term>           filter entries
  sort <original|alpha> change listing order
  open <id>             show one entry
  copy <id> [full]      copy snippet (or full entry) to the clipboard
  log                   show the audit trail
  clear                 clear the audit trail
  quit                  end the session
`)
}
