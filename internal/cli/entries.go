package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/logdesk/internal/catalog"
	"github.com/five82/logdesk/internal/logentry"
)

func newEntriesCommand(o *rootOptions) *cobra.Command {
	var (
		count     int
		level     string
		component string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "entries [source]",
		Short: "Print the newest entries of one source, or of every source merged",
		Long: `Print log entries oldest-first. Without a source every log file in the
directory is merged into one time-ordered list.

Examples:
  logdesk entries main -n 50
  logdesk entries --level warning --component router
  logdesk entries --remote --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := catalog.Query{
				Count:     o.cfg.DefaultCount,
				Level:     level,
				Component: component,
			}
			if len(args) == 1 {
				q.Source = args[0]
			}
			if cmd.Flags().Changed("count") {
				q.Count = count
			}

			f, err := o.fetcher(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			entries, err := f.Entries(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("read entries: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if entries == nil {
					entries = []logentry.Entry{}
				}
				return writeJSON(out, entries)
			}
			return writeEntries(out, entries, o.theme)
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&count, "count", "n", 0, "entries to return, -1 for all (default from config)")
	flags.StringVarP(&level, "level", "l", "", "minimum level, e.g. warning")
	flags.StringVar(&component, "component", "", "exact component name")
	flags.BoolVar(&asJSON, "json", false, "print entries as JSON")
	return cmd
}

func newSourcesCommand(o *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the log sources in the log directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := o.fetcher(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			sources, err := f.Sources(cmd.Context())
			if err != nil {
				return fmt.Errorf("list sources: %w", err)
			}
			if asJSON {
				if sources == nil {
					sources = []string{}
				}
				return writeJSON(cmd.OutOrStdout(), sources)
			}
			for _, name := range sources {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print sources as JSON")
	return cmd
}
