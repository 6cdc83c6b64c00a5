package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/logdesk/internal/client"
)

func newLoggersCommand(o *rootOptions) *cobra.Command {
	var (
		withLevel bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "loggers",
		Short: "List the loggers registered in a running server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := client.New(o.cfg.APIBind)
			if err != nil {
				return err
			}
			loggers, err := c.Loggers(cmd.Context(), withLevel)
			if err != nil {
				return fmt.Errorf("list loggers: %w", err)
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), loggers)
			}
			return writeLoggers(cmd.OutOrStdout(), loggers, withLevel)
		},
	}
	cmd.Flags().BoolVar(&withLevel, "level", false, "include each logger's level")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print loggers as JSON")

	cmd.AddCommand(newLoggersSetCommand(o))
	return cmd
}

func newLoggersSetCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <level> [logger]",
		Short: "Change one logger's level, or every logger's when none is named",
		Example: `  logdesk loggers set debug catalog
  logdesk loggers set warning`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := client.New(o.cfg.APIBind)
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 2 {
				name = args[1]
			}
			if err := c.SetLoggerLevel(cmd.Context(), name, args[0]); err != nil {
				return fmt.Errorf("set level: %w", err)
			}
			target := name
			if target == "" {
				target = "all loggers"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", target, args[0])
			return nil
		},
	}
}
