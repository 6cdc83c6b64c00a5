package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/five82/logdesk/internal/app"
	"github.com/five82/logdesk/internal/prefs"
)

func newServeCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the log directory over HTTP",
		Long: `Serve entries, sources and logger levels over HTTP at api_bind
until interrupted. Its own loggers can be listed and retuned with
"logdesk loggers".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := o.registry(cmd.ErrOrStderr())
			reg.Logger("cli").Info("serving", "dir", o.cfg.LogDir, "addr", o.cfg.APIBind)
			return app.Serve(cmd.Context(), o.cfg, reg)
		},
	}
}

func newViewCommand(o *rootOptions) *cobra.Command {
	var (
		source    string
		prefsPath string
		debugLog  string
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse entries in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The terminal belongs to the viewer; diagnostics go to a file or nowhere.
			var w io.Writer = io.Discard
			if debugLog != "" {
				f, err := os.OpenFile(debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open debug log: %w", err)
				}
				defer f.Close()
				w = f
			}

			return app.Run(cmd.Context(), app.Options{
				Config:    o.cfg,
				Registry:  o.registry(w),
				PrefsPath: prefsPath,
				Source:    source,
				Remote:    o.remote,
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&source, "source", "s", "", "initial source (default: every source merged)")
	flags.StringVar(&prefsPath, "prefs", "", "prefs file (default: "+prefs.DefaultPath()+")")
	flags.StringVar(&debugLog, "debug-log", "", "append diagnostics to this file")
	return cmd
}
