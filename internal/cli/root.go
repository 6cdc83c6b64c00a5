// Package cli implements the logdesk command tree.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/logdesk/internal/app"
	"github.com/five82/logdesk/internal/config"
	"github.com/five82/logdesk/internal/registry"
	"github.com/five82/logdesk/internal/ui"
)

const envPrefix = "logdesk"

// rootOptions is shared by every subcommand. cfg is filled in by the root's
// PersistentPreRunE before any RunE executes.
type rootOptions struct {
	configPath string
	remote     bool
	logLevel   string
	theme      string

	v   *viper.Viper
	cfg config.Config
}

// NewRootCommand builds the logdesk command tree. Flags win over LOGDESK_*
// environment variables, which win over the config file.
func NewRootCommand() *cobra.Command {
	o := &rootOptions{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "logdesk",
		Short: "Read, filter and merge application log files",
		Long: `logdesk reads bracketed application logs newest-first, filters them by
level and component, and merges several files into one time-ordered view.

It can read a log directory directly, serve it over HTTP, or query a running
server with --remote.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(*cobra.Command, []string) error { return o.load() },
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&o.configPath, "config", "c", "", "config file (default: ~/.config/logdesk/config.toml)")
	pf.String("log-dir", "", "directory holding the log files")
	pf.String("api-bind", "", "server address used by serve and --remote")
	pf.BoolVar(&o.remote, "remote", false, "read through a running logdesk server")
	pf.StringVar(&o.logLevel, "log-level", "INFO", "level for logdesk's own diagnostics")
	pf.StringVar(&o.theme, "theme", "", "color theme for text output")

	_ = o.v.BindPFlag(config.KeyLogDir, pf.Lookup("log-dir"))
	_ = o.v.BindPFlag(config.KeyAPIBind, pf.Lookup("api-bind"))
	o.v.SetEnvPrefix(envPrefix)
	o.v.AutomaticEnv()

	cmd.AddCommand(
		newEntriesCommand(o),
		newSourcesCommand(o),
		newLoggersCommand(o),
		newServeCommand(o),
		newViewCommand(o),
	)
	return cmd
}

func (o *rootOptions) load() error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	o.cfg = config.Overlay(cfg, o.v)
	return nil
}

// registry creates the logger registry writing to w at --log-level.
func (o *rootOptions) registry(w io.Writer) *registry.Hclog {
	return registry.New(w, o.logLevel)
}

// fetcher returns the catalog, or the client with --remote. Diagnostics go
// to w.
func (o *rootOptions) fetcher(w io.Writer) (ui.Fetcher, error) {
	f, _, err := app.NewFetcher(o.cfg, o.remote, o.registry(w))
	return f, err
}
