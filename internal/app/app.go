package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/five82/logdesk/internal/catalog"
	"github.com/five82/logdesk/internal/client"
	"github.com/five82/logdesk/internal/config"
	"github.com/five82/logdesk/internal/prefs"
	"github.com/five82/logdesk/internal/registry"
	"github.com/five82/logdesk/internal/server"
	"github.com/five82/logdesk/internal/state"
	"github.com/five82/logdesk/internal/ui"
)

const preflightTimeout = 3 * time.Second

// Options configure the viewer.
type Options struct {
	Config    config.Config
	Registry  *registry.Hclog
	PrefsPath string // empty uses default ~/.config/logdesk/prefs.toml
	Source    string // initial source; empty merges every source
	Remote    bool   // read through the server at Config.APIBind
}

// NewCatalog builds the local catalog described by cfg.
func NewCatalog(cfg config.Config, logger hclog.Logger) *catalog.Catalog {
	return catalog.New(cfg.LogDir, catalog.Options{
		Extension:   cfg.Extension,
		Include:     cfg.Include,
		Known:       cfg.Known,
		Parallelism: cfg.Parallelism,
		Logger:      logger,
	})
}

// NewFetcher returns the entry source for cfg and a label for it: the log
// directory when local, the server address when remote.
func NewFetcher(cfg config.Config, remote bool, reg *registry.Hclog) (ui.Fetcher, string, error) {
	if !remote {
		return NewCatalog(cfg, reg.Logger("catalog")), cfg.LogDir, nil
	}
	c, err := client.New(cfg.APIBind)
	if err != nil {
		return nil, "", fmt.Errorf("init client: %w", err)
	}
	return c, cfg.APIBind, nil
}

// Run boots the viewer until the user exits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	reg := opts.Registry
	logger := reg.Logger("ui")

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("load prefs failed, using defaults", "error", err)
		userPrefs = prefs.Default()
	}

	fetcher, origin, err := NewFetcher(opts.Config, opts.Remote, reg)
	if err != nil {
		return err
	}
	if opts.Remote {
		if err := ensureAvailable(ctx, fetcher, origin); err != nil {
			return err
		}
	}

	return ui.Run(ui.Options{
		Context:      ctx,
		Fetcher:      fetcher,
		Store:        &state.Store{},
		Logger:       logger,
		Prefs:        userPrefs,
		PrefsPath:    opts.PrefsPath,
		Source:       opts.Source,
		Origin:       origin,
		DefaultCount: opts.Config.DefaultCount,
	})
}

// Serve runs the HTTP server over the local catalog until ctx is cancelled.
func Serve(ctx context.Context, cfg config.Config, reg *registry.Hclog) error {
	cat := NewCatalog(cfg, reg.Logger("catalog"))
	srv := server.New(cat, reg, reg.Logger("server"), cfg.APIBind)
	return srv.Run(ctx)
}

// ensureAvailable fails fast when the server cannot be reached, rather than
// opening a viewer that can only show errors.
func ensureAvailable(ctx context.Context, f ui.Fetcher, origin string) error {
	ctx, cancel := context.WithTimeout(ctx, preflightTimeout)
	defer cancel()
	if _, err := f.Sources(ctx); err != nil {
		return fmt.Errorf("logdesk server unreachable at %s: %w", origin, err)
	}
	return nil
}
