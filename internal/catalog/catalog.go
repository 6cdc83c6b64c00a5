// Package catalog maps logical source names onto log files in a directory
// and answers entry queries for one source or for all of them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/five82/logdesk/internal/logentry"
)

// ErrUnknownSource reports a source name that is neither discovered on
// disk nor declared as known.
var ErrUnknownSource = errors.New("unknown log source")

const defaultExtension = ".log"

// Options configure discovery and reads.
type Options struct {
	Extension   string   // file extension that marks a log file; default ".log"
	Include     []string // doublestar patterns relative to the directory
	Known       []string // names that exist even before their file does
	Parallelism int      // concurrent file reads when merging
	Logger      hclog.Logger
}

// Query selects entries. An empty Source merges every source.
type Query struct {
	Source    string
	Count     int // -1 or 0 reads everything
	Level     string
	Component string
}

// Catalog answers queries against the log files in one directory.
type Catalog struct {
	dir    string
	opts   Options
	logger hclog.Logger
	merger logentry.Merger
}

// New builds a Catalog over dir.
func New(dir string, opts Options) *Catalog {
	if strings.TrimSpace(opts.Extension) == "" {
		opts.Extension = defaultExtension
	}
	if !strings.HasPrefix(opts.Extension, ".") {
		opts.Extension = "." + opts.Extension
	}
	if len(opts.Include) == 0 {
		opts.Include = []string{"*" + opts.Extension}
	}
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Catalog{
		dir:    dir,
		opts:   opts,
		logger: logger,
		merger: logentry.Merger{Logger: logger, Parallelism: opts.Parallelism},
	}
}

// Dir returns the directory the catalog reads from.
func (c *Catalog) Dir() string {
	return c.dir
}

// Sources lists the names of discovered log files, sorted. A missing
// directory yields no sources.
func (c *Catalog) Sources(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(c.dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat log dir: %w", err)
	}

	fsys := os.DirFS(c.dir)
	seen := make(map[string]struct{})
	for _, pattern := range c.opts.Include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", pattern, err)
		}
		for _, match := range matches {
			if path.Ext(match) != c.opts.Extension {
				continue
			}
			seen[strings.TrimSuffix(match, c.opts.Extension)] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Path returns the file that backs a source name.
func (c *Catalog) Path(name string) string {
	return filepath.Join(c.dir, filepath.FromSlash(name)+c.opts.Extension)
}

// Entries answers q. A named source whose file is missing but which is
// known yields no entries; an unknown name yields ErrUnknownSource.
func (c *Catalog) Entries(ctx context.Context, q Query) ([]logentry.Entry, error) {
	threshold, err := logentry.ParseLevel(q.Level)
	if err != nil {
		return nil, err
	}
	filter := logentry.Filter{
		Max:       q.Count,
		Threshold: threshold,
		Component: q.Component,
	}

	sources, err := c.Sources(ctx)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(q.Source)
	if name == "" {
		paths := make([]string, len(sources))
		for i, s := range sources {
			paths[i] = c.Path(s)
		}
		return c.merger.ReadAll(ctx, paths, filter)
	}

	if !slices.Contains(sources, name) && !slices.Contains(c.opts.Known, name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	entries, err := logentry.Read(ctx, c.Path(name), filter)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug("log file missing for known source", "source", name)
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}
