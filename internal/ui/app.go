// Package ui provides the Bubble Tea log viewer for logdesk.
package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"github.com/five82/logdesk/internal/catalog"
	"github.com/five82/logdesk/internal/logentry"
	"github.com/five82/logdesk/internal/prefs"
	"github.com/five82/logdesk/internal/state"
)

const (
	fetchTimeout = 10 * time.Second
	defaultCount = 200
)

// Fetcher answers the viewer's queries. *catalog.Catalog and *client.Client
// both satisfy it.
type Fetcher interface {
	Sources(ctx context.Context) ([]string, error)
	Entries(ctx context.Context, q catalog.Query) ([]logentry.Entry, error)
}

// Options configures the viewer.
type Options struct {
	Context      context.Context
	Fetcher      Fetcher
	Store        *state.Store
	Logger       hclog.Logger
	Prefs        prefs.Prefs
	PrefsPath    string
	Source       string // initial source; empty merges every source
	Origin       string // log directory or server address shown in the header
	DefaultCount int
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	fetcher   Fetcher
	store     *state.Store
	logger    hclog.Logger
	prefsPath string
	origin    string
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Query state
	query    catalog.Query
	seq      uint64
	loading  bool
	snapshot state.Snapshot

	// Entry view
	viewport     viewport.Model
	lines        []displayLine
	search       searchState
	contentDirty bool

	// Filters modal
	showFilters bool
	filters     filterForm
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	count := opts.Prefs.Count
	if count == 0 {
		count = opts.DefaultCount
	}
	if count == 0 {
		count = defaultCount
	}

	si := textinput.New()
	si.Placeholder = "Search entries..."
	si.CharLimit = 100

	return Model{
		ctx:       ctx,
		fetcher:   opts.Fetcher,
		store:     store,
		logger:    logger,
		prefsPath: prefsPath,
		origin:    opts.Origin,
		keys:      defaultKeyMap(),
		theme:     GetTheme(opts.Prefs.Theme),
		query: catalog.Query{
			Source:    strings.TrimSpace(opts.Source),
			Count:     count,
			Level:     opts.Prefs.Level,
			Component: opts.Prefs.Component,
		},
		seq:     1,
		loading: true,
		search:  searchState{input: si},
		filters: newFilterForm(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.fetchCmd(m.seq, m.query)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.viewportWidth(), m.viewportHeight())
			m.contentDirty = true
		}
		m.ready = true
		m.updateViewport()
		return m, nil

	case fetchedMsg:
		return m.handleFetched(msg), nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showFilters {
		return m.renderFilters()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. Modal and search input take every key
// before the global bindings see it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.showFilters {
		return m.handleFiltersKey(msg)
	}
	if m.search.active {
		return m.handleSearchInput(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.contentDirty = true
		m.updateViewport()
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.refetch()

	case key.Matches(msg, m.keys.CycleSource):
		m.query.Source = nextSource(m.query.Source, m.snapshot.Sources)
		return m.refetch()

	case key.Matches(msg, m.keys.Filters):
		m.openFilters()
		return m, nil
	}

	return m.handleEntriesKey(msg)
}

// refetch starts a new query. Results from earlier queries still in flight
// are discarded when they arrive.
func (m Model) refetch() (tea.Model, tea.Cmd) {
	m.seq++
	m.loading = true
	return m, m.fetchCmd(m.seq, m.query)
}

func (m Model) handleFetched(msg fetchedMsg) Model {
	if msg.seq != m.seq {
		return m
	}
	m.loading = false
	m.store.Update(msg.query, msg.entries, msg.sources, msg.err)
	m.snapshot = m.store.Snapshot()
	if msg.err != nil {
		m.logger.Warn("fetch entries", "source", msg.query.Source, "error", msg.err)
		return m
	}
	m.lines = buildLines(m.snapshot.Entries)
	m.findSearchMatches()
	m.contentDirty = true
	m.updateViewport()
	m.viewport.GotoBottom()
	return m
}

// savePrefs persists the theme and filters; failures are logged only.
func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{
		Theme:     m.theme.Name,
		Level:     m.query.Level,
		Component: m.query.Component,
		Count:     m.query.Count,
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Debug("save prefs", "path", m.prefsPath, "error", err)
	}
}

// nextSource cycles "" (all sources) through each known source name.
func nextSource(current string, sources []string) string {
	if current == "" {
		if len(sources) == 0 {
			return ""
		}
		return sources[0]
	}
	for i, name := range sources {
		if name == current {
			if i+1 < len(sources) {
				return sources[i+1]
			}
			return ""
		}
	}
	return ""
}

// Messages

type fetchedMsg struct {
	seq     uint64
	query   catalog.Query
	entries []logentry.Entry
	sources []string
	err     error
}

// Commands

func (m Model) fetchCmd(seq uint64, q catalog.Query) tea.Cmd {
	fetcher := m.fetcher
	parent := m.ctx
	return func() tea.Msg {
		if fetcher == nil {
			return fetchedMsg{seq: seq, query: q, err: errors.New("no entry source configured")}
		}
		ctx, cancel := context.WithTimeout(parent, fetchTimeout)
		defer cancel()

		sources, err := fetcher.Sources(ctx)
		if err != nil {
			return fetchedMsg{seq: seq, query: q, err: err}
		}
		entries, err := fetcher.Entries(ctx, q)
		return fetchedMsg{seq: seq, query: q, entries: entries, sources: sources, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the viewer exits or
// opts.Context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		return nil
	}
	return err
}
