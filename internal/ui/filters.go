package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logdesk/internal/logentry"
)

const (
	fieldLevel = iota
	fieldComponent
	fieldCount
	fieldTotal
)

var filterLabels = [fieldTotal]string{
	"Level:     ",
	"Component: ",
	"Count:     ",
}

// filterForm is the modal that edits the query's level, component and count.
type filterForm struct {
	inputs [fieldTotal]textinput.Model
	focus  int
	err    string
}

func newFilterForm() filterForm {
	var f filterForm

	level := textinput.New()
	level.Placeholder = "minimum, e.g. warning"
	level.CharLimit = 20
	level.Width = 30

	comp := textinput.New()
	comp.Placeholder = "exact component name"
	comp.CharLimit = 80
	comp.Width = 30

	count := textinput.New()
	count.Placeholder = "entries to fetch, -1 for all"
	count.CharLimit = 10
	count.Width = 30

	f.inputs[fieldLevel] = level
	f.inputs[fieldComponent] = comp
	f.inputs[fieldCount] = count
	return f
}

// openFilters pre-fills the modal from the current query.
func (m *Model) openFilters() {
	m.filters.inputs[fieldLevel].SetValue(m.query.Level)
	m.filters.inputs[fieldComponent].SetValue(m.query.Component)
	m.filters.inputs[fieldCount].SetValue(strconv.Itoa(m.query.Count))
	m.filters.err = ""
	m.filters.setFocus(fieldLevel)
	m.showFilters = true
}

func (f *filterForm) setFocus(idx int) {
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focus = idx
	f.inputs[idx].Focus()
}

// handleFiltersKey handles keyboard input for the filters modal.
func (m Model) handleFiltersKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.showFilters = false
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		if !m.applyFilters() {
			return m, nil
		}
		m.showFilters = false
		m.savePrefs()
		return m.refetch()

	case key.Matches(msg, m.keys.NextField):
		m.filters.setFocus((m.filters.focus + 1) % fieldTotal)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.filters.setFocus((m.filters.focus - 1 + fieldTotal) % fieldTotal)
		return m, nil

	case msg.String() == "ctrl+c":
		// Clear all filters (modal-specific, doesn't quit)
		m.filters.inputs[fieldLevel].SetValue("")
		m.filters.inputs[fieldComponent].SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	idx := m.filters.focus
	m.filters.inputs[idx], cmd = m.filters.inputs[idx].Update(msg)
	return m, cmd
}

// applyFilters validates the modal and copies it into the query. It leaves
// the query unchanged and records an error when a field is invalid.
func (m *Model) applyFilters() bool {
	level := strings.TrimSpace(m.filters.inputs[fieldLevel].Value())
	parsed, err := logentry.ParseLevel(level)
	if err != nil {
		m.filters.err = "unknown level " + strconv.Quote(level)
		m.filters.setFocus(fieldLevel)
		return false
	}
	if level != "" {
		level = parsed.String()
	}

	count := m.query.Count
	if raw := strings.TrimSpace(m.filters.inputs[fieldCount].Value()); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			m.filters.err = "count must be an integer"
			m.filters.setFocus(fieldCount)
			return false
		}
		count = n
	}

	m.query.Level = level
	m.query.Component = strings.TrimSpace(m.filters.inputs[fieldComponent].Value())
	m.query.Count = count
	m.filters.err = ""
	m.contentDirty = true
	return true
}

// renderFilters renders the filters modal.
func (m Model) renderFilters() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Entry Filters"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("Level keeps entries at or above it."))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Leave blank to disable a filter."))
	b.WriteString("\n\n")

	for i, label := range filterLabels {
		if i == m.filters.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(m.filters.inputs[i].View())
		b.WriteString("\n\n")
	}

	if m.filters.err != "" {
		b.WriteString(styles.DangerText.Render(m.filters.err))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.FaintText.Render("Enter: Apply  •  Esc: Cancel  •  Ctrl+C: Clear"))
	return m.renderModal(b.String(), 50)
}
