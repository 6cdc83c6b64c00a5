package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logdesk/internal/logentry"
)

// displayLine is one terminal row. An entry with a multi-line message spans
// several rows; rows after the first are continuations.
type displayLine struct {
	entry logentry.Entry
	text  string // plain text, used for search
	cont  bool
}

// searchState holds the active search pattern and its matches.
type searchState struct {
	active   bool
	input    textinput.Model
	query    string
	regex    *regexp.Regexp
	matches  []int // row indices that match
	matchIdx int
}

// buildLines flattens entries into display rows, oldest first.
func buildLines(entries []logentry.Entry) []displayLine {
	lines := make([]displayLine, 0, len(entries))
	for _, e := range entries {
		msgLines := strings.Split(e.Message, "\n")
		lines = append(lines, displayLine{entry: e, text: formatHeader(e, msgLines[0])})
		for _, cont := range msgLines[1:] {
			lines = append(lines, displayLine{entry: e, text: "    " + cont, cont: true})
		}
	}
	return lines
}

// formatHeader renders the first row of an entry as plain text.
func formatHeader(e logentry.Entry, first string) string {
	if e.IsContinuation() {
		return first
	}
	parts := []string{e.Time, fmt.Sprintf("%-8s", e.Level)}
	if e.Component != "" {
		parts = append(parts, "["+e.Component+"]")
	}
	parts = append(parts, first)
	return strings.Join(parts, " ")
}

func (m Model) viewportWidth() int {
	return max(m.width-4, 1)
}

// viewportHeight leaves room for the header, command bar, status bar and
// the two box borders.
func (m Model) viewportHeight() int {
	return max(m.height-5, 1)
}

// updateViewport resizes the viewport and re-renders content when it changed.
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	m.viewport.Width = m.viewportWidth()
	m.viewport.Height = m.viewportHeight()
	m.viewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	if m.contentDirty {
		m.viewport.SetContent(m.renderEntries())
		m.contentDirty = false
	}
}

// renderMain renders the full screen.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Background(lipgloss.Color(m.theme.FocusBg)).
		Padding(0, 1).
		Width(m.width - 2).
		Render(m.viewport.View())
	b.WriteString(box)
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderEntries renders every display row with level coloring and search
// highlighting.
func (m *Model) renderEntries() string {
	bg := newBgStyle(m.theme.FocusBg)
	styles := m.theme.Styles()
	width := m.viewportWidth()

	if len(m.lines) == 0 {
		msg := "No log entries"
		if m.loading {
			msg = "Loading entries..."
		}
		return bg.fill(bg.render(msg, styles.MutedText), width)
	}

	matchSet := make(map[int]bool, len(m.search.matches))
	for _, idx := range m.search.matches {
		matchSet[idx] = true
	}
	active := -1
	if m.search.matchIdx < len(m.search.matches) {
		active = m.search.matches[m.search.matchIdx]
	}

	var b strings.Builder
	for i, line := range m.lines {
		var content string
		switch {
		case i == active:
			content = lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.Warning)).
				Foreground(lipgloss.Color(m.theme.Background)).
				Render(line.text)
		case matchSet[i]:
			content = bg.render(line.text, styles.AccentText)
		default:
			content = m.colorizeLine(line, styles, bg)
		}
		b.WriteString(bg.fill(content, width))
		if i < len(m.lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// colorizeLine styles the timestamp, level and component fields of a row.
func (m *Model) colorizeLine(line displayLine, styles Styles, bg bgStyle) string {
	e := line.entry
	if line.cont {
		return bg.render(line.text, styles.Text)
	}
	if e.IsContinuation() {
		// Orphan fragment that never found its record.
		return bg.render(line.text, styles.MutedText)
	}

	first, _, _ := strings.Cut(e.Message, "\n")
	var out strings.Builder
	out.WriteString(bg.render(e.Time, styles.FaintText))
	out.WriteString(bg.spaces(1))
	out.WriteString(bg.render(fmt.Sprintf("%-8s", e.Level), styles.LevelStyle(e.Level)))
	if e.Component != "" {
		out.WriteString(bg.spaces(1))
		out.WriteString(bg.render("["+e.Component+"]", styles.AccentText))
	}
	out.WriteString(bg.spaces(1))
	out.WriteString(bg.render(first, styles.Text))
	return out.String()
}

// renderStatus renders the line under the entry box.
func (m Model) renderStatus() string {
	bg := newBgStyle(m.theme.Background)
	styles := m.theme.Styles()

	if m.search.active {
		return bg.render("/", styles.AccentText) + m.search.input.View()
	}
	if m.search.regex != nil {
		if len(m.search.matches) == 0 {
			return bg.render("Pattern not found: "+m.search.query, styles.DangerText)
		}
		return bg.render("/"+m.search.query, styles.AccentText) +
			bg.render(" - ", styles.FaintText) +
			bg.render(fmt.Sprintf("%d/%d", m.search.matchIdx+1, len(m.search.matches)), styles.WarningText) +
			bg.render(" - n/N to move, Esc to clear", styles.FaintText)
	}

	parts := []string{
		bg.render(fmt.Sprintf("%d entries", len(m.snapshot.Entries)), styles.FaintText),
		bg.render(fmt.Sprintf("%d lines", len(m.lines)), styles.FaintText),
	}
	if filters := m.filterSummary(); filters != "" {
		parts = append(parts, bg.render("filter: "+filters, styles.MutedText))
	}
	if m.loading {
		parts = append(parts, bg.render("loading", styles.WarningText))
	}
	return bg.join(parts, " • ")
}

// filterSummary describes the active query filters, or "" when none apply.
func (m Model) filterSummary() string {
	var parts []string
	if m.query.Level != "" {
		parts = append(parts, "level>="+m.query.Level)
	}
	if m.query.Component != "" {
		parts = append(parts, "comp="+m.query.Component)
	}
	return strings.Join(parts, " ")
}

// handleEntriesKey processes scrolling and search keys.
func (m Model) handleEntriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.search.active = true
		m.search.input.SetValue("")
		return m, m.search.input.Focus()

	case key.Matches(msg, m.keys.NextMatch):
		m.moveMatch(1)
	case key.Matches(msg, m.keys.PrevMatch):
		m.moveMatch(-1)

	case key.Matches(msg, m.keys.Escape):
		if m.search.regex != nil {
			m.clearSearch()
			m.updateViewport()
		}

	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
	}
	return m, nil
}

// handleSearchInput handles keyboard input while the search prompt is open.
func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		query := m.search.input.Value()
		m.search.active = false
		m.search.input.Blur()
		if query == "" {
			return m, nil
		}
		re, err := regexp.Compile("(?i)" + query)
		if err != nil {
			re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
		}
		m.search.regex = re
		m.search.query = query
		m.findSearchMatches()
		m.updateViewport()
		m.scrollToMatch()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.search.active = false
		m.search.input.Blur()
		m.search.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return m, cmd
}

// findSearchMatches recomputes matches against the current rows.
func (m *Model) findSearchMatches() {
	m.search.matches = nil
	m.search.matchIdx = 0
	m.contentDirty = true
	if m.search.regex == nil {
		return
	}
	for i, line := range m.lines {
		if m.search.regex.MatchString(line.text) {
			m.search.matches = append(m.search.matches, i)
		}
	}
}

func (m *Model) clearSearch() {
	m.search.regex = nil
	m.search.query = ""
	m.search.matches = nil
	m.search.matchIdx = 0
	m.contentDirty = true
}

// moveMatch steps through matches by delta, wrapping at either end.
func (m *Model) moveMatch(delta int) {
	n := len(m.search.matches)
	if n == 0 {
		return
	}
	m.search.matchIdx = ((m.search.matchIdx+delta)%n + n) % n
	m.contentDirty = true
	m.updateViewport()
	m.scrollToMatch()
}

// scrollToMatch centers the active match when possible.
func (m *Model) scrollToMatch() {
	if m.search.matchIdx >= len(m.search.matches) {
		return
	}
	target := m.search.matches[m.search.matchIdx]
	m.viewport.SetYOffset(max(target-m.viewport.Height/2, 0))
}
