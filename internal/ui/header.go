package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logdesk/internal/catalog"
	"github.com/five82/logdesk/internal/logentry"
)

// renderHeader renders the top status line.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBgStyle(m.theme.Surface)
	compact := m.width < 100

	parts := []string{bg.render("logdesk", styles.Logo)}

	source := m.query.Source
	if source == "" {
		source = "all sources"
	}
	parts = append(parts, bg.render("source", styles.FaintText)+bg.spaces(1)+
		bg.render(source, styles.AccentText))

	if m.origin != "" && !compact {
		parts = append(parts, bg.render(truncateMiddle(m.origin, 40), styles.MutedText))
	}

	if err := m.snapshot.LastError; err != nil {
		label := classifyFetchError(err)
		if m.snapshot.IsOffline() {
			label += " (offline)"
		}
		parts = append(parts, bg.render(label, styles.DangerText))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.render("updated "+m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.join(parts, "  "))
}

// classifyFetchError returns a short description of a failed fetch.
func classifyFetchError(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, catalog.ErrUnknownSource):
		return "UNKNOWN SOURCE"
	case errors.Is(err, logentry.ErrInvalidLevel):
		return "INVALID LEVEL"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "SERVER OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := newBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"r", "Reload"},
		{"s", "Source"},
		{"f", "Filters"},
		{"/", "Search"},
		{"n/N", "Next/Prev"},
		{"j/k", "Scroll"},
		{"?", "More"},
		{"q", "Quit"},
	}

	colon := bg.render(":", styles.FaintText)
	segments := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		segments = append(segments,
			bg.render(c.key, styles.AccentText)+colon+bg.render(c.desc, styles.MutedText))
	}

	if m.search.query != "" {
		segments = append(segments, bg.render("/"+truncate(m.search.query, 18), styles.AccentText))
	}

	segments = append(segments,
		bg.render("T", styles.AccentText)+colon+bg.render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(bg.join(segments, "  "))
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// truncateMiddle truncates a string in the middle, preserving start and end.
func truncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 5 {
		return s[:max]
	}
	// Keep more of the end (file name) than the start
	endLen := (max - 3) * 2 / 3
	startLen := max - 3 - endLen
	return s[:startLen] + "..." + s[len(s)-endLen:]
}
