package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/five82/logdesk/internal/logentry"
	"github.com/five82/logdesk/internal/registry"
	"github.com/five82/logdesk/internal/ui"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeEntries prints one row per entry with continuation lines indented
// below it. Colors follow the theme when w is a terminal.
func writeEntries(w io.Writer, entries []logentry.Entry, themeName string) error {
	r := lipgloss.NewRenderer(w)
	theme := ui.GetTheme(themeName)
	muted := r.NewStyle().Foreground(lipgloss.Color(theme.Muted))
	accent := r.NewStyle().Foreground(lipgloss.Color(theme.Accent))

	for _, e := range entries {
		lines := strings.Split(e.Message, "\n")
		if e.IsContinuation() {
			if _, err := fmt.Fprintln(w, muted.Render(lines[0])); err != nil {
				return err
			}
		} else {
			level := levelStyle(r, theme, e.Level).Render(fmt.Sprintf("%-8s", e.Level))
			parts := []string{muted.Render(e.Time), level}
			if e.Component != "" {
				parts = append(parts, accent.Render("["+e.Component+"]"))
			}
			parts = append(parts, lines[0])
			if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
				return err
			}
		}
		for _, cont := range lines[1:] {
			if _, err := fmt.Fprintln(w, "    "+cont); err != nil {
				return err
			}
		}
	}
	return nil
}

func levelStyle(r *lipgloss.Renderer, theme ui.Theme, level string) lipgloss.Style {
	name := strings.ToUpper(level)
	style := r.NewStyle()
	if color, ok := theme.LevelColors[name]; ok {
		style = style.Foreground(lipgloss.Color(color))
	}
	if l, err := logentry.ParseLevel(name); err == nil && l >= logentry.LevelError {
		style = style.Bold(true)
	}
	return style
}

// writeLoggers prints the logger list as a table.
func writeLoggers(w io.Writer, loggers []registry.LoggerInfo, withLevel bool) error {
	r := lipgloss.NewRenderer(w)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Faint(true))

	if withLevel {
		t.Headers("LOGGER", "LEVEL")
		for _, info := range loggers {
			t.Row(info.Name, info.Level)
		}
	} else {
		t.Headers("LOGGER")
		for _, info := range loggers {
			t.Row(info.Name)
		}
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
