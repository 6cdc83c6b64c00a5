package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logdesk/internal/logentry"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames = %v, want 3 themes", names)
	}
	for _, name := range names {
		if GetTheme(name).Name != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, GetTheme(name).Name)
		}
	}
	if GetTheme("missing").Name != "Dracula" {
		t.Fatalf("unknown theme should fall back to Dracula")
	}
}

func TestNextThemeCycles(t *testing.T) {
	seen := map[string]bool{}
	name := ThemeNames()[0]
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != ThemeNames()[0] || len(seen) != len(ThemeNames()) {
		t.Fatalf("NextTheme did not cycle through every theme: %v", seen)
	}
	if NextTheme("missing") != ThemeNames()[0] {
		t.Fatalf("NextTheme(unknown) should restart the cycle")
	}
}

func TestThemesCoverEveryLevel(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, level := range logentry.LevelNames() {
			if th.LevelColors[level] == "" {
				t.Fatalf("theme %s has no color for %s", name, level)
			}
		}
	}
}

func TestLevelStyle(t *testing.T) {
	th := GetTheme("Dracula")
	styles := th.Styles()

	if got := styles.LevelStyle("error").GetForeground(); got != lipgloss.Color(th.LevelColors["ERROR"]) {
		t.Fatalf("ERROR foreground = %v, want %v", got, th.LevelColors["ERROR"])
	}
	if !styles.LevelStyle("CRITICAL").GetBold() {
		t.Fatalf("CRITICAL should be bold")
	}
	if styles.LevelStyle("INFO").GetBold() {
		t.Fatalf("INFO should not be bold")
	}
	if got := styles.LevelStyle("").GetForeground(); got != lipgloss.Color(th.Text) {
		t.Fatalf("empty level foreground = %v, want text color", got)
	}
}
