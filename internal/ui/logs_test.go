package ui

import (
	"testing"

	"github.com/five82/logdesk/internal/logentry"
)

func TestBuildLines(t *testing.T) {
	entries := []logentry.Entry{
		{Message: "orphan fragment"},
		{Time: "2024-05-01 08:00:01.000000", Level: "WARNING", Component: "pool", Message: "slow\nretrying"},
		{Time: "2024-05-01 08:00:02.000000", Level: "INFO", Message: "no component"},
	}

	lines := buildLines(entries)
	want := []struct {
		text string
		cont bool
	}{
		{"orphan fragment", false},
		{"2024-05-01 08:00:01.000000 WARNING  [pool] slow", false},
		{"    retrying", true},
		{"2024-05-01 08:00:02.000000 INFO     no component", false},
	}
	if len(lines) != len(want) {
		t.Fatalf("lines = %d, want %d", len(lines), len(want))
	}
	for i, w := range want {
		if lines[i].text != w.text || lines[i].cont != w.cont {
			t.Fatalf("line %d = {%q %v}, want {%q %v}", i, lines[i].text, lines[i].cont, w.text, w.cont)
		}
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 6, "abc..."},
		{"abcd", 2, "ab"},
		{"abcd", 0, ""},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.max); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=5 = %q, want ab", got)
	}
	got := truncateMiddle("/var/log/app/main.log", 12)
	if len(got) != 12 {
		t.Fatalf("truncateMiddle length = %d, want 12 (%q)", len(got), got)
	}
	if got[len(got)-3:] != "log" {
		t.Fatalf("truncateMiddle should keep the end, got %q", got)
	}
}

func TestClassifyFetchError(t *testing.T) {
	cases := map[string]error{
		"INVALID LEVEL":  logentry.ErrInvalidLevel,
		"SERVER OFFLINE": errString("dial tcp: connection refused"),
		"TIMEOUT":        errString("context deadline exceeded"),
		"ERROR":          errString("boom"),
	}
	for want, err := range cases {
		if got := classifyFetchError(err); got != want {
			t.Fatalf("classifyFetchError(%v) = %q, want %q", err, got, want)
		}
	}
	if classifyFetchError(nil) != "" {
		t.Fatalf("nil error should classify as empty")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
