package logentry

import (
	"testing"
	"time"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		wantTime      string
		wantLevel     string
		wantComponent string
		wantMessage   string
	}{
		{
			name:          "iso timestamp",
			line:          "[2016-10-18T17:04:49.713498Z] NIO [INFO] [service.Router] routed signal",
			wantTime:      "2016-10-18T17:04:49.713498Z",
			wantLevel:     "INFO",
			wantComponent: "service.Router",
			wantMessage:   "routed signal",
		},
		{
			name:          "iso timestamp with millis",
			line:          "[2016-10-18T17:04:49.713Z] NIO [ERROR] [core] boom",
			wantTime:      "2016-10-18T17:04:49.713Z",
			wantLevel:     "ERROR",
			wantComponent: "core",
			wantMessage:   "boom",
		},
		{
			name:          "legacy timestamp",
			line:          "[2016-10-18 17:04:49.713498] NIO [WARNING] [core] slow",
			wantTime:      "2016-10-18 17:04:49.713498",
			wantLevel:     "WARNING",
			wantComponent: "core",
			wantMessage:   "slow",
		},
		{
			name:          "message keeps brackets",
			line:          "[2016-10-18T17:04:49.713498Z] NIO [DEBUG] [core] got [1, 2]",
			wantTime:      "2016-10-18T17:04:49.713498Z",
			wantLevel:     "DEBUG",
			wantComponent: "core",
			wantMessage:   "got [1, 2]",
		},
		{
			name:          "empty message",
			line:          "[2016-10-18T17:04:49.713498Z] NIO [DEBUG] [core]",
			wantTime:      "2016-10-18T17:04:49.713498Z",
			wantLevel:     "DEBUG",
			wantComponent: "core",
			wantMessage:   "",
		},
		{
			name:          "trailing newline stripped",
			line:          "[2016-10-18T17:04:49.713498Z] NIO [INFO] [core] done\r\n",
			wantTime:      "2016-10-18T17:04:49.713498Z",
			wantLevel:     "INFO",
			wantComponent: "core",
			wantMessage:   "done",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRow(tt.line)
			if got.IsContinuation() {
				t.Fatalf("ParseRow(%q) returned a continuation", tt.line)
			}
			if got.Time != tt.wantTime || got.Level != tt.wantLevel ||
				got.Component != tt.wantComponent || got.Message != tt.wantMessage {
				t.Errorf("ParseRow() = %+v, want time=%q level=%q component=%q msg=%q",
					got, tt.wantTime, tt.wantLevel, tt.wantComponent, tt.wantMessage)
			}
			if got.Instant().IsZero() {
				t.Errorf("Instant() is zero for %q", tt.line)
			}
		})
	}
}

func TestParseRow_Continuations(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "traceback line", line: `  File "service.py", line 12, in start`},
		{name: "empty line", line: ""},
		{name: "bracket at start", line: "] NIO [INFO] [core] x"},
		{name: "one bracket", line: "[2016-10-18T17:04:49.713498Z] no level"},
		{name: "two brackets", line: "[2016-10-18T17:04:49.713498Z] NIO [INFO] no component"},
		{name: "bad timestamp", line: "[log time] NIO [DEBUG] [log component] log msg"},
		{name: "unknown level", line: "[2016-10-18T17:04:49.713498Z] NIO [LOUD] [core] msg"},
		{name: "lower case level", line: "[2016-10-18T17:04:49.713498Z] NIO [info] [core] msg"},
		{name: "short separator", line: "[2016-10-18T17:04:49.713498Z][INFO] [core] msg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRow(tt.line)
			if !got.IsContinuation() {
				t.Fatalf("ParseRow(%q) = %+v, want continuation", tt.line, got)
			}
			if got.Message != tt.line {
				t.Errorf("Message = %q, want raw line %q", got.Message, tt.line)
			}
			if got.Time != "" || got.Level != "" || got.Component != "" {
				t.Errorf("continuation carries fields: %+v", got)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2016, 10, 18, 17, 4, 49, 713498000, time.UTC)
	for _, s := range []string{"2016-10-18T17:04:49.713498Z", "2016-10-18 17:04:49.713498"} {
		got, ok := ParseTimestamp(s)
		if !ok {
			t.Fatalf("ParseTimestamp(%q) failed", s)
		}
		if !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", s, got, want)
		}
	}
	for _, s := range []string{"", "yesterday", "2016-10-18", "2016/10/18 17:04:49"} {
		if _, ok := ParseTimestamp(s); ok {
			t.Errorf("ParseTimestamp(%q) succeeded, want failure", s)
		}
	}
}

func TestCompare_MixedLayouts(t *testing.T) {
	// Lexical order would put the legacy layout first (' ' < 'T').
	iso := ParseRow("[2016-10-18T17:00:00.000000Z] NIO [INFO] [c] a")
	legacy := ParseRow("[2016-10-18 18:00:00.000000] NIO [INFO] [c] b")
	if Compare(iso, legacy) >= 0 {
		t.Fatalf("Compare(iso 17:00, legacy 18:00) >= 0")
	}
	if Compare(legacy, iso) <= 0 {
		t.Fatalf("Compare(legacy 18:00, iso 17:00) <= 0")
	}
	if Compare(iso, iso) != 0 {
		t.Fatalf("Compare(iso, iso) != 0")
	}
}

func TestCompare_FallsBackToText(t *testing.T) {
	a := Entry{Time: "1"}
	b := Entry{Time: "2"}
	if Compare(a, b) >= 0 || Compare(b, a) <= 0 {
		t.Fatalf("text comparison not applied for unparseable times")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "", want: LevelNotSet},
		{in: "debug", want: LevelDebug},
		{in: " INFO ", want: LevelInfo},
		{in: "warn", want: LevelWarning},
		{in: "WARNING", want: LevelWarning},
		{in: "Critical", want: LevelCritical},
		{in: "verbose", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseLevel(%q) returned nil error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelString(t *testing.T) {
	if got := LevelWarning.String(); got != "WARNING" {
		t.Fatalf("LevelWarning.String() = %q", got)
	}
	if got := Level(7).String(); got != "Level(7)" {
		t.Fatalf("Level(7).String() = %q", got)
	}
}
