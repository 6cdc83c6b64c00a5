package logentry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLevel reports a severity name outside the known table.
var ErrInvalidLevel = errors.New("invalid level")

// Level is a severity rank. Higher values are more severe.
type Level int

const (
	LevelNotSet   Level = 0
	LevelTrace    Level = 5
	LevelDebug    Level = 10
	LevelInfo     Level = 20
	LevelWarning  Level = 30
	LevelError    Level = 40
	LevelCritical Level = 50
)

var levelNames = map[Level]string{
	LevelNotSet:   "NOTSET",
	LevelTrace:    "TRACE",
	LevelDebug:    "DEBUG",
	LevelInfo:     "INFO",
	LevelWarning:  "WARNING",
	LevelError:    "ERROR",
	LevelCritical: "CRITICAL",
}

var levelsByName = map[string]Level{
	"NOTSET":   LevelNotSet,
	"TRACE":    LevelTrace,
	"DEBUG":    LevelDebug,
	"INFO":     LevelInfo,
	"WARNING":  LevelWarning,
	"ERROR":    LevelError,
	"CRITICAL": LevelCritical,
}

// String returns the canonical upper-case name, or the numeric rank for
// values outside the table.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// LevelNames returns the known level names ordered by rank.
func LevelNames() []string {
	return []string{"NOTSET", "TRACE", "DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL"}
}

// lookupLevel matches a level field exactly as the log formatter writes it.
func lookupLevel(name string) (Level, bool) {
	l, ok := levelsByName[name]
	return l, ok
}

// ParseLevel resolves a user-supplied level name. Matching is
// case-insensitive and WARN is accepted for WARNING. An empty name yields
// LevelNotSet, which admits every entry.
func ParseLevel(name string) (Level, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(name))
	if trimmed == "" {
		return LevelNotSet, nil
	}
	if trimmed == "WARN" {
		return LevelWarning, nil
	}
	if l, ok := levelsByName[trimmed]; ok {
		return l, nil
	}
	return LevelNotSet, fmt.Errorf("%w: %q", ErrInvalidLevel, name)
}
