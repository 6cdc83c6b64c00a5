// Package registry tracks the process's named loggers and lets their
// levels be read and changed at runtime.
package registry

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
)

var (
	// ErrInvalidLevel reports an empty or unrecognized level name.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrUnknownLogger reports a logger name that was never registered.
	ErrUnknownLogger = errors.New("logger does not exist")
)

// LoggerInfo describes one registered logger.
type LoggerInfo struct {
	Name  string `json:"name"`
	Level string `json:"level,omitempty"`
}

// Registry lists loggers and changes their levels.
type Registry interface {
	List(withLevel bool) []LoggerInfo
	SetLevel(name, level string) error
}

var _ Registry = (*Hclog)(nil)

// Hclog is a Registry over hclog loggers with independent levels.
type Hclog struct {
	mu      sync.Mutex
	root    hclog.Logger
	loggers map[string]hclog.Logger
}

// New creates a registry whose loggers write to w at the given level name.
// An unknown level falls back to INFO.
func New(w io.Writer, level string) *Hclog {
	lvl, err := toHclog(level)
	if err != nil {
		lvl = hclog.Info
	}
	root := hclog.New(&hclog.LoggerOptions{
		Name:              "logdesk",
		Level:             lvl,
		Output:            w,
		IndependentLevels: true,
	})
	return &Hclog{root: root, loggers: make(map[string]hclog.Logger)}
}

// Logger returns the logger registered under name, creating it on first
// use.
func (r *Hclog) Logger(name string) hclog.Logger {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loggers[name]; ok {
		return l
	}
	l := r.root.Named(name)
	r.loggers[name] = l
	return l
}

// List returns registered loggers sorted by name.
func (r *Hclog) List(withLevel bool) []LoggerInfo {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := slices.Sorted(maps.Keys(r.loggers))
	out := make([]LoggerInfo, 0, len(names))
	for _, name := range names {
		info := LoggerInfo{Name: name}
		if withLevel {
			info.Level = levelName(r.loggers[name].GetLevel())
		}
		out = append(out, info)
	}
	return out
}

// SetLevel changes one logger's level, or every logger's when name is
// empty. Nothing is changed when an error is returned.
func (r *Hclog) SetLevel(name, level string) error {
	lvl, err := toHclog(level)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		for _, l := range r.loggers {
			l.SetLevel(lvl)
		}
		return nil
	}
	l, ok := r.loggers[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLogger, name)
	}
	l.SetLevel(lvl)
	return nil
}

func toHclog(level string) (hclog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "NOTSET", "TRACE":
		return hclog.Trace, nil
	case "DEBUG":
		return hclog.Debug, nil
	case "INFO":
		return hclog.Info, nil
	case "WARN", "WARNING":
		return hclog.Warn, nil
	case "ERROR", "CRITICAL":
		return hclog.Error, nil
	case "OFF":
		return hclog.Off, nil
	case "":
		return hclog.NoLevel, ErrInvalidLevel
	default:
		return hclog.NoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}

func levelName(l hclog.Level) string {
	switch l {
	case hclog.Trace:
		return "TRACE"
	case hclog.Debug:
		return "DEBUG"
	case hclog.Info:
		return "INFO"
	case hclog.Warn:
		return "WARNING"
	case hclog.Error:
		return "ERROR"
	case hclog.Off:
		return "OFF"
	default:
		return "NOTSET"
	}
}
