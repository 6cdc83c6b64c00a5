package logentry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/five82/logdesk/internal/logtail"
)

// LineReader yields physical lines newest-first and returns io.EOF once
// the start of the input is reached.
type LineReader interface {
	Next() (string, error)
}

// Filter selects entries from a source.
type Filter struct {
	Max       int    // accepted entries to keep; zero or negative is unbounded
	Threshold Level  // minimum severity; LevelNotSet admits everything
	Component string // exact component match when non-empty
}

// Unbounded reports whether Max imposes no cap.
func (f Filter) Unbounded() bool {
	return f.Max <= 0
}

func (f Filter) accepts(e Entry) bool {
	if e.Severity() < f.Threshold {
		return false
	}
	return f.Component == "" || e.Component == f.Component
}

// Read returns the newest entries in the file at path that pass f, oldest
// first. Open failures are returned unchanged so callers can test for
// fs.ErrNotExist.
func Read(ctx context.Context, path string, f Filter) ([]Entry, error) {
	r, err := logtail.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	entries, err := Collect(ctx, r, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return entries, nil
}

// Collect drives lines through ParseRow and reassembles continuation
// lines. Continuations gathered while scanning toward a record that fails
// the filter are discarded with it.
func Collect(ctx context.Context, lines LineReader, f Filter) ([]Entry, error) {
	var (
		entries []Entry
		pending []string
	)
	for f.Unbounded() || len(entries) < f.Max {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line, err := lines.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		entry := ParseRow(line)
		if entry.IsContinuation() {
			pending = append(pending, entry.Message)
			continue
		}
		if !f.accepts(entry) {
			pending = pending[:0]
			continue
		}
		entry.attach(pending)
		pending = pending[:0]
		entries = append(entries, entry)
	}

	slices.Reverse(entries)
	return entries, nil
}
