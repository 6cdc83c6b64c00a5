package logentry

import (
	"strings"
	"time"
)

// Entry is one parsed log record. Empty Time, Level and Component mean the
// field was absent, which is how continuation fragments are represented.
type Entry struct {
	Time      string `json:"time"`
	Level     string `json:"level"`
	Component string `json:"component"`
	Message   string `json:"msg"`

	at time.Time
}

// IsContinuation reports whether the entry is a fragment that belongs to
// the record written above it.
func (e Entry) IsContinuation() bool {
	return e.Time == "" || e.Level == ""
}

// Instant returns the parsed timestamp, parsing Time on demand for entries
// that were decoded rather than read from disk.
func (e Entry) Instant() time.Time {
	if !e.at.IsZero() {
		return e.at
	}
	t, _ := ParseTimestamp(e.Time)
	return t
}

// Severity returns the entry's level rank. Unknown levels rank as NOTSET.
func (e Entry) Severity() Level {
	l, _ := lookupLevel(e.Level)
	return l
}

// Compare orders entries by time alone. Parsed instants are compared when
// both sides parse; otherwise the raw timestamp text is compared.
func Compare(a, b Entry) int {
	ta, tb := a.Instant(), b.Instant()
	if !ta.IsZero() && !tb.IsZero() {
		return ta.Compare(tb)
	}
	return strings.Compare(a.Time, b.Time)
}

// attach appends continuation text gathered while scanning bottom-up. The
// fragments arrive newest-first and are restored to file order.
func (e *Entry) attach(pending []string) {
	if len(pending) == 0 {
		return
	}
	var b strings.Builder
	b.WriteString(e.Message)
	for i := len(pending) - 1; i >= 0; i-- {
		b.WriteByte('\n')
		b.WriteString(pending[i])
	}
	e.Message = b.String()
}
