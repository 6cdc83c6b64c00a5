package logentry

import (
	"strings"
	"time"
)

// Timestamp layouts written in the first bracketed field.
const (
	TimeLayout       = "2006-01-02T15:04:05.000000Z"
	LegacyTimeLayout = "2006-01-02 15:04:05.000000"
)

// Parsing drops the fraction from the layouts so any width is accepted.
var parseLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// Offsets from each closing bracket to the start of the next field, fixed
// by the writer's "] NIO [" and "] [" separators.
const (
	levelOffset     = 7
	componentOffset = 3
	messageOffset   = 2
)

// ParseTimestamp parses either accepted layout. The second result is false
// when neither matches.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseRow parses one physical line. A line that does not carry three
// closing brackets, a valid timestamp and a known level comes back as a
// continuation entry whose Message is the whole line.
func ParseRow(line string) Entry {
	line = strings.TrimRight(line, "\r\n")
	fragment := Entry{Message: line}

	cb1 := strings.IndexByte(line, ']')
	if cb1 < 1 {
		return fragment
	}
	cb2 := indexFrom(line, cb1+1)
	if cb2 < 0 {
		return fragment
	}
	cb3 := indexFrom(line, cb2+1)
	if cb3 < 0 {
		return fragment
	}

	ts := line[1:cb1]
	at, ok := ParseTimestamp(ts)
	if !ok {
		return fragment
	}
	level := between(line, cb1+levelOffset, cb2)
	if _, ok := lookupLevel(level); !ok {
		return fragment
	}

	msg := ""
	if start := cb3 + messageOffset; start < len(line) {
		msg = line[start:]
	}
	return Entry{
		Time:      ts,
		Level:     level,
		Component: between(line, cb2+componentOffset, cb3),
		Message:   msg,
		at:        at,
	}
}

func indexFrom(s string, from int) int {
	if from >= len(s) {
		return -1
	}
	idx := strings.IndexByte(s[from:], ']')
	if idx < 0 {
		return -1
	}
	return from + idx
}

// between slices s[start:end], yielding "" when the bounds cross.
func between(s string, start, end int) string {
	if start >= end || start >= len(s) {
		return ""
	}
	return s[start:end]
}
