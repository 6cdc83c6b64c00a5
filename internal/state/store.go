package state

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/logdesk/internal/catalog"
	"github.com/five82/logdesk/internal/logentry"
)

// Snapshot represents the latest data available to the viewer.
type Snapshot struct {
	Query               catalog.Query
	Entries             []logentry.Entry
	Sources             []string
	HasEntries          bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed fetches
}

// IsOffline returns true when the entry source has failed repeatedly.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot with the result of running q. When err
// is non-nil the previous data is kept but the error is recorded for visibility.
func (s *Store) Update(q catalog.Query, entries []logentry.Entry, sources []string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Query = q
	s.snapshot.Entries = slices.Clone(entries)
	if sources != nil {
		s.snapshot.Sources = slices.Clone(sources)
	}
	s.snapshot.HasEntries = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Entries = slices.Clone(s.snapshot.Entries)
	snap.Sources = slices.Clone(s.snapshot.Sources)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
