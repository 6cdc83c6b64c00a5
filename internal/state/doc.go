// Package state provides thread-safe state management for the logdesk viewer.
//
// # Overview
//
// The Store holds the result of the most recent entry fetch so the fetch
// command that produced it and the bubbletea model that renders it never
// share mutable slices.
//
// # Update Semantics
//
//	// Success case: replace entries, query and timestamps
//	store.Update(q, entries, sources, nil)
//
//	// Error case: keep old data, record error
//	store.Update(q, nil, nil, err)
//
// A nil sources slice on success keeps the previously stored list, so a
// refresh that only re-reads entries does not blank the source picker.
//
// # Defensive Copying
//
// Both Update and Snapshot clone the entry and source slices. Error values
// are wrapped on the way out so callers can use errors.Is but never hold the
// stored instance.
//
// # Testing Considerations
//
// The Store is safe to construct with zero value:
//
//	store := &state.Store{}
package state
