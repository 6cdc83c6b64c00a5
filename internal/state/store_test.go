package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/logdesk/internal/catalog"
	"github.com/five82/logdesk/internal/logentry"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	q := catalog.Query{Source: "main", Count: 10}
	entries := []logentry.Entry{{Message: "one"}, {Message: "two"}}

	before := time.Now()
	s.Update(q, entries, []string{"main"}, nil)

	snap := s.Snapshot()
	if !snap.HasEntries || snap.Query != q {
		t.Fatalf("snapshot query = %#v, want %#v HasEntries=true", snap.Query, q)
	}
	if len(snap.Entries) != 2 || snap.Entries[0].Message != "one" {
		t.Fatalf("snapshot entries = %#v, want 2 items", snap.Entries)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Entries[0].Message = "changed"
	snap.Sources[0] = "changed"
	snap2 := s.Snapshot()
	if snap2.Entries[0].Message != "one" {
		t.Fatalf("Snapshot should clone entries; got %q want one", snap2.Entries[0].Message)
	}
	if snap2.Sources[0] != "main" {
		t.Fatalf("Snapshot should clone sources; got %q want main", snap2.Sources[0])
	}

	// Caller's slice should not alias the store either.
	entries[1].Message = "mutated"
	if s.Snapshot().Entries[1].Message != "two" {
		t.Fatalf("Update should clone entries")
	}
}

func TestStore_NilSourcesKeepPrevious(t *testing.T) {
	var s Store

	s.Update(catalog.Query{}, nil, []string{"a", "b"}, nil)
	s.Update(catalog.Query{Source: "a"}, []logentry.Entry{{Message: "x"}}, nil, nil)

	snap := s.Snapshot()
	if len(snap.Sources) != 2 {
		t.Fatalf("Sources = %v, want previous list kept", snap.Sources)
	}
	if snap.Query.Source != "a" {
		t.Fatalf("Query.Source = %q, want a", snap.Query.Source)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(catalog.Query{Source: "main"}, []logentry.Entry{{Message: "kept"}}, nil, nil)
	prev := s.Snapshot()

	before := time.Now()
	origErr := errors.New("boom")
	s.Update(catalog.Query{Source: "other"}, nil, nil, origErr)

	snap := s.Snapshot()
	if snap.Query != prev.Query {
		t.Fatalf("query changed on error: got %#v want %#v", snap.Query, prev.Query)
	}
	if len(snap.Entries) != 1 || snap.Entries[0].Message != "kept" {
		t.Fatalf("entries changed on error: got %#v want %#v", snap.Entries, prev.Entries)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError should wrap the original error")
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	// Initially zero failures
	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 0 failures")
	}

	s.Update(catalog.Query{}, nil, nil, errors.New("fail 1"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(catalog.Query{}, nil, nil, errors.New("fail 2"))
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	// Success resets counter
	s.Update(catalog.Query{}, nil, nil, nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", snap.ConsecutiveFailures)
	}
	if snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false after success")
	}
}
