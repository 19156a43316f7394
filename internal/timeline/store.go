package timeline

import (
	"fmt"
	"sort"
	"sync"
)

// Store owns the authoritative in-memory snapshot collection. It exposes
// CRUD-level primitives only; admission policy is the caller's job.
//
// Every mutation schedules a persistence flush. Flushes run on a background
// goroutine through a single-slot channel: a flush that is superseded before
// it runs is silently dropped (last write wins, since each flush rewrites
// the full collection). A failed flush is logged and never rolls back the
// in-memory state, which stays authoritative for the session.
type Store struct {
	mu        sync.Mutex
	snapshots []Snapshot

	persister Persister
	logger    Logger

	flushCh chan []Snapshot
	done    chan struct{}
}

// NewStore creates a Store backed by the given persister and starts its
// background flusher. The caller must call Close when done.
func NewStore(persister Persister, logger Logger) *Store {
	if logger == nil {
		logger = NewNopLogger()
	}
	s := &Store{
		persister: persister,
		logger:    logger,
		flushCh:   make(chan []Snapshot, 1),
		done:      make(chan struct{}),
	}
	go s.runFlusher()
	return s
}

func (s *Store) runFlusher() {
	defer close(s.done)
	for snaps := range s.flushCh {
		if err := s.persister.Save(snaps); err != nil {
			s.logger.Error("snapshot flush failed", "error", err)
		}
	}
}

// Hydrate replaces the in-memory collection with the persisted one.
// Called once at startup, before any mutation. Returns the number of
// snapshots loaded.
func (s *Store) Hydrate() (int, error) {
	loaded, err := s.persister.Load()
	if err != nil {
		return 0, fmt.Errorf("loading snapshots: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = loaded
	return len(loaded), nil
}

// Append adds the snapshot to the end of the collection. It does not check
// for duplicates or time gating.
func (s *Store) Append(snap Snapshot) Snapshot {
	s.mu.Lock()
	s.snapshots = append(s.snapshots, snap)
	s.mu.Unlock()

	s.scheduleFlush()
	return snap
}

// DeleteAt removes the snapshot with the given id. Deleting an id that is
// not present is a no-op, not an error: the UI can hold stale ids between
// render and click.
func (s *Store) DeleteAt(id int64) {
	s.mu.Lock()
	removed := false
	for i, snap := range s.snapshots {
		if snap.ID == id {
			s.snapshots = append(s.snapshots[:i], s.snapshots[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.scheduleFlush()
	}
}

// ClearForTab removes all snapshots belonging to the given tab.
func (s *Store) ClearForTab(tabID string) {
	s.mu.Lock()
	kept := s.snapshots[:0]
	for _, snap := range s.snapshots {
		if snap.TabID != tabID {
			kept = append(kept, snap)
		}
	}
	s.snapshots = kept
	s.mu.Unlock()

	s.scheduleFlush()
}

// ClearAll empties the collection.
func (s *Store) ClearAll() {
	s.mu.Lock()
	s.snapshots = nil
	s.mu.Unlock()

	s.scheduleFlush()
}

// ListForTab returns the snapshots of one tab ordered by timestamp
// ascending. The insertion order breaks timestamp ties.
func (s *Store) ListForTab(tabID string) []Snapshot {
	s.mu.Lock()
	var out []Snapshot
	for _, snap := range s.snapshots {
		if snap.TabID == tabID {
			out = append(out, snap)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// MostRecentForTab returns the highest-timestamp snapshot for the tab.
func (s *Store) MostRecentForTab(tabID string) (Snapshot, bool) {
	list := s.ListForTab(tabID)
	if len(list) == 0 {
		return Snapshot{}, false
	}
	return list[len(list)-1], true
}

// LastAutoForTab returns the most recent AUTO snapshot for the tab.
// Used by the admission policy's cool-down check.
func (s *Store) LastAutoForTab(tabID string) (Snapshot, bool) {
	list := s.ListForTab(tabID)
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Type == TypeAuto {
			return list[i], true
		}
	}
	return Snapshot{}, false
}

// ByID returns the snapshot with the given id.
func (s *Store) ByID(id int64) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, snap := range s.snapshots {
		if snap.ID == id {
			return snap, true
		}
	}
	return Snapshot{}, false
}

// All returns a copy of the whole collection in storage order.
func (s *Store) All() []Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Snapshot(nil), s.snapshots...)
}

// Len returns the number of snapshots in the collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snapshots)
}

// scheduleFlush hands a copy of the collection to the background flusher.
// If a flush is already pending it is replaced, not queued.
func (s *Store) scheduleFlush() {
	cp := s.All()
	for {
		select {
		case s.flushCh <- cp:
			return
		default:
		}
		// Slot occupied: drop the superseded flush and retry.
		select {
		case <-s.flushCh:
		default:
		}
	}
}

// Flush writes the current collection synchronously. Used at shutdown and
// by callers that need the on-disk state to be current.
func (s *Store) Flush() error {
	if err := s.persister.Save(s.All()); err != nil {
		return fmt.Errorf("flushing snapshots: %w", err)
	}
	return nil
}

// Close performs a final synchronous flush and stops the background
// flusher. The store must not be used after Close.
func (s *Store) Close() error {
	err := s.Flush()
	close(s.flushCh)
	<-s.done
	return err
}
