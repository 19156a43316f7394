package persist

import (
	"sync"

	"github.com/jominki354/maulwurf/internal/timeline"
)

// MemoryPersister keeps the persisted collection in memory. Used by tests
// and by shells that run without a data directory.
type MemoryPersister struct {
	mu        sync.Mutex
	snapshots []timeline.Snapshot
	saves     int

	// SaveErr, when set, is returned by Save to simulate a flush failure.
	SaveErr error
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Save(snapshots []timeline.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.snapshots = append([]timeline.Snapshot(nil), snapshots...)
	p.saves++
	return nil
}

func (p *MemoryPersister) Load() ([]timeline.Snapshot, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]timeline.Snapshot(nil), p.snapshots...), nil
}

// Saved returns the last persisted collection.
func (p *MemoryPersister) Saved() []timeline.Snapshot {
	snaps, _ := p.Load()
	return snaps
}

// SaveCount returns how many successful saves have happened.
func (p *MemoryPersister) SaveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

var _ timeline.Persister = (*MemoryPersister)(nil)
