package timeline

// Persister stores and reloads the full snapshot collection. Every flush
// rewrites the whole collection; there is no incremental format, so a flush
// that is superseded by a later one can be dropped without losing data.
type Persister interface {
	// Save replaces the persisted collection with the given snapshots.
	Save(snapshots []Snapshot) error

	// Load returns the persisted collection. A missing or empty backing
	// store is not an error; it yields an empty collection.
	Load() ([]Snapshot, error)
}
