package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jominki354/maulwurf/internal/timeline"
)

// snapshotsFileName is the single JSON document holding the whole
// collection, under the app-local snapshots directory.
const snapshotsFileName = "snapshots.json"

// FileSystemPersister stores the snapshot collection as one JSON document.
// Every Save rewrites the document in full via a temp file and an atomic
// rename, so a crash mid-flush leaves the previous document intact.
type FileSystemPersister struct {
	dir  string
	path string
}

// NewFileSystemPersister creates a persister rooted at the given directory,
// creating it if needed.
func NewFileSystemPersister(dir string) (*FileSystemPersister, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshots directory: %w", err)
	}
	return &FileSystemPersister{
		dir:  dir,
		path: filepath.Join(dir, snapshotsFileName),
	}, nil
}

// Path returns the location of the persisted document.
func (p *FileSystemPersister) Path() string { return p.path }

// Save replaces the persisted collection.
func (p *FileSystemPersister) Save(snapshots []timeline.Snapshot) error {
	if snapshots == nil {
		snapshots = []timeline.Snapshot{}
	}
	data, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("encoding snapshots: %w", err)
	}

	tmpFile, err := os.CreateTemp(p.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write snapshots: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, p.path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Load reads the persisted collection. A missing or empty document yields
// an empty collection; optional snapshot fields absent from older documents
// decode to their zero values.
func (p *FileSystemPersister) Load() ([]timeline.Snapshot, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshots file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var snapshots []timeline.Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("decoding snapshots file: %w", err)
	}
	return snapshots, nil
}

// Compile-time check that FileSystemPersister implements timeline.Persister
var _ timeline.Persister = (*FileSystemPersister)(nil)
