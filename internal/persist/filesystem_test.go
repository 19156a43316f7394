package persist_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jominki354/maulwurf/internal/config"
	"github.com/jominki354/maulwurf/internal/persist"
	"github.com/jominki354/maulwurf/internal/timeline"
)

func TestFileSystemPersister_RoundTrip(t *testing.T) {
	base := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	t.Run("persists and reloads the collection", func(t *testing.T) {
		p, err := persist.NewFileSystemPersister(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileSystemPersister() error = %v", err)
		}

		snaps := []timeline.Snapshot{
			{
				ID:        1,
				Timestamp: base,
				TabID:     "tab-1",
				Content:   "G0 X0",
				FileName:  "part.nc",
				FilePath:  "/programs/part.nc",
				Type:      timeline.TypeOpen,
			},
			{
				ID:              2,
				Timestamp:       base.Add(time.Second),
				TabID:           "tab-1",
				Content:         "G0 X5",
				PreviousContent: "G0 X0",
				FileName:        "part.nc",
				Type:            timeline.TypeAuto,
				CursorPosition:  &timeline.CursorPosition{LineNumber: 1, Column: 6},
				ScrollPosition:  &timeline.ScrollPosition{ScrollTop: 42},
				Selections:      []timeline.SelectionRange{{StartLineNumber: 1, StartColumn: 1, EndLineNumber: 1, EndColumn: 3}},
				Tags:            []string{"imported"},
			},
		}

		if err := p.Save(snaps); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		loaded, err := p.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(loaded) != 2 {
			t.Fatalf("Load() len = %d, want 2", len(loaded))
		}

		got := loaded[1]
		if got.ID != 2 || got.TabID != "tab-1" || got.Type != timeline.TypeAuto {
			t.Errorf("loaded snapshot = %+v", got)
		}
		if got.PreviousContent != "G0 X0" {
			t.Errorf("PreviousContent = %q, want %q", got.PreviousContent, "G0 X0")
		}
		if got.CursorPosition == nil || got.CursorPosition.Column != 6 {
			t.Errorf("CursorPosition = %+v, want column 6", got.CursorPosition)
		}
		if !got.Timestamp.Equal(base.Add(time.Second)) {
			t.Errorf("Timestamp = %v", got.Timestamp)
		}
		if !got.HasTag("imported") {
			t.Error("tag lost in round trip")
		}
	})

	t.Run("optional fields stay absent in the file", func(t *testing.T) {
		dir := t.TempDir()
		p, err := persist.NewFileSystemPersister(dir)
		if err != nil {
			t.Fatalf("NewFileSystemPersister() error = %v", err)
		}

		if err := p.Save([]timeline.Snapshot{{ID: 1, TabID: "tab-1", Type: timeline.TypeManual}}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		data, err := os.ReadFile(p.Path())
		if err != nil {
			t.Fatalf("reading snapshots file: %v", err)
		}
		for _, key := range []string{"previousContent", "cursorPosition", "scrollPosition", "selections", "tags"} {
			if bytes.Contains(data, []byte(key)) {
				t.Errorf("empty optional field %q serialized", key)
			}
		}
	})

	t.Run("missing file loads as empty", func(t *testing.T) {
		p, err := persist.NewFileSystemPersister(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileSystemPersister() error = %v", err)
		}

		loaded, err := p.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(loaded) != 0 {
			t.Errorf("Load() len = %d, want 0", len(loaded))
		}
	})

	t.Run("nil collection saves as empty array", func(t *testing.T) {
		p, err := persist.NewFileSystemPersister(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileSystemPersister() error = %v", err)
		}

		if err := p.Save(nil); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		loaded, err := p.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(loaded) != 0 {
			t.Errorf("Load() len = %d, want 0", len(loaded))
		}
	})

	t.Run("save leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		p, err := persist.NewFileSystemPersister(dir)
		if err != nil {
			t.Fatalf("NewFileSystemPersister() error = %v", err)
		}

		if err := p.Save([]timeline.Snapshot{{ID: 1, TabID: "tab-1", Type: timeline.TypeManual}}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("reading dir: %v", err)
		}
		if len(entries) != 1 || entries[0].Name() != "snapshots.json" {
			t.Errorf("dir entries = %v, want only snapshots.json", entries)
		}
	})
}

func TestNewPersisterFromConfig(t *testing.T) {
	t.Run("filesystem requires a dir", func(t *testing.T) {
		_, err := persist.NewPersisterFromConfig(config.PersistenceConfig{Type: "filesystem"})
		if err == nil {
			t.Error("NewPersisterFromConfig() error = nil, want missing dir error")
		}
	})

	t.Run("creates filesystem persister", func(t *testing.T) {
		p, err := persist.NewPersisterFromConfig(config.PersistenceConfig{
			Type: "filesystem",
			Dir:  filepath.Join(t.TempDir(), "snaps"),
		})
		if err != nil {
			t.Fatalf("NewPersisterFromConfig() error = %v", err)
		}
		if _, ok := p.(*persist.FileSystemPersister); !ok {
			t.Errorf("persister type = %T, want *FileSystemPersister", p)
		}
	})

	t.Run("creates memory persister", func(t *testing.T) {
		p, err := persist.NewPersisterFromConfig(config.PersistenceConfig{Type: "memory"})
		if err != nil {
			t.Fatalf("NewPersisterFromConfig() error = %v", err)
		}
		if _, ok := p.(*persist.MemoryPersister); !ok {
			t.Errorf("persister type = %T, want *MemoryPersister", p)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := persist.NewPersisterFromConfig(config.PersistenceConfig{Type: "s3"})
		if err == nil {
			t.Error("NewPersisterFromConfig() error = nil, want unknown type error")
		}
	})
}
