package fileaccess_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jominki354/maulwurf/internal/fileaccess"
)

func TestOSFileAccess_ReadWrite(t *testing.T) {
	t.Run("round-trips file content", func(t *testing.T) {
		fa := fileaccess.NewOSFileAccess()
		path := filepath.Join(t.TempDir(), "part.nc")

		if err := fa.WriteFile(path, "G0 X0\nM30"); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		got, err := fa.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if got != "G0 X0\nM30" {
			t.Errorf("ReadFile() = %q", got)
		}
	})

	t.Run("write creates missing directories", func(t *testing.T) {
		fa := fileaccess.NewOSFileAccess()
		path := filepath.Join(t.TempDir(), "nested", "deep", "part.nc")

		if err := fa.WriteFile(path, "content"); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file not created: %v", err)
		}
	})

	t.Run("write replaces existing content without leftovers", func(t *testing.T) {
		fa := fileaccess.NewOSFileAccess()
		dir := t.TempDir()
		path := filepath.Join(dir, "part.nc")

		if err := fa.WriteFile(path, "first"); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		if err := fa.WriteFile(path, "second"); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}

		got, err := fa.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if got != "second" {
			t.Errorf("ReadFile() = %q, want second", got)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("reading dir: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("dir has %d entries, want 1 (no temp files)", len(entries))
		}
	})

	t.Run("reading a missing file is an error", func(t *testing.T) {
		fa := fileaccess.NewOSFileAccess()
		if _, err := fa.ReadFile(filepath.Join(t.TempDir(), "missing.nc")); err == nil {
			t.Error("ReadFile() error = nil, want not-found error")
		}
	})
}

func TestOSFileAccess_ListDir(t *testing.T) {
	fa := fileaccess.NewOSFileAccess()
	dir := t.TempDir()

	if err := os.Mkdir(filepath.Join(dir, "zsubdir"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"b.nc", "a.nc"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	entries, err := fa.ListDir(dir)
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("ListDir() len = %d, want 3", len(entries))
	}

	// Directories first, then files sorted by name.
	if !entries[0].IsDir || entries[0].Name != "zsubdir" {
		t.Errorf("first entry = %+v, want the directory", entries[0])
	}
	if entries[1].Name != "a.nc" || entries[2].Name != "b.nc" {
		t.Errorf("file order = [%s %s], want [a.nc b.nc]", entries[1].Name, entries[2].Name)
	}
}
