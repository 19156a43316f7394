package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		AppID:   "maulwurf",
		BaseDir: "/home/user/.local/share/maulwurf",
		LogDir:  "/home/user/.local/share/maulwurf/log",
		Timeline: TimelineConfig{
			MinAutoIntervalSecs: 120,
			DebounceMillis:      500,
			MaxAutoSnapshots:    25,
		},
		Persistence: PersistenceConfig{Type: "filesystem", Dir: "/home/user/.local/share/maulwurf/snapshots"},
		Database:    DatabaseConfig{Type: "sqlite", DataDir: "/home/user/.local/share/maulwurf/db"},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  "/home/user/.local/share/maulwurf/keys/maulwurf.pub",
			PrivateKeyPath: "/home/user/.local/share/maulwurf/keys/maulwurf.key",
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.AppID != original.AppID {
		t.Errorf("AppID = %q, want %q", got.AppID, original.AppID)
	}
	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.Timeline.MinAutoIntervalSecs != 120 {
		t.Errorf("Timeline.MinAutoIntervalSecs = %d, want 120", got.Timeline.MinAutoIntervalSecs)
	}
	if got.Timeline.DebounceMillis != 500 {
		t.Errorf("Timeline.DebounceMillis = %d, want 500", got.Timeline.DebounceMillis)
	}
	if got.Timeline.MaxAutoSnapshots != 25 {
		t.Errorf("Timeline.MaxAutoSnapshots = %d, want 25", got.Timeline.MaxAutoSnapshots)
	}
	if got.Persistence.Type != "filesystem" {
		t.Errorf("Persistence.Type = %q, want filesystem", got.Persistence.Type)
	}
	if got.Persistence.Dir != original.Persistence.Dir {
		t.Errorf("Persistence.Dir = %q, want %q", got.Persistence.Dir, original.Persistence.Dir)
	}
	if got.Database.Type != "sqlite" {
		t.Errorf("Database.Type = %q, want sqlite", got.Database.Type)
	}
	if got.Encryption.PublicKeyPath != original.Encryption.PublicKeyPath {
		t.Errorf("Encryption.PublicKeyPath = %q, want %q", got.Encryption.PublicKeyPath, original.Encryption.PublicKeyPath)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("maulwurf", "/data/maulwurf")

	if cfg.AppID != "maulwurf" {
		t.Errorf("AppID = %q, want maulwurf", cfg.AppID)
	}
	if cfg.BaseDir != "/data/maulwurf" {
		t.Errorf("BaseDir = %q, want /data/maulwurf", cfg.BaseDir)
	}
	if cfg.LogDir != "/data/maulwurf/log" {
		t.Errorf("LogDir = %q, want /data/maulwurf/log", cfg.LogDir)
	}
	if cfg.Timeline.MinAutoIntervalSecs != DefaultMinAutoIntervalSecs {
		t.Errorf("MinAutoIntervalSecs = %d, want %d", cfg.Timeline.MinAutoIntervalSecs, DefaultMinAutoIntervalSecs)
	}
	if cfg.Timeline.DebounceMillis != DefaultDebounceMillis {
		t.Errorf("DebounceMillis = %d, want %d", cfg.Timeline.DebounceMillis, DefaultDebounceMillis)
	}
	if cfg.Timeline.MaxAutoSnapshots != DefaultMaxAutoSnapshots {
		t.Errorf("MaxAutoSnapshots = %d, want %d", cfg.Timeline.MaxAutoSnapshots, DefaultMaxAutoSnapshots)
	}
	if cfg.Persistence.Dir != "/data/maulwurf/snapshots" {
		t.Errorf("Persistence.Dir = %q, want /data/maulwurf/snapshots", cfg.Persistence.Dir)
	}
	if cfg.Encryption.PublicKeyPath != "/data/maulwurf/keys/maulwurf.pub" {
		t.Errorf("Encryption.PublicKeyPath = %q", cfg.Encryption.PublicKeyPath)
	}
}

func TestInit(t *testing.T) {
	t.Run("creates a new config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "conf", "maulwurf.toml")
		cfg := NewConfig("maulwurf", "/data/maulwurf")

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.AppID != "maulwurf" {
			t.Errorf("AppID = %q, want maulwurf", got.AppID)
		}
	})

	t.Run("refuses to overwrite an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "maulwurf.toml")
		if err := os.WriteFile(path, []byte("app_id = \"existing\"\n"), 0644); err != nil {
			t.Fatalf("writing existing file: %v", err)
		}

		if err := Init(path, NewConfig("maulwurf", "/data")); err == nil {
			t.Error("Init() error = nil, want already-exists error")
		}
	})
}

func TestReadFromFile_Missing(t *testing.T) {
	_, err := ReadFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Error("ReadFromFile() error = nil, want open error")
	}
}
