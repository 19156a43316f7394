package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/jominki354/maulwurf/internal/config"
)

func TestConfigInit_GeneratesUUIDAppID(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "maulwurf.toml")
	t.Setenv("MAULWURF_CONFIG_PATH", configPath)
	t.Setenv("MAULWURF_HOME", dir)

	rootCmd.SetArgs([]string{"config", "init"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	cfg, err := config.ReadFromFile(configPath)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if _, err := uuid.Parse(cfg.AppID); err != nil {
		t.Errorf("app_id %q is not a uuid: %v", cfg.AppID, err)
	}
}

func TestBrowse(t *testing.T) {
	t.Run("lists an existing directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, "programs"), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		for _, name := range []string{"part.nc", "notes.txt"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
				t.Fatalf("writing %s: %v", name, err)
			}
		}

		rootCmd.SetArgs([]string{"browse", dir})
		if err := rootCmd.Execute(); err != nil {
			t.Errorf("browse failed: %v", err)
		}
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		rootCmd.SetArgs([]string{"browse", filepath.Join(t.TempDir(), "gone")})
		if err := rootCmd.Execute(); err == nil {
			t.Error("browse of a missing directory should return an error")
		}
	})
}
