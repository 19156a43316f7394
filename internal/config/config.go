package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for maulwurf.
type Config struct {
	AppID       string            `toml:"app_id"`
	BaseDir     string            `toml:"base_dir"`
	LogDir      string            `toml:"log_dir"`
	Timeline    TimelineConfig    `toml:"timeline"`
	Persistence PersistenceConfig `toml:"persistence"`
	Database    DatabaseConfig    `toml:"database"`
	Encryption  EncryptionConfig  `toml:"encryption"`
}

// TimelineConfig holds the snapshot policy constants.
type TimelineConfig struct {
	// MinAutoIntervalSecs is the per-tab cool-down between AUTO snapshots.
	MinAutoIntervalSecs int `toml:"min_auto_interval_secs"`
	// DebounceMillis is the quiet period after the last keystroke before an
	// AUTO capture is attempted.
	DebounceMillis int `toml:"debounce_millis"`
	// MaxAutoSnapshots is the global retention cap enforced by cleanup.
	MaxAutoSnapshots int `toml:"max_auto_snapshots"`
}

// PersistenceConfig selects where the snapshot collection is persisted.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type PersistenceConfig struct {
	Type string `toml:"type"`          // "filesystem" or "memory"
	Dir  string `toml:"dir,omitempty"` // only used for type=filesystem
}

// DatabaseConfig selects the backing store for the operation log.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// EncryptionConfig holds paths to the age key pair used for encrypted
// snapshot exports.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// Default policy values, matching the observed editor behavior.
const (
	DefaultMinAutoIntervalSecs = 180
	DefaultDebounceMillis      = 1000
	DefaultMaxAutoSnapshots    = 50
)

// NewConfig creates a new Config with the provided values and default paths.
func NewConfig(appID, baseDir string) *Config {
	return &Config{
		AppID:   appID,
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Timeline: TimelineConfig{
			MinAutoIntervalSecs: DefaultMinAutoIntervalSecs,
			DebounceMillis:      DefaultDebounceMillis,
			MaxAutoSnapshots:    DefaultMaxAutoSnapshots,
		},
		Persistence: PersistenceConfig{
			Type: "filesystem",
			Dir:  filepath.Join(baseDir, "snapshots"),
		},
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "maulwurf.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "maulwurf.key"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
