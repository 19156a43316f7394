package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - MAULWURF_CONFIG_PATH: config file location (default: ~/.config/maulwurf.toml)
//   - MAULWURF_HOME: base directory for maulwurf data (default: ~/.local/share/maulwurf)
func GetDefaults() (map[string]string, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	baseDir, err := getBaseDir()
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

// getConfigPath returns the config file path, checking MAULWURF_CONFIG_PATH
// first, then falling back to the default ~/.config/maulwurf.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("MAULWURF_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "maulwurf.toml"), nil
}

// getBaseDir returns the base directory for maulwurf data, checking
// MAULWURF_HOME first, then falling back to the XDG default
// ~/.local/share/maulwurf.
func getBaseDir() (string, error) {
	if path := os.Getenv("MAULWURF_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "maulwurf"), nil
}
