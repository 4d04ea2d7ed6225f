package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - VFS_CONFIG_PATH: config file location (default: ~/.config/vfs.toml)
//   - VFS_HOME: base directory for vfs data (default: ~/.local/share/vfs)
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

// getConfigPath returns the config file path, checking VFS_CONFIG_PATH env var
// first, then falling back to the default ~/.config/vfs.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("VFS_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "vfs.toml"), nil
}

// getBaseDir returns the base directory for vfs data, checking VFS_HOME env
// var first, then falling back to the XDG default ~/.local/share/vfs.
func getBaseDir() (string, error) {
	if path := os.Getenv("VFS_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "vfs"), nil
}
