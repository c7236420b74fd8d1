package app

import (
	"fmt"
	"os"
	"path/filepath"

	"pwsafe/internal/config"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - PWSAFE_CONFIG_PATH: config file location (default: ~/.config/pwsafe.toml)
//   - PWSAFE_HOME: base directory for pwsafe data (default: ~/.local/share/pwsafe)
//   - PWSAFE_SAFE: safe file location (default: <base_dir>/pwd.sh.safe)
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
		"safe_path":   getSafePath(baseDir),
	}, nil
}

// getConfigPath returns the config file path, checking PWSAFE_CONFIG_PATH
// first, then falling back to the default ~/.config/pwsafe.toml.
func getConfigPath() (string, error) {
	if path := os.Getenv("PWSAFE_CONFIG_PATH"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "pwsafe.toml"), nil
}

// getBaseDir returns the base directory for pwsafe data, checking PWSAFE_HOME
// first, then falling back to the XDG default ~/.local/share/pwsafe.
func getBaseDir() (string, error) {
	if path := os.Getenv("PWSAFE_HOME"); path != "" {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "pwsafe"), nil
}

// getSafePath returns the safe file path, checking PWSAFE_SAFE first.
func getSafePath(baseDir string) string {
	if path := os.Getenv("PWSAFE_SAFE"); path != "" {
		return path
	}
	return filepath.Join(baseDir, config.DefaultSafeFile)
}
