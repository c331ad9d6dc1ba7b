package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetConfigDir returns the path to the arena configuration directory.
// It returns ~/.ai-arena/ or an error if the home directory cannot be
// determined.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ai-arena"), nil
}

// getConfigFilePath returns the full path to the configuration file.
func getConfigFilePath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// GetConfigPath returns the absolute path to the configuration file.
// The config file is stored at ~/.ai-arena/config.toml
func GetConfigPath() (string, error) {
	return getConfigFilePath()
}
