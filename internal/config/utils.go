package config

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/Paintersrp/notepy/internal/constants"
)

var lookPath = exec.LookPath

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

func LegacyConfigPath(homeDir string) string {
	return filepath.Join(homeDir, constants.LegacyConfigFile)
}

// EnsureConfigExists returns the default config path, adopting a legacy
// ~/.notepy.yml when no config exists at the default location yet.
func EnsureConfigExists(homeDir string) (string, error) {
	configPath := GetConfigPath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to check config file existence: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	legacy := LegacyConfigPath(homeDir)
	if _, err := os.Stat(legacy); err == nil {
		if err := os.Rename(legacy, configPath); err != nil {
			return "", fmt.Errorf("failed to move legacy config: %w", err)
		}
	}

	return configPath, nil
}

// DetectScreenshotCommand picks spectacle when it is installed and falls back
// to gnome-screenshot otherwise.
func DetectScreenshotCommand() string {
	if _, err := lookPath("spectacle"); err == nil {
		return `spectacle -rbn -o "{filename}"`
	}
	return `gnome-screenshot -a -f "{filename}"`
}
