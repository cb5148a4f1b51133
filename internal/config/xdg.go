// Package config provides XDG path helpers and layered TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalIgnoreName is the per-repository ignore file name.
const LocalIgnoreName = ".skimignore"

// LocalConfigName is the per-repository config file name.
const LocalConfigName = ".skim.toml"

// XDGConfigHome returns the XDG config home. It fails when neither
// XDG_CONFIG_HOME nor a home directory can be determined.
func XDGConfigHome() (string, error) {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("could not determine home directory")
	}
	return filepath.Join(home, ".config"), nil
}

// XDGDataHome returns the XDG data home. It fails when neither XDG_DATA_HOME
// nor a home directory can be determined.
func XDGDataHome() (string, error) {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("could not determine home directory")
	}
	return filepath.Join(home, ".local", "share"), nil
}

// GlobalIgnorePath returns the path of the global ignore file.
func GlobalIgnorePath() (string, error) {
	cfg, err := XDGConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "skim", "ignore"), nil
}

// GlobalConfigPath returns the path of the global TOML config.
func GlobalConfigPath() (string, error) {
	cfg, err := XDGConfigHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "skim", "config.toml"), nil
}

// SessionsDir returns the directory holding session files.
func SessionsDir() (string, error) {
	data, err := XDGDataHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(data, "skim", "sessions"), nil
}
