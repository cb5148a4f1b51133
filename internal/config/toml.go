package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Fields are pointers so
// that an absent key is distinguishable from a zero value; CLI flags override
// config values, and local config overrides global.
type FileConfig struct {
	Tree TreeConfig `toml:"tree"`
	Cat  CatConfig  `toml:"cat"`
}

// TreeConfig maps tree-related settings.
type TreeConfig struct {
	MinScore *int  `toml:"min-score"`
	Depth    *int  `toml:"depth"`
	Flat     *bool `toml:"flat"`
	NoColor  *bool `toml:"no-color"`
	GitRoot  *bool `toml:"git-root"`
}

// CatConfig maps cat-related settings.
type CatConfig struct {
	Level     *int  `toml:"level"`
	NoHeaders *bool `toml:"no-headers"`
}

// Merge overlays values from other onto c. Set fields in other win.
func (c *FileConfig) Merge(other FileConfig) {
	mergeInt(&c.Tree.MinScore, other.Tree.MinScore)
	mergeInt(&c.Tree.Depth, other.Tree.Depth)
	mergeBool(&c.Tree.Flat, other.Tree.Flat)
	mergeBool(&c.Tree.NoColor, other.Tree.NoColor)
	mergeBool(&c.Tree.GitRoot, other.Tree.GitRoot)
	mergeInt(&c.Cat.Level, other.Cat.Level)
	mergeBool(&c.Cat.NoHeaders, other.Cat.NoHeaders)
}

func mergeInt(dst **int, src *int) {
	if src != nil {
		*dst = src
	}
}

func mergeBool(dst **bool, src *bool) {
	if src != nil {
		*dst = src
	}
}

// LoadFile reads a TOML config from the given path. Missing file is not an
// error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Load builds the effective configuration: the global XDG config first, then
// the repo-local file layered on top. A missing home directory only disables
// the global layer; a malformed file is reported.
func Load(root string) (FileConfig, error) {
	var cfg FileConfig

	if globalPath, err := GlobalConfigPath(); err == nil {
		global, err := LoadFile(globalPath)
		if err != nil {
			return FileConfig{}, err
		}
		cfg.Merge(global)
	}

	if root != "" {
		local, err := LoadFile(filepath.Join(root, LocalConfigName))
		if err != nil {
			return FileConfig{}, err
		}
		cfg.Merge(local)
	}

	return cfg, nil
}
