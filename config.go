package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds persistent tool preferences. Values are overridden by
// command-line flags when those are set explicitly.
type Config struct {
	ContextLines int    `toml:"context_lines"`
	Collapse     bool   `toml:"collapse"`
	SideBySide   bool   `toml:"side_by_side"`
	Color        string `toml:"color"` // auto, on, off
	LogLevel     string `toml:"log_level"`
	LogFile      string `toml:"log_file"`
}

func defaultConfig() Config {
	return Config{
		ContextLines: 3,
		Collapse:     true,
		SideBySide:   true,
		Color:        "auto",
		LogLevel:     "info",
	}
}

// loadConfig reads the TOML config at path, or the default location
// (os.UserConfigDir()/reviewdiff/config.toml) when path is empty. A missing
// file is not an error; defaults apply.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		base, err := os.UserConfigDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(base, "reviewdiff", "config.toml")
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}
