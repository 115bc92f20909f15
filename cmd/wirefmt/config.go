package main

import (
	"errors"
	"io/fs"

	"github.com/BurntSushi/toml"

	wirefmt "github.com/reoring/wirefmt"
)

// config carries CLI defaults loadable from a TOML file. Flags override
// whatever the file provides.
type config struct {
	KeepComments       bool   `toml:"keep_comments"`
	AllowDuplicateKeys bool   `toml:"allow_duplicate_keys"`
	MaxDepth           int    `toml:"max_depth"`
	MaxBytes           int64  `toml:"max_bytes"`
	Driver             string `toml:"driver"` // "stdjson" or "gojson"
	LogLevel           string `toml:"log_level"`
}

func defaultConfig() config {
	return config{
		MaxDepth: 64,
		MaxBytes: 8 << 20,
		Driver:   "gojson",
		LogLevel: "info",
	}
}

// loadConfig reads path when it exists; a missing file yields the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return cfg, err
	}
	return cfg, nil
}

func (c config) readOpt() wirefmt.ReadOpt {
	return wirefmt.ReadOpt{
		KeepComments:       c.KeepComments,
		AllowDuplicateKeys: c.AllowDuplicateKeys,
		MaxDepth:           c.MaxDepth,
		MaxBytes:           c.MaxBytes,
	}
}
