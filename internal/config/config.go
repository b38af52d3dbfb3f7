// Package config loads qoiinfo settings from an optional TOML file.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config holds the settings shared by qoiinfo commands.
type Config struct {
	Output      string
	Workers     int
	MaxPixels   uint64
	SkipEndMark bool
	Debug       bool
	HumanLogs   bool
}

type fileConfig struct {
	Output      string `toml:"output"`
	Workers     int    `toml:"workers"`
	MaxPixels   int64  `toml:"max_pixels"`
	SkipEndMark bool   `toml:"skip_end_mark"`
	Debug       bool   `toml:"debug"`
	HumanLogs   bool   `toml:"human_logs"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Output:  OutputText,
		Workers: runtime.NumCPU(),
	}
}

// Load reads path and applies every key it defines on top of Default.
// An empty path returns Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("output") {
		cfg.Output = strings.ToLower(strings.TrimSpace(raw.Output))
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("max_pixels") {
		if raw.MaxPixels < 0 {
			return Config{}, fmt.Errorf("parse max_pixels: must not be negative, got %d", raw.MaxPixels)
		}
		cfg.MaxPixels = uint64(raw.MaxPixels)
	}
	if meta.IsDefined("skip_end_mark") {
		cfg.SkipEndMark = raw.SkipEndMark
	}
	if meta.IsDefined("debug") {
		cfg.Debug = raw.Debug
	}
	if meta.IsDefined("human_logs") {
		cfg.HumanLogs = raw.HumanLogs
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c Config) Validate() error {
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("invalid output %q: want %q or %q", c.Output, OutputText, OutputJSON)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers %d: must be at least 1", c.Workers)
	}
	return nil
}
