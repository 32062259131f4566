/*
   simconfig - TOML-driven simulator configuration.

   Copyright (c) 2026

   Permission is hereby granted, free of charge, to any person obtaining a
   copy of this software and associated documentation files (the "Software"),
   to deal in the Software without restriction, including without limitation
   the rights to use, copy, modify, merge, publish, distribute, sublicense,
   and/or sell copies of the Software, and to permit persons to whom the
   Software is furnished to do so, subject to the following conditions:

   The above copyright notice and this permission notice shall be included in
   all copies or substantial portions of the Software.

   THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
   IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
   FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.

*/

// Package simconfig loads the small set of knobs a hosted run needs:
// how much guest RAM to back, how many cores to create, whether the
// sleep/wake discipline is on, and where the guest image and log file
// live. Unlike the line-oriented model config this is adapted from,
// real TOML is used so the format is self-describing and so nested
// per-core overrides are just nested tables.
package simconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// CoreConfig holds the per-core overrides a [[core]] entry in the config
// file can set; a core with no entry gets the zero value.
type CoreConfig struct {
	SleepWake bool `toml:"sleep_wake"`
}

// Config is the full simulator configuration.
type Config struct {
	MemorySize uint32       `toml:"memory_size"` // guest RAM in bytes
	NumCores   int          `toml:"num_cores"`
	EntryPoint uint32       `toml:"entry_point"`
	Image      string       `toml:"image"` // path to a flat guest memory image
	LogFile    string       `toml:"log_file"`
	Debug      bool         `toml:"debug"`
	Cores      []CoreConfig `toml:"core"`
}

// Default returns the configuration sparcrun uses when no config file
// is given.
func Default() Config {
	return Config{
		MemorySize: 16 << 20,
		NumCores:   1,
		EntryPoint: 0,
		LogFile:    "",
		Debug:      false,
	}
}

// Load decodes a TOML config file at path into a Config seeded with
// Default's values, so a file only needs to set what it wants to
// override.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("simconfig: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("simconfig: unknown keys: %v", undecoded)
	}
	if cfg.NumCores < 1 {
		return Config{}, fmt.Errorf("simconfig: num_cores must be >= 1")
	}
	if _, err := os.Stat(cfg.Image); cfg.Image != "" && err != nil {
		return Config{}, fmt.Errorf("simconfig: image %q: %w", cfg.Image, err)
	}
	return cfg, nil
}

// CoreOverride returns the per-core config for index i, or the zero
// value if the file did not set one.
func (c Config) CoreOverride(i int) CoreConfig {
	if i < len(c.Cores) {
		return c.Cores[i]
	}
	return CoreConfig{}
}
