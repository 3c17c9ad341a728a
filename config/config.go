// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs
// for node trees and the nodetree tool, loaded from TOML.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"cogentcore.org/nodes/base/errors"
	"cogentcore.org/nodes/logx"
)

// Config is the main config struct that contains
// all of the configuration options for a node tree.
type Config struct {

	// Cache configures the materialized children cache.
	Cache Cache `toml:"cache"`

	// Walk configures full recursive materialization.
	Walk Walk `toml:"walk"`

	// Log configures logging.
	Log Log `toml:"log"`

	// FS configures directory-backed trees.
	FS FS `toml:"fs"`

	// Metrics configures the metrics endpoint of the nodetree tool.
	Metrics Metrics `toml:"metrics"`
}

type Cache struct {

	// MaxArrays is the number of materialized child arrays that are kept
	// before the least recently used ones are reclaimed.
	MaxArrays int `toml:"max_arrays" default:"4096"`
}

type Walk struct {

	// Parallelism is the maximum number of child lists that are
	// materialized at the same time by a full recursive materialization.
	Parallelism int `toml:"parallelism" default:"8"`
}

type Log struct {

	// Level is the minimum level of messages that are logged:
	// debug, info, warn, or error.
	Level string `toml:"level" default:"info"`
}

type FS struct {

	// ShowHidden is whether entries whose names start with a dot are shown.
	ShowHidden bool `toml:"show_hidden"`

	// Watch is whether expanded directories are watched for changes.
	Watch bool `toml:"watch" default:"true"`
}

type Metrics struct {

	// Listen is the address on which metrics are served, such as
	// localhost:9100. Metrics are not served if it is empty.
	Listen string `toml:"listen"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Cache: Cache{MaxArrays: 4096},
		Walk:  Walk{Parallelism: 8},
		Log:   Log{Level: "info"},
		FS:    FS{Watch: true},
	}
}

// Open reads the config from the given TOML file on top of the defaults.
// A leading ~ in the file name is expanded to the home directory.
func Open(file string) (*Config, error) {
	path, err := homedir.Expand(file)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := Read(cfg, b); err != nil {
		return nil, fmt.Errorf("config.Open %q: %w", path, err)
	}
	return cfg, nil
}

// Read decodes the given TOML data into cfg and validates the result.
// Unknown keys are an error.
func Read(cfg *Config, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Save writes the config to the given TOML file.
func (cfg *Config) Save(file string) error {
	path, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	b, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Validate returns an error if any of the values are out of range.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Cache.MaxArrays < 1 {
		errs = append(errs, fmt.Errorf("cache.max_arrays must be at least 1, got %d", cfg.Cache.MaxArrays))
	}
	if cfg.Walk.Parallelism < 1 {
		errs = append(errs, fmt.Errorf("walk.parallelism must be at least 1, got %d", cfg.Walk.Parallelism))
	}
	if _, err := logx.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
