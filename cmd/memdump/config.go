// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/yeetrun/bargs/pkg/field"
	"gopkg.in/yaml.v3"
)

var configNames = []string{"memdump.toml", "memdump.yaml", "memdump.yml"}

// Config holds defaults for flags. Unset fields leave the built-in default.
type Config struct {
	Color *bool  `toml:"color" yaml:"color"`
	Group *uint8 `toml:"group" yaml:"group"`
	Width *uint  `toml:"width" yaml:"width"`
}

func loadConfigFromCwd() (Config, string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, "", err
	}
	return loadConfigFromDir(cwd)
}

// loadConfigFromDir loads the nearest config file in dir or its parents.
// A missing file is not an error.
func loadConfigFromDir(startDir string) (Config, string, error) {
	path, err := findConfigPath(startDir)
	if err != nil || path == "" {
		return Config{}, "", err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return Config{}, path, err
	}
	return cfg, path, nil
}

func findConfigPath(startDir string) (string, error) {
	dir := filepath.Clean(startDir)
	for {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			} else if !os.IsNotExist(err) {
				return "", err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if filepath.Ext(path) == ".toml" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overrides c with MEMDUMP_COLOR, MEMDUMP_GROUP and MEMDUMP_WIDTH.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("MEMDUMP_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MEMDUMP_COLOR: %w", err)
		}
		c.Color = &b
	}
	if v := getenv("MEMDUMP_GROUP"); v != "" {
		g, err := field.Uint[uint8]().ParseOne(v)
		if err != nil {
			return fmt.Errorf("MEMDUMP_GROUP: %w", err)
		}
		c.Group = &g
	}
	if v := getenv("MEMDUMP_WIDTH"); v != "" {
		w, err := field.Uint[uint]().ParseOne(v)
		if err != nil {
			return fmt.Errorf("MEMDUMP_WIDTH: %w", err)
		}
		c.Width = &w
	}
	return nil
}
