// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package config loads tool configuration: defaults, then an optional
// YAML file, then command-line flags, later layers winning.
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config is the tilekit CLI configuration.
type Config struct {
	Log      Log      `koanf:"log"`
	Mockhost Mockhost `koanf:"mockhost"`
	Metrics  Metrics  `koanf:"metrics"`
}

// Log configures the default logger.
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Mockhost configures the mock controller endpoint.
type Mockhost struct {
	Addr string `koanf:"addr"`
}

// Metrics configures the observability listener.
type Metrics struct {
	Addr string `koanf:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:      Log{Level: "info", Format: "text"},
		Mockhost: Mockhost{Addr: "127.0.0.1:28196"},
	}
}

// Load layers an optional YAML file and flag overrides over Default.
// A missing path is only an error when it was given explicitly.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	errb := oops.In("config")
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, errb.With("path", path).Wrapf(err, "config file not readable")
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, errb.With("path", path).Wrapf(err, "parsing config file")
		}
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, errb.Wrapf(err, "reading flags")
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errb.Wrapf(err, "unmarshaling config")
	}
	return cfg, nil
}
