// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilekit/tilekit/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tilekit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:28196", cfg.Mockhost.Addr)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
metrics:
  addr: "127.0.0.1:9201"
`)

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:9201", cfg.Metrics.Addr)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log.level", "info", "")
	flags.String("log.format", "text", "")
	require.NoError(t, flags.Parse([]string{"--log.level=warn"}))

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_UnsetFlagsDoNotClobberFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log.level", "info", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := config.Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := writeConfig(t, "log: [not a mapping\n")

	_, err := config.Load(path, nil)
	require.Error(t, err)
}
