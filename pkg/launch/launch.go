// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package launch parses the arguments the controller passes when it
// spawns a plugin process and derives the websocket endpoint to dial.
package launch

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/samber/oops"
)

// Environment overrides, mainly for driving a plugin against a local
// mock host instead of the real controller.
const (
	EnvScheme = "TILEKIT_WS_SCHEME"
	EnvHost   = "TILEKIT_WS_HOST"
)

// Args carries the controller-supplied registration parameters.
type Args struct {
	// Port is the local websocket port the controller listens on.
	Port int
	// PluginUUID identifies this plugin instance for the handshake and
	// for plugin-scoped commands.
	PluginUUID string
	// RegisterEvent is the event name to send in the handshake frame.
	RegisterEvent string
	// Info is the raw JSON blob describing the host environment, passed
	// through unparsed. May be empty.
	Info string
}

// Parse reads the controller's launch arguments. The controller passes
// single-dash long options (-port, -pluginUUID, -registerEvent, -info),
// which the stdlib flag package accepts as-is.
func Parse(argv []string) (Args, error) {
	var a Args
	fs := flag.NewFlagSet("tilekit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&a.Port, "port", 0, "controller websocket port")
	fs.StringVar(&a.PluginUUID, "pluginUUID", "", "plugin instance identifier")
	fs.StringVar(&a.RegisterEvent, "registerEvent", "", "registration event name")
	fs.StringVar(&a.Info, "info", "", "host environment info JSON")
	if err := fs.Parse(argv); err != nil {
		return Args{}, oops.In("launch").Wrapf(err, "parsing launch arguments")
	}
	return a, a.Validate()
}

// ParseOS parses os.Args[1:].
func ParseOS() (Args, error) {
	return Parse(os.Args[1:])
}

// Validate checks that the mandatory handshake parameters are present.
func (a Args) Validate() error {
	errb := oops.In("launch")
	if a.Port <= 0 || a.Port > 65535 {
		return errb.With("port", a.Port).Errorf("port out of range")
	}
	if a.PluginUUID == "" {
		return errb.Errorf("missing -pluginUUID")
	}
	if a.RegisterEvent == "" {
		return errb.Errorf("missing -registerEvent")
	}
	return nil
}

// URL returns the websocket endpoint to dial. The controller always
// listens on localhost; EnvScheme and EnvHost override scheme and host
// for testing against a mock.
func (a Args) URL() string {
	scheme := os.Getenv(EnvScheme)
	if scheme == "" {
		scheme = "ws"
	}
	host := os.Getenv(EnvHost)
	if host == "" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, a.Port)
}

// Registration returns the JSON handshake frame sent once after the
// websocket connects.
func (a Args) Registration() ([]byte, error) {
	frame := struct {
		Event string `json:"event"`
		UUID  string `json:"uuid"`
	}{Event: a.RegisterEvent, UUID: a.PluginUUID}
	b, err := json.Marshal(frame)
	if err != nil {
		return nil, oops.In("launch").Wrapf(err, "encoding registration frame")
	}
	return b, nil
}
