// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package host

import (
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/wire"
)

// Context is the shared handle passed to every action, adapter and hook.
// It is safe to use from any goroutine; all communication back to the
// loop goes through the bus or the wire client.
type Context struct {
	client     *wire.Client
	pluginUUID string
	globals    *GlobalSettings
	exts       *Extensions
	bus        bus.Bus
}

// NewContext assembles a context. The runtime calls this once at startup.
func NewContext(client *wire.Client, pluginUUID string, exts *Extensions, b bus.Bus) *Context {
	if exts == nil {
		exts = NewExtensions()
	}
	return &Context{
		client:     client,
		pluginUUID: pluginUUID,
		globals:    NewGlobalSettings(client),
		exts:       exts,
		bus:        b,
	}
}

// Client returns the typed command facade for the controller.
func (c *Context) Client() *wire.Client { return c.client }

// PluginUUID returns the plugin instance identifier.
func (c *Context) PluginUUID() string { return c.pluginUUID }

// Globals returns the plugin-wide settings cache.
func (c *Context) Globals() *GlobalSettings { return c.globals }

// Extensions returns the type-indexed shared state store.
func (c *Context) Extensions() *Extensions { return c.exts }

// Bus returns the notification facade.
func (c *Context) Bus() bus.Bus { return c.bus }
