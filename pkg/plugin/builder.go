// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package plugin assembles a plugin's registries: action factories,
// adapters, hooks and shared extensions.
package plugin

import (
	"github.com/samber/oops"

	"github.com/tilekit/tilekit/pkg/action"
	"github.com/tilekit/tilekit/pkg/adapter"
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/hook"
	"github.com/tilekit/tilekit/pkg/host"
	"github.com/tilekit/tilekit/pkg/wire"
)

// Builder accumulates a plugin's parts. Zero value is ready to use;
// methods return the receiver for chaining.
type Builder struct {
	actions  []action.Factory
	adapters []adapter.Adapter
	hooks    hook.Hooks
	exts     *host.Extensions
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{exts: host.NewExtensions()}
}

// AddAction registers an action factory.
func (b *Builder) AddAction(f action.Factory) *Builder {
	b.actions = append(b.actions, f)
	return b
}

// AddAdapter registers a background adapter.
func (b *Builder) AddAdapter(a adapter.Adapter) *Builder {
	b.adapters = append(b.adapters, a)
	return b
}

// OnEvent registers a hook listener, fired on the loop goroutine for
// every runtime event in registration order.
func (b *Builder) OnEvent(fn hook.Func) *Builder {
	b.hooks.Append(fn)
	return b
}

// Extensions exposes the shared extension store so assembly code can
// host.Provide typed values before Build.
func (b *Builder) Extensions() *host.Extensions {
	if b.exts == nil {
		b.exts = host.NewExtensions()
	}
	return b.exts
}

// Build validates the registries and produces an immutable Plugin.
func (b *Builder) Build() (*Plugin, error) {
	errb := oops.In("plugin")

	actions := make(map[string]action.Factory, len(b.actions))
	for _, f := range b.actions {
		if f.ID == "" {
			return nil, errb.Errorf("action factory has empty id")
		}
		if f.New == nil {
			return nil, errb.With("action", f.ID).Errorf("action factory has nil constructor")
		}
		if _, dup := actions[f.ID]; dup {
			return nil, errb.With("action", f.ID).Errorf("duplicate action id")
		}
		actions[f.ID] = f
	}

	seen := make(map[string]struct{}, len(b.adapters))
	for _, a := range b.adapters {
		name := a.Name()
		if name == "" {
			return nil, errb.Errorf("adapter has empty name")
		}
		if _, dup := seen[name]; dup {
			return nil, errb.With("adapter", name).Errorf("duplicate adapter name")
		}
		seen[name] = struct{}{}
	}

	exts := b.exts
	if exts == nil {
		exts = host.NewExtensions()
	}

	return &Plugin{
		actions:  actions,
		adapters: append([]adapter.Adapter(nil), b.adapters...),
		hooks:    b.hooks,
		exts:     exts,
	}, nil
}

// Plugin is an assembled, immutable registry the runtime hosts.
type Plugin struct {
	actions  map[string]action.Factory
	adapters []adapter.Adapter
	hooks    hook.Hooks
	exts     *host.Extensions
}

// Actions returns the action factory registry keyed by action id.
func (p *Plugin) Actions() map[string]action.Factory { return p.actions }

// Adapters returns the registered adapters in registration order.
func (p *Plugin) Adapters() []adapter.Adapter { return p.adapters }

// Hooks returns the registered hook listeners.
func (p *Plugin) Hooks() *hook.Hooks { return &p.hooks }

// Extensions returns the shared extension store.
func (p *Plugin) Extensions() *host.Extensions { return p.exts }

// NewContext builds the runtime context for this plugin instance.
func (p *Plugin) NewContext(client *wire.Client, pluginUUID string, b bus.Bus) *host.Context {
	return host.NewContext(client, pluginUUID, p.exts, b)
}
