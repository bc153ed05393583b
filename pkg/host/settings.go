// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package host carries the shared context handed to actions, adapters and
// hooks: the wire client, the global settings cache and the extension store.
package host

import (
	"maps"
	"sync"

	"github.com/tilekit/tilekit/pkg/wire"
)

// GlobalSettings is a thread-safe, push-on-write cache of the plugin-wide
// settings. Every mutation pushes the fresh snapshot to the controller;
// only Hydrate writes without pushing, for when the controller sends us a
// snapshot.
type GlobalSettings struct {
	client *wire.Client

	mu  sync.RWMutex
	set map[string]any
}

// NewGlobalSettings creates an empty cache bound to a client.
func NewGlobalSettings(client *wire.Client) *GlobalSettings {
	return &GlobalSettings{client: client, set: map[string]any{}}
}

// Hydrate replaces the cache from a controller snapshot without pushing.
// Call from the didReceiveGlobalSettings path.
func (g *GlobalSettings) Hydrate(snapshot map[string]any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.set = maps.Clone(snapshot)
	if g.set == nil {
		g.set = map[string]any{}
	}
}

// Snapshot returns a copy of the entire settings map.
func (g *GlobalSettings) Snapshot() map[string]any {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return maps.Clone(g.set)
}

// Get returns a single key's value.
func (g *GlobalSettings) Get(key string) (any, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.set[key]
	return v, ok
}

// Set stores a single key and pushes.
func (g *GlobalSettings) Set(key string, value any) {
	g.push(func(m map[string]any) {
		m[key] = value
	})
}

// Replace swaps the whole map and pushes.
func (g *GlobalSettings) Replace(settings map[string]any) {
	g.push(func(m map[string]any) {
		clear(m)
		maps.Copy(m, settings)
	})
}

// Delete removes a key and pushes.
func (g *GlobalSettings) Delete(key string) {
	g.push(func(m map[string]any) {
		delete(m, key)
	})
}

// Clear removes everything and pushes, leaving an empty object on the
// controller.
func (g *GlobalSettings) Clear() {
	g.push(func(m map[string]any) {
		clear(m)
	})
}

// Update batch-edits the settings under the lock and pushes once with the
// final state.
func (g *GlobalSettings) Update(fn func(map[string]any)) {
	g.push(fn)
}

func (g *GlobalSettings) push(fn func(map[string]any)) {
	g.mu.Lock()
	fn(g.set)
	snapshot := maps.Clone(g.set)
	g.mu.Unlock()

	if g.client != nil {
		g.client.SetGlobalSettings(snapshot)
	}
}
