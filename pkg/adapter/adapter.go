// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package adapter defines the background worker surface: pollers,
// watchers and other sidecars with their own lifecycle, independent of
// any single tile.
package adapter

import (
	"time"

	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/host"
)

// StartPolicy aliases the bus addressing type so adapter authors only
// import this package.
type StartPolicy = bus.StartPolicy

// Start policies. See bus.StartPolicy.
const (
	Eager       = bus.Eager
	OnAppLaunch = bus.OnAppLaunch
	Manual      = bus.Manual
)

// Adapter is a background worker the runtime starts and stops by policy,
// name or label. Start usually spawns a goroutine that consumes inbox and
// publishes on b; it must return quickly.
type Adapter interface {
	// Name is the unique, stable identifier. At most one instance of a
	// name runs at a time.
	Name() string
	// Policy decides when the runtime starts and stops this adapter.
	Policy() StartPolicy
	// Topics returns broadcast topics routed into this adapter's inbox.
	Topics() []string
	// Labels returns selection tags for start/stop/notify by label.
	Labels() []string

	// Start launches the worker. The returned handle lets the runtime
	// shut it down; an error leaves the adapter not running.
	Start(cx *host.Context, b bus.Bus, inbox <-chan *bus.Envelope) (*Handle, error)
}

// Base supplies default metadata: Eager policy, no topics, no labels.
// Embed it and override what you need; Name and Start stay yours.
type Base struct{}

// Policy returns Eager.
func (Base) Policy() StartPolicy { return Eager }

// Topics returns no topic subscriptions.
func (Base) Topics() []string { return nil }

// Labels returns no label tags.
func (Base) Labels() []string { return nil }

// DefaultJoinWait bounds how long Shutdown waits for a worker to finish.
const DefaultJoinWait = 2 * time.Second

// Handle lets the runtime stop a running adapter: a shutdown func plus an
// optional done channel the worker closes when it finishes.
type Handle struct {
	done     <-chan struct{}
	shutdown func()
	joinWait time.Duration
}

// NewHandle builds a handle from a shutdown func and an optional done
// channel. Pass done == nil for workers with nothing to join.
func NewHandle(done <-chan struct{}, shutdown func()) *Handle {
	return &Handle{done: done, shutdown: shutdown, joinWait: DefaultJoinWait}
}

// FromShutdown builds a handle with no worker to join.
func FromShutdown(shutdown func()) *Handle {
	return NewHandle(nil, shutdown)
}

// FromDone builds a handle for workers stopped solely by closing their
// inbox: Shutdown only joins.
func FromDone(done <-chan struct{}) *Handle {
	return NewHandle(done, nil)
}

// Shutdown invokes the shutdown func then joins best-effort: a worker
// that does not finish within the join wait is left running and the call
// returns. It never blocks indefinitely.
func (h *Handle) Shutdown() {
	if h == nil {
		return
	}
	if h.shutdown != nil {
		h.shutdown()
	}
	if h.done == nil {
		return
	}
	select {
	case <-h.done:
	case <-time.After(h.joinWait):
	}
}
