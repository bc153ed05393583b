// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package action defines the per-tile handler surface. Embed Base and
// override only the hooks you need.
package action

import (
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/host"
	"github.com/tilekit/tilekit/pkg/wire"
)

// Action handles events for one tile. The runtime constructs one instance
// per (action type, tile context) pair and calls every hook on the loop
// goroutine, so implementations need no locking for their own state.
//
// Init runs exactly once before any other hook — except on the teardown
// path: a willDisappear for a tile that never appeared still constructs an
// instance and calls WillDisappear and Teardown without Init, so Teardown
// must not assume Init ran.
type Action interface {
	// Topics returns the broadcast topics this instance subscribes to.
	// Captured once at construction.
	Topics() []string

	// Init runs once after construction, before the triggering event hook.
	Init(cx *host.Context, tileContext string)
	// Teardown runs when the instance is removed.
	Teardown(cx *host.Context, tileContext string)

	WillAppear(cx *host.Context, ev *wire.WillAppear)
	WillDisappear(cx *host.Context, ev *wire.WillDisappear)
	KeyDown(cx *host.Context, ev *wire.KeyDown)
	KeyUp(cx *host.Context, ev *wire.KeyUp)

	DialDown(cx *host.Context, ev *wire.DialDown)
	DialUp(cx *host.Context, ev *wire.DialUp)
	DialRotate(cx *host.Context, ev *wire.DialRotate)
	TouchTap(cx *host.Context, ev *wire.TouchTap)

	TitleParametersDidChange(cx *host.Context, ev *wire.TitleParametersDidChange)
	PropertyInspectorDidAppear(cx *host.Context, ev *wire.PropertyInspectorDidAppear)
	PropertyInspectorDidDisappear(cx *host.Context, ev *wire.PropertyInspectorDidDisappear)
	DidReceiveSettings(cx *host.Context, ev *wire.DidReceiveSettings)
	DidReceivePropertyInspectorMessage(cx *host.Context, ev *wire.DidReceivePropertyInspectorMessage)

	// OnGlobalEvent receives events not addressed to any tile (device
	// lifecycle, wake-from-sleep, ...).
	OnGlobalEvent(cx *host.Context, ev wire.Event)
	// OnNotify receives typed notifications from the bus.
	OnNotify(cx *host.Context, tileContext string, env *bus.Envelope)
}

// Base provides no-op implementations for every Action hook.
type Base struct{}

func (Base) Topics() []string                             { return nil }
func (Base) Init(*host.Context, string)                   {}
func (Base) Teardown(*host.Context, string)               {}
func (Base) WillAppear(*host.Context, *wire.WillAppear)   {}
func (Base) WillDisappear(*host.Context, *wire.WillDisappear) {
}
func (Base) KeyDown(*host.Context, *wire.KeyDown)       {}
func (Base) KeyUp(*host.Context, *wire.KeyUp)           {}
func (Base) DialDown(*host.Context, *wire.DialDown)     {}
func (Base) DialUp(*host.Context, *wire.DialUp)         {}
func (Base) DialRotate(*host.Context, *wire.DialRotate) {}
func (Base) TouchTap(*host.Context, *wire.TouchTap)     {}
func (Base) TitleParametersDidChange(*host.Context, *wire.TitleParametersDidChange) {
}
func (Base) PropertyInspectorDidAppear(*host.Context, *wire.PropertyInspectorDidAppear) {
}
func (Base) PropertyInspectorDidDisappear(*host.Context, *wire.PropertyInspectorDidDisappear) {
}
func (Base) DidReceiveSettings(*host.Context, *wire.DidReceiveSettings) {}
func (Base) DidReceivePropertyInspectorMessage(*host.Context, *wire.DidReceivePropertyInspectorMessage) {
}
func (Base) OnGlobalEvent(*host.Context, wire.Event)           {}
func (Base) OnNotify(*host.Context, string, *bus.Envelope)     {}

// Factory builds fresh instances of one action type. ID is the stable
// action-type identifier tiles are bound to in the manifest.
type Factory struct {
	ID  string
	New func() Action
}

// NewFactory pairs an action-type identifier with a constructor.
func NewFactory(id string, build func() Action) Factory {
	return Factory{ID: id, New: build}
}
