// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package hook lets plugins observe everything the runtime loop handles:
// wire traffic, notifications, adapter control and loop lifecycle.
package hook

import (
	"log/slog"

	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/host"
	"github.com/tilekit/tilekit/pkg/wire"
)

// Event is the union of everything observable.
type Event interface {
	isHookEvent()
}

// Incoming mirrors every decoded controller event, before any built-in
// handling or dispatch.
type Incoming struct{ Event wire.Event }

// Outgoing mirrors every command queued for the controller.
type Outgoing struct{ Command wire.Command }

// Log mirrors every log record routed through the bus.
type Log struct {
	Level   slog.Level
	Message string
}

// ActionNotify mirrors every action-addressed notification.
type ActionNotify struct {
	Target   bus.ActionTarget
	Envelope *bus.Envelope
}

// AdapterNotify mirrors every adapter-addressed notification.
type AdapterNotify struct {
	Target   bus.AdapterTarget
	Envelope *bus.Envelope
}

// AdapterControl mirrors every adapter start/stop/restart command.
type AdapterControl struct{ Control bus.Control }

// AppLaunched fires when a monitored application opens.
type AppLaunched struct{ Application string }

// AppTerminated fires when a monitored application quits.
type AppTerminated struct{ Application string }

// DeviceConnected fires when a device is plugged in.
type DeviceConnected struct {
	Device string
	Info   wire.DeviceInfo
}

// DeviceDisconnected fires when a device is unplugged.
type DeviceDisconnected struct{ Device string }

// DeviceChanged fires when a device's properties change.
type DeviceChanged struct {
	Device string
	Info   wire.DeviceInfo
}

// DeepLink fires when a deep-link URL arrives.
type DeepLink struct{ URL string }

// GlobalSettings fires when a plugin-wide settings snapshot arrives.
type GlobalSettings struct{ Settings map[string]any }

// Init fires once before the loop starts consuming messages.
type Init struct{}

// Exit fires once when the loop is asked to shut down.
type Exit struct{}

// Tick fires on every quiet-timeout turn of the loop.
type Tick struct{}

func (Incoming) isHookEvent()           {}
func (Outgoing) isHookEvent()           {}
func (Log) isHookEvent()                {}
func (ActionNotify) isHookEvent()       {}
func (AdapterNotify) isHookEvent()      {}
func (AdapterControl) isHookEvent()     {}
func (AppLaunched) isHookEvent()        {}
func (AppTerminated) isHookEvent()      {}
func (DeviceConnected) isHookEvent()    {}
func (DeviceDisconnected) isHookEvent() {}
func (DeviceChanged) isHookEvent()      {}
func (DeepLink) isHookEvent()           {}
func (GlobalSettings) isHookEvent()     {}
func (Init) isHookEvent()               {}
func (Exit) isHookEvent()               {}
func (Tick) isHookEvent()               {}

// Func observes one hook event. Runs on the loop goroutine; keep it fast.
type Func func(cx *host.Context, ev Event)

// Hooks is an ordered list of listeners fired synchronously on the loop
// goroutine, in registration order. The zero value is ready to use.
type Hooks struct {
	listeners []Func
}

// Append registers a listener and returns the receiver for chaining.
func (h *Hooks) Append(fn Func) *Hooks {
	h.listeners = append(h.listeners, fn)
	return h
}

// Fire invokes every listener with ev, in registration order.
func (h *Hooks) Fire(cx *host.Context, ev Event) {
	for _, fn := range h.listeners {
		fn(cx, ev)
	}
}

// Len returns the number of registered listeners.
func (h *Hooks) Len() int { return len(h.listeners) }
