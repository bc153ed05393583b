// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package main

import (
	"strconv"

	"github.com/tilekit/tilekit/pkg/action"
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/host"
	"github.com/tilekit/tilekit/pkg/wire"
)

// ActionID is the manifest identifier of the counter action.
const ActionID = "com.tilekit.counter.count"

// filesChanged is published by the watch adapter for every file event.
var filesChanged = bus.NewTopic[string]("files.changed")

// counter counts key presses on its tile. The count persists in the
// tile's settings so it survives plugin restarts.
type counter struct {
	action.Base
	count int
}

func counterFactory() action.Factory {
	return action.NewFactory(ActionID, func() action.Action { return &counter{} })
}

func (c *counter) Topics() []string { return []string{filesChanged.Name()} }

func (c *counter) WillAppear(cx *host.Context, ev *wire.WillAppear) {
	c.count = settingsCount(ev.Settings)
	c.render(cx, ev.Context)
}

func (c *counter) DidReceiveSettings(cx *host.Context, ev *wire.DidReceiveSettings) {
	c.count = settingsCount(ev.Settings)
	c.render(cx, ev.Context)
}

func (c *counter) KeyDown(cx *host.Context, ev *wire.KeyDown) {
	c.step(cx, ev.Context, 1)
}

func (c *counter) DialRotate(cx *host.Context, ev *wire.DialRotate) {
	c.step(cx, ev.Context, ev.Ticks)
}

func (c *counter) DialDown(cx *host.Context, ev *wire.DialDown) {
	c.count = 0
	c.persist(cx, ev.Context)
	c.render(cx, ev.Context)
}

// OnNotify flashes the tile when the watch adapter reports file activity.
func (c *counter) OnNotify(cx *host.Context, tileContext string, env *bus.Envelope) {
	if _, ok := bus.Open(env, filesChanged); ok {
		cx.Client().ShowOK(tileContext)
	}
}

func (c *counter) step(cx *host.Context, tileContext string, delta int) {
	c.count += delta
	c.persist(cx, tileContext)
	c.render(cx, tileContext)
}

func (c *counter) persist(cx *host.Context, tileContext string) {
	cx.Client().SetSettings(tileContext, map[string]any{"count": c.count})
}

func (c *counter) render(cx *host.Context, tileContext string) {
	cx.Client().SetTitle(tileContext, strconv.Itoa(c.count))
}

// settingsCount reads the persisted count; JSON numbers arrive as float64.
func settingsCount(settings map[string]any) int {
	switch v := settings["count"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}
