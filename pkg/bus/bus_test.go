// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package bus_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/wire"
)

var volumeChanged = bus.NewTopic[int]("volume.changed")

func TestOpen_MatchingTopic(t *testing.T) {
	env := bus.New(volumeChanged, 42)

	v, ok := bus.Open(env, volumeChanged)
	require.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, "volume.changed", env.Name())
	assert.NotZero(t, env.ID())
}

func TestOpen_NameMatchTypeMismatch(t *testing.T) {
	// Same name, different payload type: must not open.
	intTopic := bus.NewTopic[int]("shared.name")
	strTopic := bus.NewTopic[string]("shared.name")

	env := bus.New(intTopic, 7)

	_, ok := bus.Open(env, strTopic)
	assert.False(t, ok)
	assert.False(t, bus.Is(env, strTopic))
	assert.True(t, bus.Is(env, intTopic))
}

func TestOpen_NameMismatch(t *testing.T) {
	other := bus.NewTopic[int]("other")
	env := bus.New(volumeChanged, 1)

	_, ok := bus.Open(env, other)
	assert.False(t, ok)
}

func TestOpen_NilEnvelope(t *testing.T) {
	_, ok := bus.Open(nil, volumeChanged)
	assert.False(t, ok)
}

func TestEmitter_DeliversInOrder(t *testing.T) {
	e := bus.NewEmitter(8)

	e.Send(wire.ShowOK{Context: "tile-1"})
	e.Log(slog.LevelInfo, "hello")
	bus.PublishTopic(e, volumeChanged, 3)

	msg := <-e.Queue()
	out, ok := msg.(bus.Outgoing)
	require.True(t, ok)
	assert.Equal(t, "showOk", wire.CommandName(out.Command))

	msg = <-e.Queue()
	rec, ok := msg.(bus.LogRecord)
	require.True(t, ok)
	assert.Equal(t, "hello", rec.Message)

	msg = <-e.Queue()
	pub, ok := msg.(bus.Publish)
	require.True(t, ok)
	v, ok := bus.Open(pub.Envelope, volumeChanged)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestEmitter_DropsWhenFull(t *testing.T) {
	e := bus.NewEmitter(1)

	e.Log(slog.LevelInfo, "kept")
	e.Log(slog.LevelInfo, "dropped") // queue full, must not block

	rec := (<-e.Queue()).(bus.LogRecord)
	assert.Equal(t, "kept", rec.Message)

	select {
	case msg := <-e.Queue():
		t.Fatalf("expected empty queue, got %T", msg)
	default:
	}
}

func TestNotifyHelpers_Targets(t *testing.T) {
	e := bus.NewEmitter(8)

	bus.NotifyAllActions(e, volumeChanged, 1)
	bus.NotifyActionContext(e, "tile-9", volumeChanged, 2)
	bus.NotifyActionID(e, "com.example.vol", volumeChanged, 3)
	bus.NotifyAdapterByName(e, "poller", volumeChanged, 4)
	bus.NotifyAdaptersByLabel(e, "media", volumeChanged, 5)
	bus.NotifyAdaptersByTopic(e, volumeChanged, 6)

	n1 := (<-e.Queue()).(bus.ActionNotify)
	assert.Equal(t, bus.ActionAll, n1.Target.Kind)

	n2 := (<-e.Queue()).(bus.ActionNotify)
	assert.Equal(t, bus.ActionByContext, n2.Target.Kind)
	assert.Equal(t, "tile-9", n2.Target.Context)

	n3 := (<-e.Queue()).(bus.ActionNotify)
	assert.Equal(t, bus.ActionByID, n3.Target.Kind)
	assert.Equal(t, "com.example.vol", n3.Target.ID)

	a1 := (<-e.Queue()).(bus.AdapterNotify)
	assert.Equal(t, bus.AdapterByName, a1.Target.Kind)

	a2 := (<-e.Queue()).(bus.AdapterNotify)
	assert.Equal(t, bus.AdapterByLabel, a2.Target.Kind)

	a3 := (<-e.Queue()).(bus.AdapterNotify)
	assert.Equal(t, bus.AdapterByTopic, a3.Target.Kind)
	assert.Equal(t, volumeChanged.Name(), a3.Target.Topic)
}

func TestControl_Strings(t *testing.T) {
	ctl := bus.RestartAdapters(bus.AdapterLabel("poll-*"))
	assert.Equal(t, "restart(label:poll-*)", ctl.String())
	assert.Equal(t, "stop(topic:volume.changed)", bus.StopAdapters(bus.AdapterTopic("volume.changed")).String())
	assert.Equal(t, "eager", bus.Eager.String())
	assert.Equal(t, "on-app-launch", bus.OnAppLaunch.String())
	assert.Equal(t, "manual", bus.Manual.String())
}
