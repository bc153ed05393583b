// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package runtime_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tilekit/tilekit/internal/mockhost"
	"github.com/tilekit/tilekit/pkg/action"
	"github.com/tilekit/tilekit/pkg/adapter"
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/host"
	"github.com/tilekit/tilekit/pkg/launch"
	"github.com/tilekit/tilekit/pkg/plugin"
	"github.com/tilekit/tilekit/pkg/runtime"
	"github.com/tilekit/tilekit/pkg/wire"
)

const testActionID = "com.example.test.tile"

// titleAction sets the tile title on every key press.
type titleAction struct {
	action.Base
}

func (a *titleAction) KeyDown(cx *host.Context, ev *wire.KeyDown) {
	cx.Client().SetTitle(ev.Context, "pressed")
}

func (a *titleAction) WillDisappear(cx *host.Context, ev *wire.WillDisappear) {
	cx.Client().LogMessage("bye " + ev.Context)
}

// launchAdapter reports its lifecycle over a channel.
type launchAdapter struct {
	adapter.Base
	events chan string
}

func (a *launchAdapter) Name() string                { return "follower" }
func (a *launchAdapter) Policy() adapter.StartPolicy { return adapter.OnAppLaunch }

func (a *launchAdapter) Start(_ *host.Context, _ bus.Bus, inbox <-chan *bus.Envelope) (*adapter.Handle, error) {
	a.events <- "started"
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range inbox {
		}
		a.events <- "stopped"
	}()
	return adapter.FromDone(done), nil
}

type frame struct {
	Event   string          `json:"event"`
	Context string          `json:"context"`
	Payload json.RawMessage `json:"payload"`
}

// waitFrame scans host frames until one matches the event name.
func waitFrame(t *testing.T, h *mockhost.Host, event string) frame {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case raw := <-h.Frames():
			var f frame
			require.NoError(t, json.Unmarshal(raw, &f))
			if f.Event == event {
				return f
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q frame", event)
		}
	}
}

func waitEvent(t *testing.T, ch chan string, want string) {
	t.Helper()
	select {
	case got := <-ch:
		require.Equal(t, want, got)
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for adapter %q", want)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	defer goleak.VerifyNone(t)

	h, err := mockhost.Listen("127.0.0.1:0", nil)
	require.NoError(t, err)
	defer h.Close()

	follower := &launchAdapter{events: make(chan string, 8)}
	p, err := plugin.NewBuilder().
		AddAction(action.NewFactory(testActionID, func() action.Action { return &titleAction{} })).
		AddAdapter(follower).
		Build()
	require.NoError(t, err)

	args := launch.Args{
		Port:          h.Port(),
		PluginUUID:    "test-uuid",
		RegisterEvent: "registerPlugin",
	}

	runDone := make(chan error, 1)
	go func() {
		runDone <- runtime.Run(context.Background(), p, args,
			runtime.WithURL(h.URL()),
			runtime.WithQuietInterval(10*time.Millisecond),
			runtime.WithStopDebounce(50*time.Millisecond),
		)
	}()

	// Handshake.
	select {
	case reg := <-h.Registered():
		assert.Equal(t, "registerPlugin", reg.Event)
		assert.Equal(t, "test-uuid", reg.UUID)
	case <-time.After(5 * time.Second):
		t.Fatal("plugin never registered")
	}

	// Startup requests the global settings.
	got := waitFrame(t, h, "getGlobalSettings")
	assert.Equal(t, "test-uuid", got.Context)

	ctx := context.Background()

	// Key press reaches the action, which answers with a title update.
	require.NoError(t, h.SendTileEvent(ctx, "willAppear", testActionID, "tile-1", map[string]any{
		"settings": map[string]any{},
	}))
	require.NoError(t, h.SendTileEvent(ctx, "keyDown", testActionID, "tile-1", nil))

	set := waitFrame(t, h, "setTitle")
	assert.Equal(t, "tile-1", set.Context)

	// Disappear without a prior appear still runs the teardown hooks.
	require.NoError(t, h.SendTileEvent(ctx, "willDisappear", testActionID, "tile-9", nil))
	waitFrame(t, h, "logMessage")

	// Monitored app lifecycle drives the on-app-launch adapter.
	require.NoError(t, h.SendAppEvent(ctx, "applicationDidLaunch", "com.example.app"))
	waitEvent(t, follower.events, "started")

	require.NoError(t, h.SendAppEvent(ctx, "applicationDidTerminate", "com.example.app"))
	waitEvent(t, follower.events, "stopped")

	// Dropping the connection ends the run cleanly.
	h.Close()
	select {
	case err := <-runDone:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runtime did not stop after disconnect")
	}
}

func TestRun_DialFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	p, err := plugin.NewBuilder().Build()
	require.NoError(t, err)

	args := launch.Args{Port: 1, PluginUUID: "u", RegisterEvent: "r"}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = runtime.Run(ctx, p, args,
		runtime.WithURL("ws://127.0.0.1:1"),
		runtime.WithDialAttempts(1),
	)
	require.Error(t, err)
}
