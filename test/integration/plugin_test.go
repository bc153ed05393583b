// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

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

const tallyID = "com.tilekit.itest.tally"

var pings = bus.NewTopic[string]("itest.pings")

// tally mirrors the counter example: key presses count up, the dial
// resets, and ping notifications flash the tile.
type tally struct {
	action.Base
	count int
}

func (a *tally) Topics() []string { return []string{pings.Name()} }

func (a *tally) WillAppear(cx *host.Context, ev *wire.WillAppear) {
	if v, ok := ev.Settings["count"].(float64); ok {
		a.count = int(v)
	}
	cx.Client().SetTitle(ev.Context, strconv.Itoa(a.count))
}

func (a *tally) KeyDown(cx *host.Context, ev *wire.KeyDown) {
	a.count++
	cx.Client().SetSettings(ev.Context, map[string]any{"count": a.count})
	cx.Client().SetTitle(ev.Context, strconv.Itoa(a.count))
}

func (a *tally) DialDown(cx *host.Context, ev *wire.DialDown) {
	a.count = 0
	cx.Client().SetTitle(ev.Context, "0")
}

func (a *tally) OnNotify(cx *host.Context, tileContext string, env *bus.Envelope) {
	if _, ok := bus.Open(env, pings); ok {
		cx.Client().ShowOK(tileContext)
	}
}

// pinger publishes one ping when started and reports its lifecycle.
type pinger struct {
	adapter.Base
	lifecycle chan string
}

func (a *pinger) Name() string                { return "pinger" }
func (a *pinger) Policy() adapter.StartPolicy { return adapter.OnAppLaunch }

func (a *pinger) Start(_ *host.Context, b bus.Bus, inbox <-chan *bus.Envelope) (*adapter.Handle, error) {
	a.lifecycle <- "started"
	bus.PublishTopic(b, pings, "hello")
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range inbox {
		}
		a.lifecycle <- "stopped"
	}()
	return adapter.FromDone(done), nil
}

type hostFrame struct {
	Event   string          `json:"event"`
	Context string          `json:"context"`
	Payload json.RawMessage `json:"payload"`
}

var _ = Describe("Plugin runtime", func() {
	var (
		h         *mockhost.Host
		lifecycle chan string
		runDone   chan error
		cancel    context.CancelFunc
	)

	nextFrame := func(event string) hostFrame {
		var f hostFrame
		EventuallyWithOffset(1, func() string {
			select {
			case raw := <-h.Frames():
				if err := json.Unmarshal(raw, &f); err != nil {
					return ""
				}
				return f.Event
			case <-time.After(50 * time.Millisecond):
				return ""
			}
		}, 5*time.Second).Should(Equal(event))
		return f
	}

	BeforeEach(func() {
		var err error
		h, err = mockhost.Listen("127.0.0.1:0", nil)
		Expect(err).NotTo(HaveOccurred())

		lifecycle = make(chan string, 8)
		p, err := plugin.NewBuilder().
			AddAction(action.NewFactory(tallyID, func() action.Action { return &tally{} })).
			AddAdapter(&pinger{lifecycle: lifecycle}).
			Build()
		Expect(err).NotTo(HaveOccurred())

		args := launch.Args{
			Port:          h.Port(),
			PluginUUID:    "itest-uuid",
			RegisterEvent: "registerPlugin",
		}

		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		runDone = make(chan error, 1)
		go func() {
			runDone <- runtime.Run(ctx, p, args,
				runtime.WithURL(h.URL()),
				runtime.WithQuietInterval(10*time.Millisecond),
				runtime.WithStopDebounce(50*time.Millisecond),
			)
		}()

		Eventually(h.Registered(), 5*time.Second).Should(Receive())
		nextFrame("getGlobalSettings")
	})

	AfterEach(func() {
		h.Close()
		Eventually(runDone, 5*time.Second).Should(Receive())
		cancel()
	})

	It("counts key presses and resets on dial press", func() {
		ctx := context.Background()

		Expect(h.SendTileEvent(ctx, "willAppear", tallyID, "tile-1", map[string]any{
			"settings": map[string]any{"count": float64(2)},
		})).To(Succeed())
		f := nextFrame("setTitle")
		Expect(f.Context).To(Equal("tile-1"))

		Expect(h.SendTileEvent(ctx, "keyDown", tallyID, "tile-1", nil)).To(Succeed())
		nextFrame("setSettings")
		f = nextFrame("setTitle")
		Expect(string(f.Payload)).To(ContainSubstring(`"3"`))

		Expect(h.SendTileEvent(ctx, "dialDown", tallyID, "tile-1", nil)).To(Succeed())
		f = nextFrame("setTitle")
		Expect(string(f.Payload)).To(ContainSubstring(`"0"`))
	})

	It("starts the adapter on app launch and pings subscribed tiles", func() {
		ctx := context.Background()

		Expect(h.SendTileEvent(ctx, "willAppear", tallyID, "tile-1", map[string]any{
			"settings": map[string]any{},
		})).To(Succeed())
		nextFrame("setTitle")

		Expect(h.SendAppEvent(ctx, "applicationDidLaunch", "com.example.app")).To(Succeed())
		Eventually(lifecycle, 5*time.Second).Should(Receive(Equal("started")))
		nextFrame("showOk")

		Expect(h.SendAppEvent(ctx, "applicationDidTerminate", "com.example.app")).To(Succeed())
		Eventually(lifecycle, 5*time.Second).Should(Receive(Equal("stopped")))
	})

	It("round-trips global settings through the host", func() {
		ctx := context.Background()

		Expect(h.Send(ctx, map[string]any{
			"event":   "didReceiveGlobalSettings",
			"payload": map[string]any{"settings": map[string]any{"theme": "dark"}},
		})).To(Succeed())

		Expect(h.SendTileEvent(ctx, "willAppear", tallyID, "tile-1", map[string]any{
			"settings": map[string]any{},
		})).To(Succeed())
		nextFrame("setTitle")
	})
})
