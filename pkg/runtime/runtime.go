// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package runtime hosts a plugin: it dials the controller, registers, and
// runs the single-threaded event loop that owns all action and adapter
// state. Everything else in the process talks to the loop through the bus.
package runtime

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/tilekit/tilekit/internal/observability"
	"github.com/tilekit/tilekit/pkg/adapter"
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/errutil"
	"github.com/tilekit/tilekit/pkg/hook"
	"github.com/tilekit/tilekit/pkg/host"
	"github.com/tilekit/tilekit/pkg/launch"
	"github.com/tilekit/tilekit/pkg/plugin"
	"github.com/tilekit/tilekit/pkg/wire"
)

// RunPlugin is the batteries-included entrypoint: it parses the
// controller's launch arguments from os.Args and serves the plugin.
func RunPlugin(ctx context.Context, p *plugin.Plugin, opts ...Option) error {
	args, err := launch.ParseOS()
	if err != nil {
		return err
	}
	return Run(ctx, p, args, opts...)
}

// Run connects to the controller and serves the plugin until the
// connection drops, the controller closes it, or ctx is cancelled. It
// blocks for the lifetime of the plugin process.
func Run(ctx context.Context, p *plugin.Plugin, args launch.Args, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	var metrics *observability.Metrics
	var connected atomic.Bool
	if o.metricsAddr != "" {
		obs := observability.NewServer(o.metricsAddr, connected.Load)
		if _, err := obs.Start(); err != nil {
			errutil.LogError(logger, "observability server failed to start", err)
		} else {
			metrics = obs.Metrics()
			defer func() {
				stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = obs.Stop(stopCtx)
			}()
		}
	}

	url := o.url
	if url == "" {
		url = args.URL()
	}
	c, err := dialConn(ctx, url, o.dialAttempts)
	if err != nil {
		return err
	}
	defer c.close()

	frame, err := args.Registration()
	if err != nil {
		return err
	}
	if err := c.write(ctx, frame); err != nil {
		return err
	}
	connected.Store(true)
	logger.Info("registered with controller",
		"url", url, "pluginUUID", args.PluginUUID)

	emitter := bus.NewEmitter(o.queueCapacity)
	client := wire.NewClient(emitter, args.PluginUUID)
	cx := p.NewContext(client, args.PluginUUID, emitter)

	l := &loop{
		cx:       cx,
		emitter:  emitter,
		conn:     c,
		hooks:    p.Hooks(),
		actions:  newActionManager(p.Actions(), logger),
		adapters: newAdapterManager(p.Adapters(), o.debounce, o.inboxCapacity, logger),
		burst:    o.sendBurst,
		logger:   logger,
		metrics:  metrics,
	}

	// Reader goroutine: decode frames and feed the queue. Any read error,
	// including a clean close, turns into an Exit.
	rctx, stopReader := context.WithCancel(ctx)
	defer stopReader()
	go l.readFrames(rctx)

	l.hooks.Fire(cx, hook.Init{})
	client.GetGlobalSettings()
	l.adapters.startWhere(cx, emitter, adapter.ByPolicy(adapter.Eager))

	return l.run(ctx, o.quiet)
}

// loop is the runtime's single consumer. Every field is owned by the loop
// goroutine once run starts.
type loop struct {
	cx       *host.Context
	emitter  *bus.Emitter
	conn     *conn
	hooks    *hook.Hooks
	actions  *actionManager
	adapters *adapterManager

	// pending holds commands awaiting a socket write, oldest first. A
	// failed write puts the command back at the front.
	pending []wire.Command

	burst   int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// A reader panic is logged and the goroutine stops: inbound events cease
// but the loop keeps serving adapters and outbound traffic. Only a read
// error or close is fatal.
func (l *loop) readFrames(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("reader panicked, inbound events stopped", "panic", r)
		}
	}()
	for {
		data, err := l.conn.read(ctx)
		if err != nil {
			if ctx.Err() == nil {
				errutil.LogError(l.logger, "connection closed", err)
			}
			l.emitter.Post(bus.Exit{})
			return
		}
		ev, err := wire.DecodeEvent(data)
		if err != nil {
			errutil.LogError(l.logger, "skipping undecodable frame", err)
			continue
		}
		l.emitter.Post(bus.Incoming{Event: ev})
	}
}

func (l *loop) run(ctx context.Context, quiet time.Duration) error {
	defer l.shutdown(ctx)

	timer := time.NewTimer(quiet)
	defer timer.Stop()

	for {
		select {
		case msg := <-l.emitter.Queue():
			if exit := l.handle(ctx, msg); exit {
				return nil
			}
		case <-timer.C:
			l.tick(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(quiet)
	}
}

// handle processes one queue message. Listeners observe every message
// before the built-in handling runs.
func (l *loop) handle(ctx context.Context, msg bus.Message) (exit bool) {
	switch m := msg.(type) {
	case bus.Incoming:
		if l.metrics != nil {
			l.metrics.EventsTotal.WithLabelValues(m.Event.Kind()).Inc()
		}
		l.hooks.Fire(l.cx, hook.Incoming{Event: m.Event})
		l.bookkeep(m.Event)
		if !l.actions.dispatch(l.cx, m.Event) {
			l.actions.broadcastGlobal(l.cx, m.Event)
		}
	case bus.Outgoing:
		l.hooks.Fire(l.cx, hook.Outgoing{Command: m.Command})
		l.pending = append(l.pending, m.Command)
		if len(l.pending) == 1 {
			l.flush(ctx)
		}
	case bus.LogRecord:
		l.hooks.Fire(l.cx, hook.Log{Level: m.Level, Message: m.Message})
		l.logger.Log(ctx, m.Level, m.Message)
	case bus.Publish:
		l.actions.notifyTopic(l.cx, m.Envelope)
		l.adapters.notifyTopic(m.Envelope)
	case bus.ActionNotify:
		l.hooks.Fire(l.cx, hook.ActionNotify{Target: m.Target, Envelope: m.Envelope})
		l.actions.notifyTarget(l.cx, m.Target, m.Envelope)
	case bus.AdapterNotify:
		l.hooks.Fire(l.cx, hook.AdapterNotify{Target: m.Target, Envelope: m.Envelope})
		l.adapters.notifyTarget(m.Target, m.Envelope)
	case bus.AdapterCommand:
		l.hooks.Fire(l.cx, hook.AdapterControl{Control: m.Control})
		l.adapters.control(l.cx, l.emitter, m.Control)
	case bus.Exit:
		return true
	}
	l.gauge()
	return false
}

// bookkeep applies built-in handling for events the runtime itself reacts
// to, firing the matching listener event first.
func (l *loop) bookkeep(e wire.Event) {
	switch ev := e.(type) {
	case wire.ApplicationDidLaunch:
		l.hooks.Fire(l.cx, hook.AppLaunched{Application: ev.Application})
		l.adapters.onAppLaunch(l.cx, l.emitter)
	case wire.ApplicationDidTerminate:
		l.hooks.Fire(l.cx, hook.AppTerminated{Application: ev.Application})
		l.adapters.onAppTerminate()
	case wire.DeviceDidConnect:
		l.hooks.Fire(l.cx, hook.DeviceConnected{Device: ev.Device, Info: ev.Info})
	case wire.DeviceDidDisconnect:
		l.hooks.Fire(l.cx, hook.DeviceDisconnected{Device: ev.Device})
	case wire.DeviceDidChange:
		l.hooks.Fire(l.cx, hook.DeviceChanged{Device: ev.Device, Info: ev.Info})
	case wire.DidReceiveDeepLink:
		l.hooks.Fire(l.cx, hook.DeepLink{URL: ev.URL})
	case wire.DidReceiveGlobalSettings:
		l.cx.Globals().Hydrate(ev.Settings)
		l.hooks.Fire(l.cx, hook.GlobalSettings{Settings: ev.Settings})
	}
}

// tick runs the idle turn: debounce deadlines and any commands still
// waiting on the socket.
func (l *loop) tick(ctx context.Context) {
	l.hooks.Fire(l.cx, hook.Tick{})
	l.adapters.tick()
	l.flush(ctx)
	l.gauge()
}

// flush writes up to burst pending commands. A failed write requeues the
// command at the front and ends the turn; the next tick retries.
func (l *loop) flush(ctx context.Context) {
	for i := 0; i < l.burst && len(l.pending) > 0; i++ {
		cmd := l.pending[0]
		l.pending = l.pending[1:]

		data, err := wire.EncodeCommand(cmd)
		if err != nil {
			errutil.LogError(l.logger, "dropping unencodable command", err)
			continue
		}
		if err := l.conn.write(ctx, data); err != nil {
			l.pending = append([]wire.Command{cmd}, l.pending...)
			if l.metrics != nil {
				l.metrics.SendFailures.Inc()
			}
			errutil.LogError(l.logger, "command write failed, will retry", err)
			return
		}
		if l.metrics != nil {
			l.metrics.CommandsTotal.WithLabelValues(wire.CommandName(cmd)).Inc()
		}
	}
	if n := len(l.pending); n >= bus.DefaultQueueCapacity {
		l.logger.Warn("outbound backlog growing", "pending", n)
	}
}

func (l *loop) gauge() {
	if l.metrics == nil {
		return
	}
	l.metrics.ActionsLive.Set(float64(l.actions.count()))
	l.metrics.AdaptersRunning.Set(float64(l.adapters.count()))
}

// shutdown drains what it can and stops everything.
func (l *loop) shutdown(ctx context.Context) {
	l.hooks.Fire(l.cx, hook.Exit{})
	l.flush(ctx)
	l.adapters.shutdown()
	l.logger.Info("runtime stopped")
}
