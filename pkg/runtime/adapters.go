// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package runtime

import (
	"log/slog"
	"time"

	"github.com/tilekit/tilekit/pkg/adapter"
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/errutil"
	"github.com/tilekit/tilekit/pkg/host"
)

// DefaultStopDebounce is how long the last monitored application must stay
// closed before on-app-launch adapters are stopped. Fast relaunches keep
// them running.
const DefaultStopDebounce = 250 * time.Millisecond

// DefaultInboxCapacity is the per-adapter envelope inbox depth.
const DefaultInboxCapacity = 16

// runningAdapter pairs a started adapter with its inbox and stop handle.
type runningAdapter struct {
	adapter adapter.Adapter
	inbox   chan *bus.Envelope
	handle  *adapter.Handle
}

// adapterManager owns adapter lifecycles. All methods run on the loop
// goroutine. Lookup indexes are rebuilt wholesale after stops; starts
// append incrementally.
type adapterManager struct {
	registry []adapter.Adapter
	running  map[string]*runningAdapter
	byTopic  map[string][]*runningAdapter
	byLabel  map[string][]*runningAdapter

	appsUp   int
	stopDue  time.Time
	debounce time.Duration

	inboxCap int
	logger   *slog.Logger
	now      func() time.Time
}

func newAdapterManager(registry []adapter.Adapter, debounce time.Duration, inboxCap int, logger *slog.Logger) *adapterManager {
	if debounce <= 0 {
		debounce = DefaultStopDebounce
	}
	if inboxCap <= 0 {
		inboxCap = DefaultInboxCapacity
	}
	return &adapterManager{
		registry: registry,
		running:  make(map[string]*runningAdapter),
		byTopic:  make(map[string][]*runningAdapter),
		byLabel:  make(map[string][]*runningAdapter),
		debounce: debounce,
		inboxCap: inboxCap,
		logger:   logger,
		now:      time.Now,
	}
}

// startWhere starts every registered adapter matching pred that is not
// already running. A start error leaves that adapter stopped; the rest
// still start.
func (m *adapterManager) startWhere(cx *host.Context, b bus.Bus, pred adapter.Predicate) {
	for _, a := range m.registry {
		if !pred(a) {
			continue
		}
		if _, up := m.running[a.Name()]; up {
			continue
		}
		inbox := make(chan *bus.Envelope, m.inboxCap)
		handle, err := a.Start(cx, b, inbox)
		if err != nil {
			errutil.LogError(m.logger, "adapter failed to start", err)
			continue
		}
		ra := &runningAdapter{adapter: a, inbox: inbox, handle: handle}
		m.running[a.Name()] = ra
		for _, topic := range a.Topics() {
			m.byTopic[topic] = append(m.byTopic[topic], ra)
		}
		for _, label := range a.Labels() {
			m.byLabel[label] = append(m.byLabel[label], ra)
		}
		m.logger.Info("adapter started",
			"adapter", a.Name(), "policy", a.Policy().String())
	}
}

// stopWhere stops every running adapter matching pred: the inbox is closed
// so channel-driven workers wind down, then the handle is shut down with a
// bounded join. Indexes are rebuilt from the survivors.
func (m *adapterManager) stopWhere(pred adapter.Predicate) {
	stopped := false
	for name, ra := range m.running {
		if !pred(ra.adapter) {
			continue
		}
		delete(m.running, name)
		close(ra.inbox)
		ra.handle.Shutdown()
		m.logger.Info("adapter stopped", "adapter", name)
		stopped = true
	}
	if stopped {
		m.reindex()
	}
}

func (m *adapterManager) reindex() {
	m.byTopic = make(map[string][]*runningAdapter)
	m.byLabel = make(map[string][]*runningAdapter)
	for _, ra := range m.running {
		for _, topic := range ra.adapter.Topics() {
			m.byTopic[topic] = append(m.byTopic[topic], ra)
		}
		for _, label := range ra.adapter.Labels() {
			m.byLabel[label] = append(m.byLabel[label], ra)
		}
	}
}

// control applies a start/stop/restart command.
func (m *adapterManager) control(cx *host.Context, b bus.Bus, ctl bus.Control) {
	pred := predicateFor(ctl.Target)
	switch ctl.Verb {
	case bus.ControlStart:
		m.startWhere(cx, b, pred)
	case bus.ControlStop:
		m.stopWhere(pred)
	case bus.ControlRestart:
		m.stopWhere(pred)
		m.startWhere(cx, b, pred)
	}
}

func predicateFor(t bus.AdapterTarget) adapter.Predicate {
	switch t.Kind {
	case bus.AdapterByPolicy:
		return adapter.ByPolicy(t.Policy)
	case bus.AdapterByName:
		return adapter.ByName(t.Name)
	case bus.AdapterByLabel:
		return adapter.ByLabel(t.Label)
	case bus.AdapterByTopic:
		return adapter.ByTopic(t.Topic)
	default:
		return adapter.All()
	}
}

// notifyTopic pushes a broadcast envelope into the inbox of every running
// adapter subscribed to its topic.
func (m *adapterManager) notifyTopic(env *bus.Envelope) {
	for _, ra := range m.byTopic[env.Name()] {
		m.push(ra, env)
	}
}

// notifyTarget pushes a targeted envelope into the addressed inboxes.
func (m *adapterManager) notifyTarget(target bus.AdapterTarget, env *bus.Envelope) {
	switch target.Kind {
	case bus.AdapterByName:
		if ra, ok := m.running[target.Name]; ok {
			m.push(ra, env)
		}
	case bus.AdapterByLabel:
		for _, ra := range m.byLabel[target.Label] {
			m.push(ra, env)
		}
	case bus.AdapterByTopic:
		for _, ra := range m.byTopic[target.Topic] {
			m.push(ra, env)
		}
	case bus.AdapterByPolicy:
		for _, ra := range m.running {
			if ra.adapter.Policy() == target.Policy {
				m.push(ra, env)
			}
		}
	default:
		for _, ra := range m.running {
			m.push(ra, env)
		}
	}
}

// push delivers without blocking the loop. A full inbox drops the envelope.
func (m *adapterManager) push(ra *runningAdapter, env *bus.Envelope) {
	select {
	case ra.inbox <- env:
	default:
		m.logger.Warn("adapter inbox full, envelope dropped",
			"adapter", ra.adapter.Name(), "topic", env.Name())
	}
}

// onAppLaunch tracks a monitored application opening. The first open
// cancels any pending stop and starts on-app-launch adapters.
func (m *adapterManager) onAppLaunch(cx *host.Context, b bus.Bus) {
	m.appsUp++
	m.stopDue = time.Time{}
	if m.appsUp == 1 {
		m.startWhere(cx, b, adapter.ByPolicy(adapter.OnAppLaunch))
	}
}

// onAppTerminate tracks a monitored application quitting. When the last
// one quits, the stop is armed rather than executed; tick fires it after
// the debounce unless another launch arrives first.
func (m *adapterManager) onAppTerminate() {
	if m.appsUp > 0 {
		m.appsUp--
	}
	if m.appsUp == 0 {
		m.stopDue = m.now().Add(m.debounce)
	}
}

// tick executes an armed stop once the debounce has elapsed.
func (m *adapterManager) tick() {
	if m.stopDue.IsZero() || m.appsUp > 0 {
		return
	}
	if m.now().Before(m.stopDue) {
		return
	}
	m.stopDue = time.Time{}
	m.stopWhere(adapter.ByPolicy(adapter.OnAppLaunch))
}

// shutdown stops everything still running.
func (m *adapterManager) shutdown() {
	m.stopWhere(adapter.All())
}

// count reports how many adapters are running.
func (m *adapterManager) count() int { return len(m.running) }
