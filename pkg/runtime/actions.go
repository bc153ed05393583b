// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package runtime

import (
	"log/slog"

	"github.com/tilekit/tilekit/pkg/action"
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/host"
	"github.com/tilekit/tilekit/pkg/wire"
)

// liveAction is one constructed action instance bound to a tile context.
type liveAction struct {
	id     string
	inst   action.Action
	topics []string
}

// actionManager owns the live action instances. All methods run on the
// loop goroutine; nothing here is safe for concurrent use.
type actionManager struct {
	factories map[string]action.Factory
	live      map[string]*liveAction            // tile context -> instance
	byTopic   map[string]map[string]*liveAction // topic -> tile context -> instance
	logger    *slog.Logger
}

func newActionManager(factories map[string]action.Factory, logger *slog.Logger) *actionManager {
	return &actionManager{
		factories: factories,
		live:      make(map[string]*liveAction),
		byTopic:   make(map[string]map[string]*liveAction),
		logger:    logger,
	}
}

// ensureReady returns the live instance for tileContext, constructing and
// initializing one on first sight. A context rebound to a different action
// type tears down the old instance first.
func (m *actionManager) ensureReady(cx *host.Context, id, tileContext string) *liveAction {
	if la, ok := m.live[tileContext]; ok {
		if la.id == id {
			return la
		}
		m.remove(cx, tileContext)
	}

	la := m.construct(id)
	if la == nil {
		return nil
	}
	m.live[tileContext] = la
	for _, topic := range la.topics {
		subs, ok := m.byTopic[topic]
		if !ok {
			subs = make(map[string]*liveAction)
			m.byTopic[topic] = subs
		}
		subs[tileContext] = la
	}
	la.inst.Init(cx, tileContext)
	return la
}

// forTeardown returns the live instance for tileContext if there is one.
// Otherwise it constructs a bare instance so the disappearance hooks still
// run, without Init and without topic subscriptions.
func (m *actionManager) forTeardown(id, tileContext string) *liveAction {
	if la, ok := m.live[tileContext]; ok {
		return la
	}
	la := m.construct(id)
	if la == nil {
		return nil
	}
	m.live[tileContext] = la
	return la
}

func (m *actionManager) construct(id string) *liveAction {
	f, ok := m.factories[id]
	if !ok {
		m.logger.Warn("event for unregistered action type", "action", id)
		return nil
	}
	inst := f.New()
	return &liveAction{id: id, inst: inst, topics: inst.Topics()}
}

// remove tears an instance down and drops it from every index.
func (m *actionManager) remove(cx *host.Context, tileContext string) {
	la, ok := m.live[tileContext]
	if !ok {
		return
	}
	for _, topic := range la.topics {
		if subs, ok := m.byTopic[topic]; ok {
			delete(subs, tileContext)
			if len(subs) == 0 {
				delete(m.byTopic, topic)
			}
		}
	}
	delete(m.live, tileContext)
	la.inst.Teardown(cx, tileContext)
}

// notifyTopic delivers a broadcast envelope to every instance subscribed
// to its topic.
func (m *actionManager) notifyTopic(cx *host.Context, env *bus.Envelope) {
	for tileContext, la := range m.byTopic[env.Name()] {
		la.inst.OnNotify(cx, tileContext, env)
	}
}

// notifyTarget delivers a targeted envelope to the addressed instances.
func (m *actionManager) notifyTarget(cx *host.Context, target bus.ActionTarget, env *bus.Envelope) {
	switch target.Kind {
	case bus.ActionByContext:
		if la, ok := m.live[target.Context]; ok {
			la.inst.OnNotify(cx, target.Context, env)
		}
	case bus.ActionByID:
		for tileContext, la := range m.live {
			if la.id == target.ID {
				la.inst.OnNotify(cx, tileContext, env)
			}
		}
	default:
		for tileContext, la := range m.live {
			la.inst.OnNotify(cx, tileContext, env)
		}
	}
}

// broadcastGlobal hands a non-tile event to every live instance.
func (m *actionManager) broadcastGlobal(cx *host.Context, ev wire.Event) {
	for _, la := range m.live {
		la.inst.OnGlobalEvent(cx, ev)
	}
}

// dispatch routes a tile-addressed event to its instance, creating one as
// needed. Returns false for events not addressed to a tile.
func (m *actionManager) dispatch(cx *host.Context, e wire.Event) bool {
	switch ev := e.(type) {
	case wire.WillAppear:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.WillAppear(cx, &ev)
		}
	case wire.WillDisappear:
		if la := m.forTeardown(ev.Action, ev.Context); la != nil {
			la.inst.WillDisappear(cx, &ev)
			m.remove(cx, ev.Context)
		}
	case wire.KeyDown:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.KeyDown(cx, &ev)
		}
	case wire.KeyUp:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.KeyUp(cx, &ev)
		}
	case wire.DialDown:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.DialDown(cx, &ev)
		}
	case wire.DialUp:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.DialUp(cx, &ev)
		}
	case wire.DialRotate:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.DialRotate(cx, &ev)
		}
	case wire.TouchTap:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.TouchTap(cx, &ev)
		}
	case wire.TitleParametersDidChange:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.TitleParametersDidChange(cx, &ev)
		}
	case wire.PropertyInspectorDidAppear:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.PropertyInspectorDidAppear(cx, &ev)
		}
	case wire.PropertyInspectorDidDisappear:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.PropertyInspectorDidDisappear(cx, &ev)
		}
	case wire.DidReceiveSettings:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.DidReceiveSettings(cx, &ev)
		}
	case wire.DidReceivePropertyInspectorMessage:
		if la := m.ensureReady(cx, ev.Action, ev.Context); la != nil {
			la.inst.DidReceivePropertyInspectorMessage(cx, &ev)
		}
	default:
		return false
	}
	return true
}

// count reports how many instances are live.
func (m *actionManager) count() int { return len(m.live) }
