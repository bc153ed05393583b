// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package bus

import (
	"log/slog"

	"github.com/tilekit/tilekit/pkg/wire"
)

// DefaultQueueCapacity is the loop queue depth used when no override is given.
const DefaultQueueCapacity = 256

// Bus is the thread-safe facade producers use to talk to the runtime loop.
// Every call enqueues a message and returns; fan-out happens later on the
// loop goroutine. Safe to call from any goroutine.
type Bus interface {
	// Send queues an outbound command to the controller.
	Send(cmd wire.Command)
	// Log queues a log record for the loop to forward at the given level.
	Log(level slog.Level, msg string)
	// Publish queues a broadcast to every subscriber of the envelope's topic.
	Publish(env *Envelope)
	// NotifyActions queues a targeted notification to action instances.
	NotifyActions(target ActionTarget, env *Envelope)
	// NotifyAdapters queues a targeted notification to adapter inboxes.
	NotifyAdapters(target AdapterTarget, env *Envelope)
	// Control queues an adapter start/stop/restart command.
	Control(ctl Control)
}

// Emitter implements Bus over the loop's message queue. If the queue is
// full the message is dropped with a warning rather than blocking the
// producer.
type Emitter struct {
	queue chan Message
}

// NewEmitter creates an emitter with its own queue of the given capacity.
// Capacity <= 0 uses DefaultQueueCapacity.
func NewEmitter(capacity int) *Emitter {
	if capacity <= 0 {
		capacity = DefaultQueueCapacity
	}
	return &Emitter{queue: make(chan Message, capacity)}
}

// Queue exposes the receive side for the runtime loop, the single consumer.
func (e *Emitter) Queue() <-chan Message { return e.queue }

// Post enqueues any runtime message. Used by the wire reader for Incoming
// and Exit; the typed Bus methods are preferred everywhere else.
func (e *Emitter) Post(msg Message) {
	select {
	case e.queue <- msg:
	default:
		slog.Warn("runtime queue full, message dropped",
			"message", messageKind(msg))
	}
}

// Send implements Bus and wire.Sender.
func (e *Emitter) Send(cmd wire.Command) {
	e.Post(Outgoing{Command: cmd})
}

// Log implements Bus.
func (e *Emitter) Log(level slog.Level, msg string) {
	e.Post(LogRecord{Level: level, Message: msg})
}

// Publish implements Bus.
func (e *Emitter) Publish(env *Envelope) {
	e.Post(Publish{Envelope: env})
}

// NotifyActions implements Bus.
func (e *Emitter) NotifyActions(target ActionTarget, env *Envelope) {
	e.Post(ActionNotify{Target: target, Envelope: env})
}

// NotifyAdapters implements Bus.
func (e *Emitter) NotifyAdapters(target AdapterTarget, env *Envelope) {
	e.Post(AdapterNotify{Target: target, Envelope: env})
}

// Control implements Bus.
func (e *Emitter) Control(ctl Control) {
	e.Post(AdapterCommand{Control: ctl})
}

func messageKind(msg Message) string {
	switch m := msg.(type) {
	case Incoming:
		if m.Event != nil {
			return "incoming:" + m.Event.Kind()
		}
		return "incoming"
	case Outgoing:
		return "outgoing:" + wire.CommandName(m.Command)
	case LogRecord:
		return "log"
	case Publish:
		return "publish"
	case ActionNotify:
		return "action-notify"
	case AdapterNotify:
		return "adapter-notify"
	case AdapterCommand:
		return "adapter-control"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// PublishTopic seals value under topic and broadcasts it.
func PublishTopic[T any](b Bus, topic Topic[T], value T) {
	b.Publish(New(topic, value))
}

// NotifyActions seals value under topic and notifies action instances by
// target.
func NotifyActions[T any](b Bus, target ActionTarget, topic Topic[T], value T) {
	b.NotifyActions(target, New(topic, value))
}

// NotifyAllActions notifies every live action instance.
func NotifyAllActions[T any](b Bus, topic Topic[T], value T) {
	NotifyActions(b, AllActions(), topic, value)
}

// NotifyActionContext notifies the instance bound to one tile context.
func NotifyActionContext[T any](b Bus, context string, topic Topic[T], value T) {
	NotifyActions(b, ActionContext(context), topic, value)
}

// NotifyActionID notifies every live instance of one action type.
func NotifyActionID[T any](b Bus, id string, topic Topic[T], value T) {
	NotifyActions(b, ActionID(id), topic, value)
}

// NotifyAdapters seals value under topic and notifies running adapters by
// target.
func NotifyAdapters[T any](b Bus, target AdapterTarget, topic Topic[T], value T) {
	b.NotifyAdapters(target, New(topic, value))
}

// NotifyAllAdapters notifies every running adapter.
func NotifyAllAdapters[T any](b Bus, topic Topic[T], value T) {
	NotifyAdapters(b, AllAdapters(), topic, value)
}

// NotifyAdaptersByPolicy notifies running adapters with one start policy.
func NotifyAdaptersByPolicy[T any](b Bus, p StartPolicy, topic Topic[T], value T) {
	NotifyAdapters(b, AdapterPolicy(p), topic, value)
}

// NotifyAdapterByName notifies the running adapter with one name.
func NotifyAdapterByName[T any](b Bus, name string, topic Topic[T], value T) {
	NotifyAdapters(b, AdapterName(name), topic, value)
}

// NotifyAdaptersByLabel notifies running adapters carrying one label.
func NotifyAdaptersByLabel[T any](b Bus, label string, topic Topic[T], value T) {
	NotifyAdapters(b, AdapterLabel(label), topic, value)
}

// NotifyAdaptersByTopic notifies running adapters subscribed to the
// envelope's topic. Publish reaches the same adapters plus subscribed
// actions; prefer it for broadcasts.
func NotifyAdaptersByTopic[T any](b Bus, topic Topic[T], value T) {
	NotifyAdapters(b, AdapterTopic(topic.Name()), topic, value)
}
