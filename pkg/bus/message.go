// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package bus

import (
	"log/slog"

	"github.com/tilekit/tilekit/pkg/wire"
)

// Message is the union of everything that can arrive at the runtime loop.
// All variants are produced through the Emitter except Incoming, which the
// wire reader posts directly.
type Message interface {
	isMessage()
}

// Incoming carries one decoded event from the controller.
type Incoming struct {
	Event wire.Event
}

// Outgoing requests one command be sent to the controller.
type Outgoing struct {
	Command wire.Command
}

// LogRecord carries a log line from a worker goroutine to the loop, which
// forwards it to listeners and the log sink.
type LogRecord struct {
	Level   slog.Level
	Message string
}

// Publish fans an envelope out to every topic subscriber: action
// instances indexed under the topic and running adapters tagged with it.
type Publish struct {
	Envelope *Envelope
}

// ActionNotify fans an envelope out to action instances by target.
type ActionNotify struct {
	Target   ActionTarget
	Envelope *Envelope
}

// AdapterNotify pushes an envelope into running adapters' inboxes by target.
type AdapterNotify struct {
	Target   AdapterTarget
	Envelope *Envelope
}

// AdapterCommand starts, stops or restarts adapters by target.
type AdapterCommand struct {
	Control Control
}

// Exit asks the loop to shut down.
type Exit struct{}

func (Incoming) isMessage()       {}
func (Outgoing) isMessage()       {}
func (LogRecord) isMessage()      {}
func (Publish) isMessage()        {}
func (ActionNotify) isMessage()   {}
func (AdapterNotify) isMessage()  {}
func (AdapterCommand) isMessage() {}
func (Exit) isMessage()           {}
