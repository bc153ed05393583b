// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package bus carries typed notifications between adapters, actions and
// the runtime loop. Producers on any goroutine enqueue messages; the loop
// goroutine is the single consumer.
package bus

import "github.com/oklog/ulid/v2"

// Topic pairs a broadcast channel name with its payload type at the call
// site. Consumers must present the same topic value (name and type) to
// extract a payload; a name match alone is not enough.
type Topic[T any] struct {
	name string
}

// NewTopic creates a topic tag. Declare topics as package-level variables
// shared between producer and consumer:
//
//	var VolumeChanged = bus.NewTopic[int]("volume.changed")
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

// Name returns the topic's broadcast channel name.
func (t Topic[T]) Name() string { return t.name }

// Envelope is a type-erased notification: a topic name, an opaque payload
// and a ULID for log correlation.
type Envelope struct {
	id      ulid.ULID
	name    string
	payload any
}

// New seals a payload into an envelope under the given topic.
func New[T any](topic Topic[T], value T) *Envelope {
	return &Envelope{id: ulid.Make(), name: topic.name, payload: value}
}

// ID returns the envelope's unique id.
func (e *Envelope) ID() ulid.ULID { return e.id }

// Name returns the topic name the envelope was sealed under.
func (e *Envelope) Name() string { return e.name }

// Open extracts the payload if both the topic name and the payload type
// match. Two topics sharing a name but differing in payload type cannot
// read each other's envelopes.
func Open[T any](e *Envelope, topic Topic[T]) (T, bool) {
	var zero T
	if e == nil || e.name != topic.name {
		return zero, false
	}
	v, ok := e.payload.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Is reports whether the envelope matches the topic's name and type.
func Is[T any](e *Envelope, topic Topic[T]) bool {
	_, ok := Open(e, topic)
	return ok
}
