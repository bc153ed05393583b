// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package input models synthesized keyboard and mouse input: typed step
// sequences, a macro DSL for describing them, and an executor that plays
// them through a platform synthesizer.
package input

import "time"

// Scan identifies a key by hardware scan code. Extended marks keys from
// the extended set (arrows, right-side modifiers, navigation cluster).
type Scan struct {
	Code     uint16
	Extended bool
}

// MouseButton identifies a pointer button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// Step is one unit of synthesized input.
type Step interface {
	isStep()
}

// KeyDown presses a key.
type KeyDown struct{ Scan Scan }

// KeyUp releases a key.
type KeyUp struct{ Scan Scan }

// MouseDown presses a pointer button.
type MouseDown struct{ Button MouseButton }

// MouseUp releases a pointer button.
type MouseUp struct{ Button MouseButton }

// Sleep pauses playback.
type Sleep struct{ Duration time.Duration }

func (KeyDown) isStep()   {}
func (KeyUp) isStep()     {}
func (MouseDown) isStep() {}
func (MouseUp) isStep()   {}
func (Sleep) isStep()     {}

// Tap presses and releases the keys of a chord: downs in order, ups in
// reverse, so modifiers wrap the final key.
func Tap(keys ...Scan) []Step {
	steps := make([]Step, 0, 2*len(keys))
	for _, k := range keys {
		steps = append(steps, KeyDown{Scan: k})
	}
	for i := len(keys) - 1; i >= 0; i-- {
		steps = append(steps, KeyUp{Scan: keys[i]})
	}
	return steps
}

// Hold presses the keys of a chord, waits, then releases in reverse.
func Hold(d time.Duration, keys ...Scan) []Step {
	steps := make([]Step, 0, 2*len(keys)+1)
	for _, k := range keys {
		steps = append(steps, KeyDown{Scan: k})
	}
	steps = append(steps, Sleep{Duration: d})
	for i := len(keys) - 1; i >= 0; i-- {
		steps = append(steps, KeyUp{Scan: keys[i]})
	}
	return steps
}

// ClickN clicks a pointer button n times.
func ClickN(b MouseButton, n int) []Step {
	steps := make([]Step, 0, 2*n)
	for i := 0; i < n; i++ {
		steps = append(steps, MouseDown{Button: b}, MouseUp{Button: b})
	}
	return steps
}
