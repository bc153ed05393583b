// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package input

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"
)

// Synthesizer injects input into the platform. Implementations live
// outside this package; tests use a recorder.
type Synthesizer interface {
	KeyDown(s Scan) error
	KeyUp(s Scan) error
	MouseDown(b MouseButton) error
	MouseUp(b MouseButton) error
}

// DefaultJobQueue is the executor's job buffer depth.
const DefaultJobQueue = 32

// Executor plays step sequences through a synthesizer on its own
// goroutine, one job at a time, so overlapping macros never interleave.
type Executor struct {
	synth  Synthesizer
	jobs   chan []Step
	done   chan struct{}
	logger *slog.Logger

	// sleep is swappable so tests do not wait out Sleep steps.
	sleep func(ctx context.Context, d time.Duration)
}

// NewExecutor creates an executor. Call Start before Submit.
func NewExecutor(synth Synthesizer, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		synth:  synth,
		jobs:   make(chan []Step, DefaultJobQueue),
		done:   make(chan struct{}),
		logger: logger,
		sleep:  sleepCtx,
	}
}

// Start launches the worker. It runs until ctx is cancelled.
func (e *Executor) Start(ctx context.Context) {
	go func() {
		defer close(e.done)
		for {
			select {
			case steps := <-e.jobs:
				e.play(ctx, steps)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Done is closed when the worker has stopped.
func (e *Executor) Done() <-chan struct{} { return e.done }

// Submit queues a step sequence. It fails rather than blocks when the
// queue is full.
func (e *Executor) Submit(steps []Step) error {
	select {
	case e.jobs <- steps:
		return nil
	default:
		return oops.In("input").Errorf("executor queue full")
	}
}

// play executes one job. A failing step aborts the rest of the job; keys
// already down get a best-effort release so nothing stays stuck.
func (e *Executor) play(ctx context.Context, steps []Step) {
	var held []Scan
	for _, step := range steps {
		if ctx.Err() != nil {
			break
		}
		var err error
		switch s := step.(type) {
		case KeyDown:
			if err = e.synth.KeyDown(s.Scan); err == nil {
				held = append(held, s.Scan)
			}
		case KeyUp:
			if err = e.synth.KeyUp(s.Scan); err == nil {
				held = removeScan(held, s.Scan)
			}
		case MouseDown:
			err = e.synth.MouseDown(s.Button)
		case MouseUp:
			err = e.synth.MouseUp(s.Button)
		case Sleep:
			e.sleep(ctx, s.Duration)
		}
		if err != nil {
			e.logger.Error("input step failed, aborting job", "error", err)
			break
		}
	}
	for i := len(held) - 1; i >= 0; i-- {
		if err := e.synth.KeyUp(held[i]); err != nil {
			e.logger.Warn("failed to release held key",
				"code", held[i].Code, "error", err)
		}
	}
}

func removeScan(scans []Scan, s Scan) []Scan {
	for i, have := range scans {
		if have == s {
			return append(scans[:i], scans[i+1:]...)
		}
	}
	return scans
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
