// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package adapter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tilekit/tilekit/pkg/adapter"
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/host"
)

// fake is a minimal adapter for predicate tests.
type fake struct {
	adapter.Base
	name   string
	policy adapter.StartPolicy
	topics []string
	labels []string
}

func (f *fake) Name() string                { return f.name }
func (f *fake) Policy() adapter.StartPolicy { return f.policy }
func (f *fake) Topics() []string            { return f.topics }
func (f *fake) Labels() []string            { return f.labels }

func (f *fake) Start(*host.Context, bus.Bus, <-chan *bus.Envelope) (*adapter.Handle, error) {
	return adapter.FromShutdown(func() {}), nil
}

func TestPredicates(t *testing.T) {
	a := &fake{
		name:   "media-poller",
		policy: adapter.OnAppLaunch,
		topics: []string{"volume.changed"},
		labels: []string{"poll-media", "media"},
	}

	assert.True(t, adapter.All()(a))
	assert.True(t, adapter.ByPolicy(adapter.OnAppLaunch)(a))
	assert.False(t, adapter.ByPolicy(adapter.Eager)(a))
	assert.True(t, adapter.ByName("media-poller")(a))
	assert.False(t, adapter.ByName("other")(a))
	assert.True(t, adapter.ByTopic("volume.changed")(a))
	assert.False(t, adapter.ByTopic("other")(a))
	assert.True(t, adapter.ByLabel("media")(a))
	assert.False(t, adapter.ByLabel("poll")(a))
}

func TestByLabelGlob(t *testing.T) {
	a := &fake{name: "x", labels: []string{"poll-media"}}

	assert.True(t, adapter.ByLabelGlob("poll-*")(a))
	assert.False(t, adapter.ByLabelGlob("watch-*")(a))
	assert.Panics(t, func() { adapter.ByLabelGlob("[") })
}

func TestBase_Defaults(t *testing.T) {
	var b adapter.Base
	assert.Equal(t, adapter.Eager, b.Policy())
	assert.Nil(t, b.Topics())
	assert.Nil(t, b.Labels())
}

func TestHandle_ShutdownJoins(t *testing.T) {
	done := make(chan struct{})
	stopped := false
	h := adapter.NewHandle(done, func() {
		stopped = true
		close(done)
	})

	start := time.Now()
	h.Shutdown()
	assert.True(t, stopped)
	assert.Less(t, time.Since(start), time.Second, "join must return once done closes")
}

func TestHandle_ShutdownNilSafe(t *testing.T) {
	var h *adapter.Handle
	h.Shutdown() // must not panic

	adapter.FromShutdown(func() {}).Shutdown()

	done := make(chan struct{})
	close(done)
	adapter.FromDone(done).Shutdown()
}
