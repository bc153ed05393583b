// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package plugin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilekit/tilekit/pkg/action"
	"github.com/tilekit/tilekit/pkg/adapter"
	"github.com/tilekit/tilekit/pkg/bus"
	"github.com/tilekit/tilekit/pkg/hook"
	"github.com/tilekit/tilekit/pkg/host"
	"github.com/tilekit/tilekit/pkg/plugin"
)

type noopAction struct{ action.Base }

type namedAdapter struct {
	adapter.Base
	name string
}

func (a *namedAdapter) Name() string { return a.name }

func (a *namedAdapter) Start(*host.Context, bus.Bus, <-chan *bus.Envelope) (*adapter.Handle, error) {
	return adapter.FromShutdown(func() {}), nil
}

func TestBuild_Valid(t *testing.T) {
	fired := 0
	p, err := plugin.NewBuilder().
		AddAction(action.NewFactory("com.example.a", func() action.Action { return &noopAction{} })).
		AddAction(action.NewFactory("com.example.b", func() action.Action { return &noopAction{} })).
		AddAdapter(&namedAdapter{name: "poller"}).
		OnEvent(func(cx *host.Context, ev hook.Event) { fired++ }).
		Build()
	require.NoError(t, err)

	assert.Len(t, p.Actions(), 2)
	assert.Contains(t, p.Actions(), "com.example.a")
	assert.Len(t, p.Adapters(), 1)
	assert.Equal(t, 1, p.Hooks().Len())

	p.Hooks().Fire(nil, hook.Init{})
	assert.Equal(t, 1, fired)
}

func TestBuild_DuplicateActionID(t *testing.T) {
	_, err := plugin.NewBuilder().
		AddAction(action.NewFactory("com.example.a", func() action.Action { return &noopAction{} })).
		AddAction(action.NewFactory("com.example.a", func() action.Action { return &noopAction{} })).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate action id")
}

func TestBuild_BadFactories(t *testing.T) {
	_, err := plugin.NewBuilder().
		AddAction(action.Factory{ID: "", New: func() action.Action { return &noopAction{} }}).
		Build()
	require.Error(t, err)

	_, err = plugin.NewBuilder().
		AddAction(action.Factory{ID: "com.example.a"}).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil constructor")
}

func TestBuild_DuplicateAdapterName(t *testing.T) {
	_, err := plugin.NewBuilder().
		AddAdapter(&namedAdapter{name: "poller"}).
		AddAdapter(&namedAdapter{name: "poller"}).
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate adapter name")
}

func TestBuild_EmptyAdapterName(t *testing.T) {
	_, err := plugin.NewBuilder().
		AddAdapter(&namedAdapter{name: ""}).
		Build()
	require.Error(t, err)
}

func TestExtensions_SharedWithContext(t *testing.T) {
	b := plugin.NewBuilder()
	host.Provide(b.Extensions(), 42)

	p, err := b.Build()
	require.NoError(t, err)

	v, ok := host.Ext[int](p.Extensions())
	require.True(t, ok)
	assert.Equal(t, 42, v)

	cx := p.NewContext(nil, "uuid", nil)
	v = host.MustExt[int](cx.Extensions())
	assert.Equal(t, 42, v)
}
