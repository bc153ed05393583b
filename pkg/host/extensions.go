// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package host

import (
	"fmt"
	"reflect"
	"sync"
)

// Extensions is a type-indexed store for plugin-specific shared state.
// Provide a value once at assembly time; fetch it anywhere by its type.
type Extensions struct {
	mu     sync.RWMutex
	values map[reflect.Type]any
}

// NewExtensions creates an empty extension store.
func NewExtensions() *Extensions {
	return &Extensions{values: map[reflect.Type]any{}}
}

// Provide registers value under its concrete type, replacing any earlier
// value of the same type.
func Provide[T any](x *Extensions, value T) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.values[reflect.TypeFor[T]()] = value
}

// Ext fetches the value registered for type T.
func Ext[T any](x *Extensions) (T, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	v, ok := x.values[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// MustExt fetches the value registered for type T and panics if absent.
// For extensions the plugin cannot function without.
func MustExt[T any](x *Extensions) T {
	v, ok := Ext[T](x)
	if !ok {
		panic(fmt.Sprintf("host: missing required extension %v", reflect.TypeFor[T]()))
	}
	return v
}
