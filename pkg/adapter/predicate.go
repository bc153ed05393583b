// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package adapter

import (
	"slices"

	"github.com/gobwas/glob"
)

// Predicate selects registered adapters for bulk start/stop/restart.
type Predicate func(Adapter) bool

// All matches every adapter.
func All() Predicate {
	return func(Adapter) bool { return true }
}

// ByPolicy matches adapters with the given start policy.
func ByPolicy(p StartPolicy) Predicate {
	return func(a Adapter) bool { return a.Policy() == p }
}

// ByName matches the adapter registered under name.
func ByName(name string) Predicate {
	return func(a Adapter) bool { return a.Name() == name }
}

// ByTopic matches adapters subscribed to topic.
func ByTopic(topic string) Predicate {
	return func(a Adapter) bool { return slices.Contains(a.Topics(), topic) }
}

// ByLabel matches adapters carrying label.
func ByLabel(label string) Predicate {
	return func(a Adapter) bool { return slices.Contains(a.Labels(), label) }
}

// ByLabelGlob matches adapters with any label matching the glob pattern,
// e.g. "poll-*". Panics on an invalid pattern, like regexp.MustCompile.
func ByLabelGlob(pattern string) Predicate {
	g := glob.MustCompile(pattern)
	return func(a Adapter) bool {
		return slices.ContainsFunc(a.Labels(), g.Match)
	}
}
