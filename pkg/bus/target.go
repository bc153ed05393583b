// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package bus

import "fmt"

// StartPolicy decides when the runtime starts and stops an adapter.
type StartPolicy uint8

const (
	// Eager adapters start with the runtime and stop when it exits.
	Eager StartPolicy = iota
	// OnAppLaunch adapters start when a monitored application opens and
	// stop, after a debounce, when the last one quits.
	OnAppLaunch
	// Manual adapters only start and stop through explicit control messages.
	Manual
)

func (p StartPolicy) String() string {
	switch p {
	case Eager:
		return "eager"
	case OnAppLaunch:
		return "on-app-launch"
	case Manual:
		return "manual"
	default:
		return "unknown"
	}
}

// ActionTargetKind discriminates ActionTarget.
type ActionTargetKind uint8

const (
	// ActionAll addresses every live action instance.
	ActionAll ActionTargetKind = iota
	// ActionByContext addresses the single instance bound to one tile.
	ActionByContext
	// ActionByID addresses every instance of one action type.
	ActionByID
)

// ActionTarget selects which live action instances receive a notification.
type ActionTarget struct {
	Kind    ActionTargetKind
	Context string
	ID      string
}

// AllActions addresses every live action instance.
func AllActions() ActionTarget { return ActionTarget{Kind: ActionAll} }

// ActionContext addresses the instance bound to one tile context, if any.
func ActionContext(context string) ActionTarget {
	return ActionTarget{Kind: ActionByContext, Context: context}
}

// ActionID addresses every live instance of one action type.
func ActionID(id string) ActionTarget {
	return ActionTarget{Kind: ActionByID, ID: id}
}

func (t ActionTarget) String() string {
	switch t.Kind {
	case ActionByContext:
		return "context:" + t.Context
	case ActionByID:
		return "id:" + t.ID
	default:
		return "all"
	}
}

// AdapterTargetKind discriminates AdapterTarget.
type AdapterTargetKind uint8

const (
	// AdapterAll addresses every running adapter.
	AdapterAll AdapterTargetKind = iota
	// AdapterByPolicy addresses running adapters with one start policy.
	AdapterByPolicy
	// AdapterByName addresses the running adapter with one name.
	AdapterByName
	// AdapterByLabel addresses running adapters carrying one label tag.
	AdapterByLabel
	// AdapterByTopic addresses running adapters subscribed to one topic.
	AdapterByTopic
)

// AdapterTarget selects which running adapters a notification or control
// command applies to.
type AdapterTarget struct {
	Kind   AdapterTargetKind
	Policy StartPolicy
	Name   string
	Label  string
	Topic  string
}

// AllAdapters addresses every running adapter.
func AllAdapters() AdapterTarget { return AdapterTarget{Kind: AdapterAll} }

// AdapterPolicy addresses adapters with the given start policy.
func AdapterPolicy(p StartPolicy) AdapterTarget {
	return AdapterTarget{Kind: AdapterByPolicy, Policy: p}
}

// AdapterName addresses the adapter registered under the given name.
func AdapterName(name string) AdapterTarget {
	return AdapterTarget{Kind: AdapterByName, Name: name}
}

// AdapterLabel addresses adapters carrying the given label tag.
func AdapterLabel(label string) AdapterTarget {
	return AdapterTarget{Kind: AdapterByLabel, Label: label}
}

// AdapterTopic addresses adapters subscribed to the given topic name.
func AdapterTopic(topic string) AdapterTarget {
	return AdapterTarget{Kind: AdapterByTopic, Topic: topic}
}

func (t AdapterTarget) String() string {
	switch t.Kind {
	case AdapterByPolicy:
		return "policy:" + t.Policy.String()
	case AdapterByName:
		return "name:" + t.Name
	case AdapterByLabel:
		return "label:" + t.Label
	case AdapterByTopic:
		return "topic:" + t.Topic
	default:
		return "all"
	}
}

// ControlVerb is an adapter lifecycle command.
type ControlVerb uint8

const (
	// ControlStart starts matching registered adapters.
	ControlStart ControlVerb = iota
	// ControlStop stops matching running adapters.
	ControlStop
	// ControlRestart stops then starts matching adapters.
	ControlRestart
)

func (v ControlVerb) String() string {
	switch v {
	case ControlStart:
		return "start"
	case ControlStop:
		return "stop"
	case ControlRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Control pairs a lifecycle verb with an adapter target.
type Control struct {
	Verb   ControlVerb
	Target AdapterTarget
}

// StartAdapters builds a start control command.
func StartAdapters(t AdapterTarget) Control { return Control{Verb: ControlStart, Target: t} }

// StopAdapters builds a stop control command.
func StopAdapters(t AdapterTarget) Control { return Control{Verb: ControlStop, Target: t} }

// RestartAdapters builds a restart control command.
func RestartAdapters(t AdapterTarget) Control { return Control{Verb: ControlRestart, Target: t} }

func (c Control) String() string {
	return fmt.Sprintf("%s(%s)", c.Verb, c.Target)
}
