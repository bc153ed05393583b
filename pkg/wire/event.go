// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package wire

// Event is an inbound message from the controller, keyed by its wire
// `event` field. Concrete types carry the decoded payload.
type Event interface {
	// Kind returns the wire name of the event.
	Kind() string
}

// Tile identifies the action instance an event is addressed to.
type Tile struct {
	Action  string
	Context string
	Device  string
}

// WillAppear fires when a tile becomes visible.
type WillAppear struct {
	Tile
	Settings        map[string]any
	Controller      string
	IsInMultiAction bool
	State           *State
	Coordinates     *Coordinates
}

// WillDisappear fires when a tile is removed from view.
type WillDisappear struct {
	Tile
	Settings        map[string]any
	Controller      string
	IsInMultiAction bool
	State           *State
	Coordinates     *Coordinates
}

// KeyDown fires when a keypad tile is pressed.
type KeyDown struct {
	Tile
	Settings        map[string]any
	Controller      string
	IsInMultiAction bool
	State           *State
	Coordinates     *Coordinates
}

// KeyUp fires when a keypad tile is released.
type KeyUp struct {
	Tile
	Settings        map[string]any
	Controller      string
	IsInMultiAction bool
	State           *State
	Coordinates     *Coordinates
}

// DidReceiveSettings delivers a tile's persisted settings snapshot.
type DidReceiveSettings struct {
	Tile
	Settings        map[string]any
	Controller      string
	IsInMultiAction bool
	State           *State
	Coordinates     *Coordinates
}

// DialDown fires when an encoder is pressed.
type DialDown struct {
	Tile
	Settings    map[string]any
	Controller  string
	Coordinates Coordinates
}

// DialUp fires when an encoder is released.
type DialUp struct {
	Tile
	Settings    map[string]any
	Controller  string
	Coordinates Coordinates
}

// DialRotate fires when an encoder is turned.
type DialRotate struct {
	Tile
	Settings    map[string]any
	Controller  string
	Coordinates Coordinates
	Ticks       int
	Pressed     bool
}

// TouchTap fires when a touch strip is tapped.
type TouchTap struct {
	Tile
	Settings    map[string]any
	Controller  string
	Coordinates Coordinates
	Hold        bool
	TapPos      [2]int
}

// TitleParametersDidChange fires when the user restyles a tile's title.
type TitleParametersDidChange struct {
	Tile
	Settings        map[string]any
	Controller      string
	Coordinates     Coordinates
	State           *State
	Title           string
	TitleParameters TitleParameters
}

// PropertyInspectorDidAppear fires when a tile's inspector UI opens.
type PropertyInspectorDidAppear struct {
	Tile
}

// PropertyInspectorDidDisappear fires when a tile's inspector UI closes.
type PropertyInspectorDidDisappear struct {
	Tile
}

// DidReceivePropertyInspectorMessage carries an arbitrary payload the
// inspector UI sent to the plugin.
type DidReceivePropertyInspectorMessage struct {
	Action  string
	Context string
	Payload map[string]any
}

// ApplicationDidLaunch fires when a monitored application opens.
type ApplicationDidLaunch struct {
	Application string
}

// ApplicationDidTerminate fires when a monitored application quits.
type ApplicationDidTerminate struct {
	Application string
}

// DeviceDidConnect fires when a device is plugged in.
type DeviceDidConnect struct {
	Device string
	Info   DeviceInfo
}

// DeviceDidDisconnect fires when a device is unplugged.
type DeviceDidDisconnect struct {
	Device string
}

// DeviceDidChange fires when a device's properties change.
type DeviceDidChange struct {
	Device string
	Info   DeviceInfo
}

// DidReceiveDeepLink carries a deep-link URL routed to this plugin.
type DidReceiveDeepLink struct {
	URL string
}

// DidReceiveGlobalSettings delivers the plugin-wide settings snapshot.
type DidReceiveGlobalSettings struct {
	Settings map[string]any
}

// SystemDidWakeUp fires when the machine wakes from sleep.
type SystemDidWakeUp struct{}

func (WillAppear) Kind() string                         { return "willAppear" }
func (WillDisappear) Kind() string                      { return "willDisappear" }
func (KeyDown) Kind() string                            { return "keyDown" }
func (KeyUp) Kind() string                              { return "keyUp" }
func (DidReceiveSettings) Kind() string                 { return "didReceiveSettings" }
func (DialDown) Kind() string                           { return "dialDown" }
func (DialUp) Kind() string                             { return "dialUp" }
func (DialRotate) Kind() string                         { return "dialRotate" }
func (TouchTap) Kind() string                           { return "touchTap" }
func (TitleParametersDidChange) Kind() string           { return "titleParametersDidChange" }
func (PropertyInspectorDidAppear) Kind() string         { return "propertyInspectorDidAppear" }
func (PropertyInspectorDidDisappear) Kind() string      { return "propertyInspectorDidDisappear" }
func (DidReceivePropertyInspectorMessage) Kind() string { return "sendToPlugin" }
func (ApplicationDidLaunch) Kind() string               { return "applicationDidLaunch" }
func (ApplicationDidTerminate) Kind() string            { return "applicationDidTerminate" }
func (DeviceDidConnect) Kind() string                   { return "deviceDidConnect" }
func (DeviceDidDisconnect) Kind() string                { return "deviceDidDisconnect" }
func (DeviceDidChange) Kind() string                    { return "deviceDidChange" }
func (DidReceiveDeepLink) Kind() string                 { return "didReceiveDeepLink" }
func (DidReceiveGlobalSettings) Kind() string           { return "didReceiveGlobalSettings" }
func (SystemDidWakeUp) Kind() string                    { return "systemDidWakeUp" }
