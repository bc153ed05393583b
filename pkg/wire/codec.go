// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package wire

import (
	"encoding/json"

	"github.com/samber/oops"
)

// rawEvent is the top-level shape of every inbound frame.
type rawEvent struct {
	Event      string          `json:"event"`
	Action     string          `json:"action"`
	Context    string          `json:"context"`
	Device     string          `json:"device"`
	DeviceInfo json.RawMessage `json:"deviceInfo"`
	Payload    json.RawMessage `json:"payload"`
}

// rawPayload is a superset of every event payload; each decode picks the
// fields it needs.
type rawPayload struct {
	Settings        map[string]any   `json:"settings"`
	Controller      string           `json:"controller"`
	Coordinates     *Coordinates     `json:"coordinates"`
	IsInMultiAction bool             `json:"isInMultiAction"`
	State           *State           `json:"state"`
	Title           string           `json:"title"`
	TitleParameters *TitleParameters `json:"titleParameters"`
	Hold            bool             `json:"hold"`
	TapPos          []int            `json:"tapPos"`
	Pressed         bool             `json:"pressed"`
	Ticks           int              `json:"ticks"`
	Application     string           `json:"application"`
	URL             string           `json:"url"`
}

// DecodeEvent parses one inbound frame. Unknown event names return an
// error; the reader logs and skips those frames.
func DecodeEvent(data []byte) (Event, error) {
	var raw rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, oops.In("wire").Wrapf(err, "parsing inbound frame")
	}
	if raw.Event == "" {
		return nil, oops.In("wire").Errorf("inbound frame has no event field")
	}

	var p rawPayload
	if len(raw.Payload) > 0 {
		if err := json.Unmarshal(raw.Payload, &p); err != nil {
			return nil, oops.In("wire").With("event", raw.Event).Wrapf(err, "parsing payload")
		}
	}
	if p.Settings == nil {
		p.Settings = map[string]any{}
	}

	tile := Tile{Action: raw.Action, Context: raw.Context, Device: raw.Device}

	switch raw.Event {
	case "willAppear":
		return WillAppear{Tile: tile, Settings: p.Settings, Controller: p.Controller,
			IsInMultiAction: p.IsInMultiAction, State: p.State, Coordinates: p.Coordinates}, nil
	case "willDisappear":
		return WillDisappear{Tile: tile, Settings: p.Settings, Controller: p.Controller,
			IsInMultiAction: p.IsInMultiAction, State: p.State, Coordinates: p.Coordinates}, nil
	case "keyDown":
		return KeyDown{Tile: tile, Settings: p.Settings, Controller: keypadDefault(p.Controller),
			IsInMultiAction: p.IsInMultiAction, State: p.State, Coordinates: p.Coordinates}, nil
	case "keyUp":
		return KeyUp{Tile: tile, Settings: p.Settings, Controller: keypadDefault(p.Controller),
			IsInMultiAction: p.IsInMultiAction, State: p.State, Coordinates: p.Coordinates}, nil
	case "didReceiveSettings":
		return DidReceiveSettings{Tile: tile, Settings: p.Settings, Controller: p.Controller,
			IsInMultiAction: p.IsInMultiAction, State: p.State, Coordinates: p.Coordinates}, nil
	case "dialDown":
		return DialDown{Tile: tile, Settings: p.Settings, Controller: p.Controller,
			Coordinates: deref(p.Coordinates)}, nil
	case "dialUp":
		return DialUp{Tile: tile, Settings: p.Settings, Controller: p.Controller,
			Coordinates: deref(p.Coordinates)}, nil
	case "dialRotate":
		return DialRotate{Tile: tile, Settings: p.Settings, Controller: p.Controller,
			Coordinates: deref(p.Coordinates), Ticks: p.Ticks, Pressed: p.Pressed}, nil
	case "touchTap":
		ev := TouchTap{Tile: tile, Settings: p.Settings, Controller: p.Controller,
			Coordinates: deref(p.Coordinates), Hold: p.Hold}
		if len(p.TapPos) == 2 {
			ev.TapPos = [2]int{p.TapPos[0], p.TapPos[1]}
		}
		return ev, nil
	case "titleParametersDidChange":
		ev := TitleParametersDidChange{Tile: tile, Settings: p.Settings, Controller: p.Controller,
			Coordinates: deref(p.Coordinates), State: p.State, Title: p.Title}
		if p.TitleParameters != nil {
			ev.TitleParameters = *p.TitleParameters
		}
		return ev, nil
	case "propertyInspectorDidAppear":
		return PropertyInspectorDidAppear{Tile: tile}, nil
	case "propertyInspectorDidDisappear":
		return PropertyInspectorDidDisappear{Tile: tile}, nil
	case "sendToPlugin":
		payload := map[string]any{}
		if len(raw.Payload) > 0 {
			if err := json.Unmarshal(raw.Payload, &payload); err != nil {
				return nil, oops.In("wire").With("event", raw.Event).Wrapf(err, "parsing payload")
			}
		}
		return DidReceivePropertyInspectorMessage{Action: raw.Action, Context: raw.Context, Payload: payload}, nil
	case "applicationDidLaunch":
		return ApplicationDidLaunch{Application: p.Application}, nil
	case "applicationDidTerminate":
		return ApplicationDidTerminate{Application: p.Application}, nil
	case "deviceDidConnect":
		info, err := decodeDeviceInfo(raw.DeviceInfo)
		if err != nil {
			return nil, err
		}
		return DeviceDidConnect{Device: raw.Device, Info: info}, nil
	case "deviceDidDisconnect":
		return DeviceDidDisconnect{Device: raw.Device}, nil
	case "deviceDidChange":
		info, err := decodeDeviceInfo(raw.DeviceInfo)
		if err != nil {
			return nil, err
		}
		return DeviceDidChange{Device: raw.Device, Info: info}, nil
	case "didReceiveDeepLink":
		return DidReceiveDeepLink{URL: p.URL}, nil
	case "didReceiveGlobalSettings":
		return DidReceiveGlobalSettings{Settings: p.Settings}, nil
	case "systemDidWakeUp":
		return SystemDidWakeUp{}, nil
	default:
		return nil, oops.In("wire").With("event", raw.Event).Errorf("unknown event")
	}
}

func decodeDeviceInfo(data json.RawMessage) (DeviceInfo, error) {
	var info DeviceInfo
	if len(data) == 0 {
		return info, oops.In("wire").Errorf("missing deviceInfo")
	}
	if err := json.Unmarshal(data, &info); err != nil {
		return info, oops.In("wire").Wrapf(err, "parsing deviceInfo")
	}
	return info, nil
}

// keypadDefault fills in the controller for hosts that omit it on key events.
func keypadDefault(controller string) string {
	if controller == "" {
		return "Keypad"
	}
	return controller
}

func deref(c *Coordinates) Coordinates {
	if c == nil {
		return Coordinates{}
	}
	return *c
}

// wireCommand is the outbound frame shape.
type wireCommand struct {
	Event   string `json:"event"`
	Context string `json:"context,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// EncodeCommand serializes an outbound command to one wire frame.
func EncodeCommand(c Command) ([]byte, error) {
	frame := wireCommand{Event: c.event()}

	switch cmd := c.(type) {
	case GetGlobalSettings:
		frame.Context = cmd.Context
	case GetSettings:
		frame.Context = cmd.Context
	case LogMessage:
		frame.Payload = map[string]any{"message": cmd.Message}
	case OpenURL:
		frame.Payload = map[string]any{"url": cmd.URL}
	case SendToPropertyInspector:
		frame.Context = cmd.Context
		frame.Payload = cmd.Payload
	case SetFeedback:
		frame.Context = cmd.Context
		frame.Payload = cmd.Payload
	case SetFeedbackLayout:
		frame.Context = cmd.Context
		frame.Payload = map[string]any{"layout": cmd.Layout}
	case SetGlobalSettings:
		frame.Context = cmd.Context
		frame.Payload = cmd.Settings
	case SetImage:
		frame.Context = cmd.Context
		frame.Payload = setImagePayload{Image: cmd.Image, State: cmd.State, Target: cmd.Target}
	case SetSettings:
		frame.Context = cmd.Context
		frame.Payload = cmd.Settings
	case SetState:
		frame.Context = cmd.Context
		frame.Payload = map[string]any{"state": cmd.State}
	case SetTitle:
		frame.Context = cmd.Context
		frame.Payload = setTitlePayload{Title: cmd.Title, State: cmd.State, Target: cmd.Target}
	case SetTriggerDescription:
		frame.Context = cmd.Context
		frame.Payload = cmd.Description
	case ShowAlert:
		frame.Context = cmd.Context
	case ShowOK:
		frame.Context = cmd.Context
	default:
		return nil, oops.In("wire").With("command", c.event()).Errorf("unknown command type")
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return nil, oops.In("wire").With("command", c.event()).Wrap(err)
	}
	return data, nil
}

type setTitlePayload struct {
	Title  *string `json:"title"`
	State  *State  `json:"state,omitempty"`
	Target Target  `json:"target,omitempty"`
}

type setImagePayload struct {
	Image  *string `json:"image"`
	State  *State  `json:"state,omitempty"`
	Target Target  `json:"target,omitempty"`
}
