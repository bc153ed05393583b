// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package wire defines the typed event/command vocabulary exchanged with
// the controller application, plus the JSON codec and a thin client facade.
package wire

// State is a zero-based state index for multi-state actions.
type State uint8

// Target selects which representation of a tile an update applies to.
type Target string

// Update targets accepted by set-title and set-image commands.
const (
	TargetBoth     Target = "both"
	TargetHardware Target = "hardware"
	TargetSoftware Target = "software"
)

// Coordinates locate a tile on a device grid.
type Coordinates struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// Size is a device grid size in tiles.
type Size struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// DeviceInfo describes a connected device.
type DeviceInfo struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	Size Size   `json:"size"`
}

// TitleParameters carries the user's title styling for a tile.
type TitleParameters struct {
	FontFamily     string `json:"fontFamily"`
	FontSize       int    `json:"fontSize"`
	FontStyle      string `json:"fontStyle"`
	FontUnderline  bool   `json:"fontUnderline"`
	ShowTitle      bool   `json:"showTitle"`
	TitleAlignment string `json:"titleAlignment"`
	TitleColor     string `json:"titleColor"`
}

// TriggerDescription describes dial/touch interactions for the tooltip
// shown by the controller UI. Nil fields leave the default text in place.
type TriggerDescription struct {
	LongTouch *string `json:"longTouch,omitempty"`
	Push      *string `json:"push,omitempty"`
	Rotate    *string `json:"rotate,omitempty"`
	Touch     *string `json:"touch,omitempty"`
}
