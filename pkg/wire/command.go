// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package wire

// Command is an outbound request to the controller, keyed by its wire
// `event` field on serialization.
type Command interface {
	event() string
}

// GetGlobalSettings requests the plugin-wide settings snapshot.
// Context must be the plugin instance identifier.
type GetGlobalSettings struct {
	Context string
}

// GetSettings requests one tile's persisted settings.
type GetSettings struct {
	Context string
}

// LogMessage writes a line to the controller's log file.
type LogMessage struct {
	Message string
}

// OpenURL opens a URL in the default browser.
type OpenURL struct {
	URL string
}

// SendToPropertyInspector forwards a payload to a tile's inspector UI.
type SendToPropertyInspector struct {
	Context string
	Payload any
}

// SetFeedback updates a touch-strip layout's values.
type SetFeedback struct {
	Context string
	Payload any
}

// SetFeedbackLayout switches a touch-strip tile to a named layout.
type SetFeedbackLayout struct {
	Context string
	Layout  string
}

// SetGlobalSettings replaces the plugin-wide settings.
// Context must be the plugin instance identifier.
type SetGlobalSettings struct {
	Context  string
	Settings map[string]any
}

// SetImage updates a tile's image. A nil Image resets to the manifest image.
type SetImage struct {
	Context string
	Image   *string
	State   *State
	Target  Target
}

// SetSettings replaces one tile's persisted settings.
type SetSettings struct {
	Context  string
	Settings map[string]any
}

// SetState forces a multi-state tile into a specific state.
type SetState struct {
	Context string
	State   State
}

// SetTitle updates a tile's title. A nil Title resets to the user's title.
type SetTitle struct {
	Context string
	Title   *string
	State   *State
	Target  Target
}

// SetTriggerDescription updates the interaction tooltip for a dial tile.
type SetTriggerDescription struct {
	Context     string
	Description TriggerDescription
}

// ShowAlert flashes the warning glyph on a tile.
type ShowAlert struct {
	Context string
}

// ShowOK flashes the confirmation glyph on a tile.
type ShowOK struct {
	Context string
}

func (GetGlobalSettings) event() string       { return "getGlobalSettings" }
func (GetSettings) event() string             { return "getSettings" }
func (LogMessage) event() string              { return "logMessage" }
func (OpenURL) event() string                 { return "openUrl" }
func (SendToPropertyInspector) event() string { return "sendToPropertyInspector" }
func (SetFeedback) event() string             { return "setFeedback" }
func (SetFeedbackLayout) event() string       { return "setFeedbackLayout" }
func (SetGlobalSettings) event() string       { return "setGlobalSettings" }
func (SetImage) event() string                { return "setImage" }
func (SetSettings) event() string             { return "setSettings" }
func (SetState) event() string                { return "setState" }
func (SetTitle) event() string                { return "setTitle" }
func (SetTriggerDescription) event() string   { return "setTriggerDescription" }
func (ShowAlert) event() string               { return "showAlert" }
func (ShowOK) event() string                  { return "showOk" }

// CommandName returns the wire name of a command, for hooks and logging.
func CommandName(c Command) string {
	if c == nil {
		return ""
	}
	return c.event()
}
