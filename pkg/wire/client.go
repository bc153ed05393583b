// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package wire

// Sender enqueues a command for delivery. Implemented by the runtime bus;
// calls return immediately and never block.
type Sender interface {
	Send(Command)
}

// Client is the typed command facade handed to actions and adapters.
// Every method enqueues and returns; delivery happens on the loop thread.
type Client struct {
	sender     Sender
	pluginUUID string
}

// NewClient creates a client bound to a plugin instance identifier.
func NewClient(sender Sender, pluginUUID string) *Client {
	return &Client{sender: sender, pluginUUID: pluginUUID}
}

// PluginUUID returns the plugin instance identifier.
func (c *Client) PluginUUID() string { return c.pluginUUID }

// GetGlobalSettings requests the plugin-wide settings snapshot. The
// controller answers with a didReceiveGlobalSettings event.
func (c *Client) GetGlobalSettings() {
	c.sender.Send(GetGlobalSettings{Context: c.pluginUUID})
}

// SetGlobalSettings replaces the plugin-wide settings.
func (c *Client) SetGlobalSettings(settings map[string]any) {
	c.sender.Send(SetGlobalSettings{Context: c.pluginUUID, Settings: settings})
}

// GetSettings requests one tile's persisted settings.
func (c *Client) GetSettings(context string) {
	c.sender.Send(GetSettings{Context: context})
}

// SetSettings replaces one tile's persisted settings.
func (c *Client) SetSettings(context string, settings map[string]any) {
	c.sender.Send(SetSettings{Context: context, Settings: settings})
}

// LogMessage writes a line to the controller's log file.
func (c *Client) LogMessage(message string) {
	c.sender.Send(LogMessage{Message: message})
}

// OpenURL opens a URL in the default browser.
func (c *Client) OpenURL(url string) {
	c.sender.Send(OpenURL{URL: url})
}

// SendToPropertyInspector forwards a payload to a tile's inspector UI.
func (c *Client) SendToPropertyInspector(context string, payload any) {
	c.sender.Send(SendToPropertyInspector{Context: context, Payload: payload})
}

// SetTitle sets a tile's title on both hardware and software.
func (c *Client) SetTitle(context, title string) {
	c.sender.Send(SetTitle{Context: context, Title: &title})
}

// ClearTitle resets a tile's title to the user-configured one.
func (c *Client) ClearTitle(context string) {
	c.sender.Send(SetTitle{Context: context})
}

// SetImage sets a tile's image from a path or base64 data URI.
func (c *Client) SetImage(context, image string) {
	c.sender.Send(SetImage{Context: context, Image: &image})
}

// ClearImage resets a tile's image to the manifest one.
func (c *Client) ClearImage(context string) {
	c.sender.Send(SetImage{Context: context})
}

// SetState forces a multi-state tile into a specific state.
func (c *Client) SetState(context string, state State) {
	c.sender.Send(SetState{Context: context, State: state})
}

// SetFeedback updates a touch-strip layout's values.
func (c *Client) SetFeedback(context string, payload any) {
	c.sender.Send(SetFeedback{Context: context, Payload: payload})
}

// SetFeedbackLayout switches a touch-strip tile to a named layout.
func (c *Client) SetFeedbackLayout(context, layout string) {
	c.sender.Send(SetFeedbackLayout{Context: context, Layout: layout})
}

// SetTriggerDescription updates the interaction tooltip for a dial tile.
func (c *Client) SetTriggerDescription(context string, desc TriggerDescription) {
	c.sender.Send(SetTriggerDescription{Context: context, Description: desc})
}

// ShowAlert flashes the warning glyph on a tile.
func (c *Client) ShowAlert(context string) {
	c.sender.Send(ShowAlert{Context: context})
}

// ShowOK flashes the confirmation glyph on a tile.
func (c *Client) ShowOK(context string) {
	c.sender.Send(ShowOK{Context: context})
}
