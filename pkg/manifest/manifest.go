// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

// Package manifest parses and validates manifest.json files, the static
// descriptor the controller reads before launching a plugin.
package manifest

import (
	"encoding/json"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
)

// Manifest represents a manifest.json file.
type Manifest struct {
	UUID        string `json:"UUID"`
	Name        string `json:"Name"`
	Version     string `json:"Version"`
	Author      string `json:"Author,omitempty"`
	Description string `json:"Description,omitempty"`
	Icon        string `json:"Icon,omitempty"`
	CodePath    string `json:"CodePath"`
	SDKVersion  int    `json:"SDKVersion"`

	Software Software `json:"Software"`
	OS       []OS     `json:"OS,omitempty"`

	Actions []ActionEntry `json:"Actions"`

	ApplicationsToMonitor map[string][]string `json:"ApplicationsToMonitor,omitempty"`
}

// Software pins the minimum controller version the plugin needs.
type Software struct {
	MinimumVersion string `json:"MinimumVersion"`
}

// OS declares a supported platform.
type OS struct {
	Platform       string `json:"Platform"`
	MinimumVersion string `json:"MinimumVersion,omitempty"`
}

// ActionEntry describes one action type the plugin provides.
type ActionEntry struct {
	UUID                    string       `json:"UUID"`
	Name                    string       `json:"Name"`
	Icon                    string       `json:"Icon,omitempty"`
	Tooltip                 string       `json:"Tooltip,omitempty"`
	PropertyInspectorPath   string       `json:"PropertyInspectorPath,omitempty"`
	Controllers             []string     `json:"Controllers,omitempty"`
	SupportedInMultiActions *bool        `json:"SupportedInMultiActions,omitempty"`
	States                  []StateEntry `json:"States"`
}

// StateEntry describes one visual state of an action.
type StateEntry struct {
	Image     string `json:"Image"`
	Name      string `json:"Name,omitempty"`
	Title     string `json:"Title,omitempty"`
	ShowTitle *bool  `json:"ShowTitle,omitempty"`
}

// uuidPattern validates reverse-DNS identifiers like "com.example.counter".
// Segments are lowercase alphanumerics with inner hyphens, at least two
// segments deep.
var uuidPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?(\.[a-z0-9]([a-z0-9-]*[a-z0-9])?)+$`)

// Parse parses and validates a manifest.json file.
func Parse(data []byte) (*Manifest, error) {
	errb := oops.In("manifest")
	if len(data) == 0 {
		return nil, errb.Errorf("manifest data is empty")
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errb.Wrapf(err, "invalid JSON")
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks manifest constraints.
func (m *Manifest) Validate() error {
	errb := oops.In("manifest")

	if m.UUID == "" || !uuidPattern.MatchString(m.UUID) {
		return errb.With("uuid", m.UUID).
			Errorf("UUID must be a reverse-DNS identifier like com.example.plugin")
	}
	if m.Name == "" {
		return errb.Errorf("Name is required")
	}
	if m.CodePath == "" {
		return errb.Errorf("CodePath is required")
	}
	if m.SDKVersion < 1 {
		return errb.With("sdkVersion", m.SDKVersion).Errorf("SDKVersion must be at least 1")
	}

	if _, err := semver.StrictNewVersion(m.Version); err != nil {
		return errb.With("version", m.Version).Wrapf(err, "Version must be strict semver")
	}
	if m.Software.MinimumVersion == "" {
		return errb.Errorf("Software.MinimumVersion is required")
	}
	if _, err := semver.NewVersion(m.Software.MinimumVersion); err != nil {
		return errb.With("minimumVersion", m.Software.MinimumVersion).
			Wrapf(err, "Software.MinimumVersion must be a version")
	}

	if len(m.Actions) == 0 {
		return errb.Errorf("at least one action is required")
	}
	seen := make(map[string]struct{}, len(m.Actions))
	for _, a := range m.Actions {
		if a.UUID == "" || !uuidPattern.MatchString(a.UUID) {
			return errb.With("action", a.UUID).
				Errorf("action UUID must be a reverse-DNS identifier")
		}
		if _, dup := seen[a.UUID]; dup {
			return errb.With("action", a.UUID).Errorf("duplicate action UUID")
		}
		seen[a.UUID] = struct{}{}
		if a.Name == "" {
			return errb.With("action", a.UUID).Errorf("action Name is required")
		}
		if len(a.States) == 0 {
			return errb.With("action", a.UUID).Errorf("action needs at least one state")
		}
		for _, c := range a.Controllers {
			if c != "Keypad" && c != "Encoder" {
				return errb.With("action", a.UUID).With("controller", c).
					Errorf("controller must be Keypad or Encoder")
			}
		}
	}

	return nil
}

// SupportsSoftware reports whether a controller at version v satisfies the
// manifest's minimum.
func (m *Manifest) SupportsSoftware(v string) (bool, error) {
	errb := oops.In("manifest")
	have, err := semver.NewVersion(v)
	if err != nil {
		return false, errb.With("version", v).Wrap(err)
	}
	want, err := semver.NewVersion(m.Software.MinimumVersion)
	if err != nil {
		return false, errb.With("minimumVersion", m.Software.MinimumVersion).Wrap(err)
	}
	return !have.LessThan(want), nil
}

// MonitoredApplications returns the monitored application list for a
// platform key ("mac", "windows"), or nil.
func (m *Manifest) MonitoredApplications(platform string) []string {
	return m.ApplicationsToMonitor[platform]
}
