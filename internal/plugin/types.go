// Package plugin discovers action plugins and runs them over a JSON
// stdin/stdout protocol.
package plugin

import "encoding/json"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name         string          `json:"name"`
	Version      string          `json:"version"`
	Description  string          `json:"description"`
	Executable   string          `json:"executable"`
	Actions      []string        `json:"actions"`
	ConfigSchema json.RawMessage `json:"configSchema,omitempty"`
}

// Supports reports whether the manifest lists name among its actions. A
// manifest without an action list accepts anything.
func (m Manifest) Supports(name string) bool {
	if len(m.Actions) == 0 {
		return true
	}
	for _, a := range m.Actions {
		if a == name {
			return true
		}
	}
	return false
}

// Request is written to the plugin's stdin.
type Request struct {
	// Action is the plugin action to run, e.g. "volume-up".
	Action string `json:"action"`
	// Trigger is the dispatched action kind that caused the request.
	Trigger string          `json:"trigger"`
	Config  json.RawMessage `json:"config,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response is read from the plugin's stdout.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
	// Config is the plugin's config.json, sent with every request.
	Config json.RawMessage
}
