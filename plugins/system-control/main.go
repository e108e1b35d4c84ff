// Command system-control is the mudra plugin for media play/pause and volume
// steps. It uses AppleScript on macOS and playerctl/pactl on Linux.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Request represents the input from the plugin executor.
type Request struct {
	Action  string          `json:"action"`
	Trigger string          `json:"trigger"`
	Config  json.RawMessage `json:"config"`
	Params  json.RawMessage `json:"params"`
}

// VolumeParams sets the volume step in percent.
type VolumeParams struct {
	Step int `json:"step"`
}

const defaultStep = 2

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// backend drives media and volume on one platform.
type backend interface {
	playPause() error
	// changeVolume moves the output volume by delta percent.
	changeVolume(delta int) error
}

type actionHandler func(b backend, params json.RawMessage) error

var actionHandlers = map[string]actionHandler{
	"media-play-pause": func(b backend, _ json.RawMessage) error { return b.playPause() },
	"volume-up":        func(b backend, p json.RawMessage) error { return changeVolume(b, p, +1) },
	"volume-down":      func(b backend, p json.RawMessage) error { return changeVolume(b, p, -1) },
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	handler, ok := actionHandlers[req.Action]
	if !ok {
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	b, err := platformBackend(runtime.GOOS)
	if err != nil {
		writeErrorResponse(err.Error())
		return
	}
	if err := handler(b, req.Params); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

// changeVolume applies a step of sign direction. A missing or non-positive
// step falls back to defaultStep.
func changeVolume(b backend, params json.RawMessage, sign int) error {
	p := VolumeParams{Step: defaultStep}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return fmt.Errorf("failed to parse params: %w", err)
		}
	}
	if p.Step <= 0 {
		p.Step = defaultStep
	}
	return b.changeVolume(sign * p.Step)
}

func platformBackend(goos string) (backend, error) {
	switch goos {
	case "darwin":
		return macBackend{}, nil
	case "linux":
		return linuxBackend{}, nil
	}
	return nil, fmt.Errorf("system-control plugin does not support %s", goos)
}

type macBackend struct{}

// Key code 100 is the F8 play/pause media key.
func (macBackend) playPause() error {
	_, err := run("osascript", "-e", `tell application "System Events" to key code 100`)
	return err
}

// macOS clamps the result to 0-100.
func (macBackend) changeVolume(delta int) error {
	_, err := run("osascript", "-e", volumeScript(delta))
	return err
}

func volumeScript(delta int) string {
	return fmt.Sprintf(`set volume output volume ((output volume of (get volume settings)) + %d)`, delta)
}

type linuxBackend struct{}

func (linuxBackend) playPause() error {
	_, err := run("playerctl", "play-pause")
	return err
}

func (linuxBackend) changeVolume(delta int) error {
	_, err := run("pactl", "set-sink-volume", "@DEFAULT_SINK@", pactlDelta(delta))
	return err
}

// pactlDelta formats delta as a relative pactl volume, e.g. "+2%".
func pactlDelta(delta int) string {
	return fmt.Sprintf("%+d%%", delta)
}

func run(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

func writeErrorResponse(errMsg string) {
	json.NewEncoder(os.Stdout).Encode(Response{Success: false, Error: errMsg})
}

func writeSuccessResponse() {
	json.NewEncoder(os.Stdout).Encode(Response{Success: true})
}
