// Command keyboard is the mudra plugin that presses shortcuts such as zoom
// and close tab. It uses AppleScript on macOS and xdotool on Linux.
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

// Response represents the output to the plugin executor.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Shortcut is one key pressed with optional modifiers. Key is a single
// character or a named key such as "space" or "escape".
type Shortcut struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers"`
}

// modifier is a platform-neutral modifier key.
type modifier int

const (
	modCommand modifier = iota
	modOption
	modControl
	modShift
)

var modifierNames = map[string]modifier{
	"command": modCommand,
	"cmd":     modCommand,
	"super":   modCommand,
	"option":  modOption,
	"alt":     modOption,
	"control": modControl,
	"ctrl":    modControl,
	"shift":   modShift,
}

// backend presses shortcuts on one platform.
type backend interface {
	press(key string, mods []modifier) error
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	switch req.Action {
	case "shortcut", "keystroke":
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}

	b, err := platformBackend(runtime.GOOS)
	if err != nil {
		writeErrorResponse(err.Error())
		return
	}
	if err := handleShortcut(b, req.Params); err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

func handleShortcut(b backend, params json.RawMessage) error {
	var s Shortcut
	if err := json.Unmarshal(params, &s); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}
	if s.Key == "" {
		return fmt.Errorf("key is required")
	}
	mods, err := parseModifiers(s.Modifiers)
	if err != nil {
		return err
	}
	return b.press(strings.ToLower(s.Key), mods)
}

// parseModifiers resolves modifier names, dropping duplicates.
func parseModifiers(names []string) ([]modifier, error) {
	var mods []modifier
	seen := map[modifier]bool{}
	for _, name := range names {
		m, ok := modifierNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown modifier %q", name)
		}
		if !seen[m] {
			seen[m] = true
			mods = append(mods, m)
		}
	}
	return mods, nil
}

func platformBackend(goos string) (backend, error) {
	switch goos {
	case "darwin":
		return macBackend{}, nil
	case "linux":
		return xdoBackend{}, nil
	}
	return nil, fmt.Errorf("keyboard plugin does not support %s", goos)
}

type macBackend struct{}

func (macBackend) press(key string, mods []modifier) error {
	script, err := macScript(key, mods)
	if err != nil {
		return err
	}
	_, err = run("osascript", "-e", script)
	return err
}

// macKeyCodes are virtual key codes for keys AppleScript cannot type.
var macKeyCodes = map[string]int{
	"space":  49,
	"return": 36,
	"enter":  36,
	"tab":    48,
	"escape": 53,
	"delete": 51,
	"left":   123,
	"right":  124,
	"down":   125,
	"up":     126,
}

var macModifiers = map[modifier]string{
	modCommand: "command down",
	modOption:  "option down",
	modControl: "control down",
	modShift:   "shift down",
}

// macScript builds the System Events command for key and mods.
func macScript(key string, mods []modifier) (string, error) {
	var press string
	if code, ok := macKeyCodes[key]; ok {
		press = fmt.Sprintf("key code %d", code)
	} else if len([]rune(key)) == 1 {
		press = fmt.Sprintf(`keystroke "%s"`, strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(key))
	} else {
		return "", fmt.Errorf("unsupported key %q", key)
	}

	if len(mods) > 0 {
		using := make([]string, len(mods))
		for i, m := range mods {
			using[i] = macModifiers[m]
		}
		press += " using {" + strings.Join(using, ", ") + "}"
	}
	return `tell application "System Events" to ` + press, nil
}

type xdoBackend struct{}

func (xdoBackend) press(key string, mods []modifier) error {
	combo, err := xdoCombo(key, mods)
	if err != nil {
		return err
	}
	_, err = run("xdotool", "key", "--clearmodifiers", combo)
	return err
}

// xdoKeysyms maps punctuation and named keys to X keysym names.
var xdoKeysyms = map[string]string{
	"=":      "equal",
	"-":      "minus",
	"+":      "plus",
	" ":      "space",
	",":      "comma",
	".":      "period",
	"/":      "slash",
	"space":  "space",
	"return": "Return",
	"enter":  "Return",
	"tab":    "Tab",
	"escape": "Escape",
	"delete": "BackSpace",
	"left":   "Left",
	"right":  "Right",
	"down":   "Down",
	"up":     "Up",
}

var xdoModifiers = map[modifier]string{
	modCommand: "super",
	modOption:  "alt",
	modControl: "ctrl",
	modShift:   "shift",
}

// xdoCombo builds the xdotool key argument for key and mods, e.g.
// "ctrl+equal".
func xdoCombo(key string, mods []modifier) (string, error) {
	sym, ok := xdoKeysyms[key]
	if !ok {
		if len(key) != 1 || !isAlnum(key[0]) {
			return "", fmt.Errorf("unsupported key %q", key)
		}
		sym = key
	}

	parts := make([]string, 0, len(mods)+1)
	for _, m := range mods {
		parts = append(parts, xdoModifiers[m])
	}
	return strings.Join(append(parts, sym), "+"), nil
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9'
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
