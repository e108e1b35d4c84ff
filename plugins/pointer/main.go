// Command pointer is the mudra plugin that moves and clicks the mouse.
// It uses cliclick on macOS and xdotool on Linux.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
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

// MoveParams is a normalized target position; (0,0) is the top-left corner.
type MoveParams struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// backend drives the pointer on one platform.
type backend interface {
	screenSize() (int, int, error)
	move(x, y int) error
	click() error
}

func main() {
	var req Request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeErrorResponse(fmt.Sprintf("failed to decode request: %v", err))
		return
	}

	b, err := platformBackend()
	if err != nil {
		writeErrorResponse(err.Error())
		return
	}

	switch req.Action {
	case "move":
		err = handleMove(b, req.Params)
	case "click":
		err = b.click()
	default:
		writeErrorResponse(fmt.Sprintf("unknown action: %s", req.Action))
		return
	}
	if err != nil {
		writeErrorResponse(fmt.Sprintf("action %s failed: %v", req.Action, err))
		return
	}

	writeSuccessResponse()
}

func handleMove(b backend, params json.RawMessage) error {
	var p MoveParams
	if err := json.Unmarshal(params, &p); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}

	w, h, err := b.screenSize()
	if err != nil {
		return fmt.Errorf("screen size: %w", err)
	}

	x, y := toScreen(p.X, p.Y, w, h)
	return b.move(x, y)
}

// toScreen maps a normalized position onto a w x h screen, clamped to the
// last addressable pixel.
func toScreen(x, y float64, w, h int) (int, int) {
	return clamp(int(x*float64(w)), w-1), clamp(int(y*float64(h)), h-1)
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if hi < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func platformBackend() (backend, error) {
	switch runtime.GOOS {
	case "darwin":
		return macBackend{}, nil
	case "linux":
		return xdoBackend{}, nil
	}
	return nil, fmt.Errorf("pointer plugin does not support %s", runtime.GOOS)
}

type macBackend struct{}

func (macBackend) screenSize() (int, int, error) {
	out, err := run("osascript", "-e", `tell application "Finder" to get bounds of window of desktop`)
	if err != nil {
		return 0, 0, err
	}
	// "0, 0, 1440, 900"
	fields := strings.Split(strings.TrimSpace(out), ",")
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("unexpected bounds %q", out)
	}
	return parseSize(fields[2], fields[3])
}

func (macBackend) move(x, y int) error {
	_, err := run("cliclick", fmt.Sprintf("m:%d,%d", x, y))
	return err
}

func (macBackend) click() error {
	_, err := run("cliclick", "c:.")
	return err
}

type xdoBackend struct{}

func (xdoBackend) screenSize() (int, int, error) {
	out, err := run("xdotool", "getdisplaygeometry")
	if err != nil {
		return 0, 0, err
	}
	// "1920 1080"
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected geometry %q", out)
	}
	return parseSize(fields[0], fields[1])
}

func (xdoBackend) move(x, y int) error {
	_, err := run("xdotool", "mousemove", strconv.Itoa(x), strconv.Itoa(y))
	return err
}

func (xdoBackend) click() error {
	_, err := run("xdotool", "click", "1")
	return err
}

func parseSize(ws, hs string) (int, int, error) {
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil {
		return 0, 0, err
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
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
