package main

import (
	"encoding/json"
	"testing"
)

type fakeBackend struct {
	key   string
	mods  []modifier
	calls int
}

func (f *fakeBackend) press(key string, mods []modifier) error {
	f.key, f.mods = key, mods
	f.calls++
	return nil
}

func TestXdoCombo(t *testing.T) {
	tests := []struct {
		name string
		key  string
		mods []modifier
		want string
	}{
		{"zoom in", "=", []modifier{modControl}, "ctrl+equal"},
		{"zoom out", "-", []modifier{modControl}, "ctrl+minus"},
		{"close tab", "w", []modifier{modControl}, "ctrl+w"},
		{"named key", "escape", nil, "Escape"},
		{"several modifiers", "t", []modifier{modControl, modShift}, "ctrl+shift+t"},
		{"command maps to super", "q", []modifier{modCommand}, "super+q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := xdoCombo(tt.key, tt.mods)
			if err != nil {
				t.Fatalf("xdoCombo() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("xdoCombo(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	if _, err := xdoCombo("f13", nil); err == nil {
		t.Error("expected error for unsupported key")
	}
}

func TestMacScript(t *testing.T) {
	tests := []struct {
		name string
		key  string
		mods []modifier
		want string
	}{
		{"zoom in", "=", []modifier{modCommand}, `tell application "System Events" to keystroke "=" using {command down}`},
		{"named key", "space", nil, `tell application "System Events" to key code 49`},
		{"quote is escaped", `"`, []modifier{modOption, modShift}, `tell application "System Events" to keystroke "\"" using {option down, shift down}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := macScript(tt.key, tt.mods)
			if err != nil {
				t.Fatalf("macScript() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("macScript(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}

	if _, err := macScript("pageup", nil); err == nil {
		t.Error("expected error for unsupported key")
	}
}

func TestHandleShortcut(t *testing.T) {
	b := &fakeBackend{}
	if err := handleShortcut(b, json.RawMessage(`{"key":"W","modifiers":["Ctrl","control"]}`)); err != nil {
		t.Fatalf("handleShortcut() error = %v", err)
	}
	if b.key != "w" || len(b.mods) != 1 || b.mods[0] != modControl {
		t.Errorf("pressed %q with %v, want \"w\" with [control]", b.key, b.mods)
	}

	errCases := map[string]string{
		"invalid params":   `nope`,
		"empty key":        `{"key":"","modifiers":["ctrl"]}`,
		"unknown modifier": `{"key":"w","modifiers":["hyper"]}`,
	}
	for name, params := range errCases {
		t.Run(name, func(t *testing.T) {
			f := &fakeBackend{}
			if err := handleShortcut(f, json.RawMessage(params)); err == nil {
				t.Error("expected error")
			}
			if f.calls != 0 {
				t.Errorf("backend called %d times, want 0", f.calls)
			}
		})
	}
}

func TestPlatformBackend(t *testing.T) {
	if _, err := platformBackend("darwin"); err != nil {
		t.Errorf("darwin: %v", err)
	}
	if _, err := platformBackend("linux"); err != nil {
		t.Errorf("linux: %v", err)
	}
	if _, err := platformBackend("plan9"); err == nil {
		t.Error("expected error for unsupported OS")
	}
}
