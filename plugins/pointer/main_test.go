package main

import (
	"encoding/json"
	"errors"
	"testing"
)

type fakeBackend struct {
	w, h    int
	sizeErr error
	x, y    int
	moved   bool
}

func (f *fakeBackend) screenSize() (int, int, error) { return f.w, f.h, f.sizeErr }

func (f *fakeBackend) move(x, y int) error {
	f.x, f.y, f.moved = x, y, true
	return nil
}

func (f *fakeBackend) click() error { return nil }

func TestToScreen(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY int
	}{
		{"origin", 0, 0, 0, 0},
		{"center", 0.5, 0.5, 960, 540},
		{"far corner clamps", 1, 1, 1919, 1079},
		{"beyond range clamps", 1.4, -0.2, 1919, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := toScreen(tt.x, tt.y, 1920, 1080)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("toScreen(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestHandleMove(t *testing.T) {
	b := &fakeBackend{w: 1000, h: 500}
	if err := handleMove(b, json.RawMessage(`{"x":0.25,"y":0.5}`)); err != nil {
		t.Fatalf("handleMove() error = %v", err)
	}
	if !b.moved || b.x != 250 || b.y != 250 {
		t.Errorf("moved to (%d, %d), want (250, 250)", b.x, b.y)
	}

	if err := handleMove(b, json.RawMessage(`nope`)); err == nil {
		t.Error("expected error for invalid params")
	}

	b = &fakeBackend{sizeErr: errors.New("no display")}
	if err := handleMove(b, json.RawMessage(`{"x":0,"y":0}`)); err == nil {
		t.Error("expected error when screen size is unavailable")
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize(" 1440", " 900\n")
	if err != nil || w != 1440 || h != 900 {
		t.Errorf("parseSize() = (%d, %d, %v), want (1440, 900, nil)", w, h, err)
	}
	if _, _, err := parseSize("x", "1"); err == nil {
		t.Error("expected error for non-numeric width")
	}
}
