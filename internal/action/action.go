// Package action defines the desktop actions emitted by the dispatcher and
// the interface of whatever carries them out.
package action

import (
	"context"
	"encoding/json"
	"fmt"
)

// Kind identifies an action.
type Kind int

const (
	None Kind = iota
	PlayPause
	VolumeUp
	VolumeDown
	Click
	MoveMouse
	Zoom
	CloseTab
)

var kindNames = map[Kind]string{
	None:       "none",
	PlayPause:  "play-pause",
	VolumeUp:   "volume-up",
	VolumeDown: "volume-down",
	Click:      "click",
	MoveMouse:  "move-mouse",
	Zoom:       "zoom",
	CloseTab:   "close-tab",
}

// Kinds lists every executable action kind.
var Kinds = []Kind{PlayPause, VolumeUp, VolumeDown, Click, MoveMouse, Zoom, CloseTab}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown action %q", name)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Direction is the zoom direction.
type Direction string

const (
	In  Direction = "in"
	Out Direction = "out"
)

// Action is one dispatched action. X and Y are set only for MoveMouse and
// lie in [0,1]; Direction is set only for Zoom.
type Action struct {
	Kind      Kind      `json:"kind"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Direction Direction `json:"direction,omitempty"`
}

// MarshalJSON writes x and y for MoveMouse only, including zero
// coordinates, and omits them for every other kind.
func (a Action) MarshalJSON() ([]byte, error) {
	type wire struct {
		Kind      Kind      `json:"kind"`
		X         *float64  `json:"x,omitempty"`
		Y         *float64  `json:"y,omitempty"`
		Direction Direction `json:"direction,omitempty"`
	}
	w := wire{Kind: a.Kind, Direction: a.Direction}
	if a.Kind == MoveMouse {
		w.X, w.Y = &a.X, &a.Y
	}
	return json.Marshal(w)
}

// Of returns a payload-free action of kind k.
func Of(k Kind) Action {
	return Action{Kind: k}
}

// NewMoveMouse returns a MoveMouse action to normalized position (x, y).
func NewMoveMouse(x, y float64) Action {
	return Action{Kind: MoveMouse, X: x, Y: y}
}

// NewZoom returns a Zoom action in direction d.
func NewZoom(d Direction) Action {
	return Action{Kind: Zoom, Direction: d}
}

// IsNone reports whether a carries no action.
func (a Action) IsNone() bool {
	return a.Kind == None
}

func (a Action) String() string {
	switch a.Kind {
	case MoveMouse:
		return fmt.Sprintf("%s(%.3f,%.3f)", a.Kind, a.X, a.Y)
	case Zoom:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Direction)
	}
	return a.Kind.String()
}

// Executor performs actions against the operating system.
type Executor interface {
	Execute(ctx context.Context, a Action) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, a Action) error

// Execute calls f(ctx, a).
func (f ExecutorFunc) Execute(ctx context.Context, a Action) error {
	return f(ctx, a)
}
