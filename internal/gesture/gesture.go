// Package gesture classifies per-frame hand landmarks into a single discrete
// gesture.
package gesture

import (
	"fmt"

	"github.com/lokesh7385/mudra/internal/hand"
)

// Kind identifies a gesture.
type Kind int

const (
	// None means no hand was tracked this frame.
	None Kind = iota
	// Unknown means a hand was tracked but matched no rule.
	Unknown
	OpenPalm
	ThumbsUp
	ThumbsDown
	TwoFingers
	Pinch
	Namaste
	HandsDistance
)

var kindNames = map[Kind]string{
	None:          "none",
	Unknown:       "unknown",
	OpenPalm:      "open-palm",
	ThumbsUp:      "thumbs-up",
	ThumbsDown:    "thumbs-down",
	TwoFingers:    "two-fingers",
	Pinch:         "pinch",
	Namaste:       "namaste",
	HandsDistance: "hands-distance",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("gesture(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown gesture %q", text)
}

// Gesture is the classification result for one frame. Cursor is set only
// for TwoFingers and Distance only for HandsDistance.
type Gesture struct {
	Kind Kind `json:"kind"`
	// Cursor is the index fingertip position normalized by the frame size
	// and clamped to [0,1].
	Cursor hand.Point `json:"cursor"`
	// Distance is the wrist-to-wrist distance normalized by the frame
	// diagonal.
	Distance float64 `json:"distance"`
}

// Of returns a payload-free gesture of kind k.
func Of(k Kind) Gesture {
	return Gesture{Kind: k}
}

// NewTwoFingers returns a TwoFingers gesture pointing at (x, y).
func NewTwoFingers(x, y float64) Gesture {
	return Gesture{Kind: TwoFingers, Cursor: hand.Point{X: x, Y: y}}
}

// NewHandsDistance returns a HandsDistance gesture carrying dist.
func NewHandsDistance(dist float64) Gesture {
	return Gesture{Kind: HandsDistance, Distance: dist}
}

func (g Gesture) String() string {
	switch g.Kind {
	case TwoFingers:
		return fmt.Sprintf("%s(%.3f,%.3f)", g.Kind, g.Cursor.X, g.Cursor.Y)
	case HandsDistance:
		return fmt.Sprintf("%s(%.4f)", g.Kind, g.Distance)
	}
	return g.Kind.String()
}
