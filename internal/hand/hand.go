// Package hand defines the per-frame hand landmark types produced by the
// tracker and the finger-state extractor that reads them.
package hand

import "math"

// Hand landmark indices following the MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// Side tags which anatomical hand a set of landmarks belongs to.
type Side string

const (
	Left  Side = "Left"
	Right Side = "Right"
)

// ParseSide converts a tracker handedness label into a Side.
func ParseSide(label string) (Side, bool) {
	switch Side(label) {
	case Left:
		return Left, true
	case Right:
		return Right, true
	}
	return "", false
}

// Point is a landmark position in image pixels. Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Hand is one tracked hand in one frame. The fixed-size array guarantees all
// 21 landmarks are present.
type Hand struct {
	Side   Side                `json:"side"`
	Points [NumLandmarks]Point `json:"points"`
}

// PalmScale returns the wrist to index-MCP distance, the per-frame reference
// length every proximity threshold is measured against.
func (h Hand) PalmScale() float64 {
	return Distance(h.Points[Wrist], h.Points[IndexMCP])
}

// Set is the collection of hands resolved in a single frame, at most one per
// side, together with the frame size used for normalization.
type Set struct {
	Width  int
	Height int

	left  *Hand
	right *Hand
}

// NewSet creates an empty Set for a frame of the given size.
func NewSet(width, height int) Set {
	return Set{Width: width, Height: height}
}

// Add stores h under its side, replacing any hand already stored there.
// Hands with an unknown side are ignored.
func (s *Set) Add(h Hand) {
	switch h.Side {
	case Left:
		s.left = &h
	case Right:
		s.right = &h
	}
}

// Get returns the hand for side if it was tracked this frame.
func (s Set) Get(side Side) (*Hand, bool) {
	switch side {
	case Left:
		return s.left, s.left != nil
	case Right:
		return s.right, s.right != nil
	}
	return nil, false
}

// Len returns the number of hands in the set.
func (s Set) Len() int {
	n := 0
	if s.left != nil {
		n++
	}
	if s.right != nil {
		n++
	}
	return n
}

// Hands returns the tracked hands, Right first.
func (s Set) Hands() []Hand {
	hands := make([]Hand, 0, 2)
	if s.right != nil {
		hands = append(hands, *s.right)
	}
	if s.left != nil {
		hands = append(hands, *s.left)
	}
	return hands
}
