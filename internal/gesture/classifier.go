package gesture

import (
	"math"

	"github.com/lokesh7385/mudra/internal/hand"
)

// Config holds the scale-relative thresholds used by the Classifier.
type Config struct {
	// NamasteRatio bounds both the wrist gap and the middle fingertip gap,
	// in multiples of the mean palm scale of the two hands.
	NamasteRatio float64

	// PinchRatio bounds the thumb-tip to index-tip distance, in multiples of
	// the palm scale.
	PinchRatio float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		NamasteRatio: 1.5,
		PinchRatio:   0.3,
	}
}

// Classifier maps a frame's hands to one Gesture. It holds no per-frame
// state and is safe for concurrent use.
type Classifier struct {
	config Config
}

// NewClassifier creates a Classifier. Zero thresholds fall back to the
// defaults.
func NewClassifier(config Config) *Classifier {
	def := DefaultConfig()
	if config.NamasteRatio <= 0 {
		config.NamasteRatio = def.NamasteRatio
	}
	if config.PinchRatio <= 0 {
		config.PinchRatio = def.PinchRatio
	}
	return &Classifier{config: config}
}

// Classify returns the gesture shown in s. Two-hand gestures take priority;
// the single-hand rules only run when fewer than two hands are present.
func (c *Classifier) Classify(s hand.Set) Gesture {
	if g, ok := c.TwoHand(s); ok {
		return g
	}

	h, ok := s.Get(hand.Right)
	if !ok {
		h, ok = s.Get(hand.Left)
	}
	if !ok {
		return Of(None)
	}
	return c.SingleHand(h, s.Width, s.Height)
}

// TwoHand evaluates the two-hand gestures. It reports false unless both a
// Left and a Right hand are present.
func (c *Classifier) TwoHand(s hand.Set) (Gesture, bool) {
	left, okL := s.Get(hand.Left)
	right, okR := s.Get(hand.Right)
	if !okL || !okR {
		return Gesture{}, false
	}

	wristGap := hand.Distance(left.Points[hand.Wrist], right.Points[hand.Wrist])
	middleGap := hand.Distance(left.Points[hand.MiddleTip], right.Points[hand.MiddleTip])
	limit := c.config.NamasteRatio * (left.PalmScale() + right.PalmScale()) / 2

	if wristGap < limit && middleGap < limit {
		return Of(Namaste), true
	}

	return NewHandsDistance(normalizeByDiagonal(wristGap, s.Width, s.Height)), true
}

// SingleHand applies the ordered single-hand rules to h. The first matching
// rule wins. width and height are the frame size in pixels.
func (c *Classifier) SingleHand(h *hand.Hand, width, height int) Gesture {
	fingers := h.Fingers()

	if fingers.All() {
		return Of(OpenPalm)
	}

	if fingers.Only(hand.Thumb) {
		if h.Points[hand.ThumbTip].Y < h.Points[hand.ThumbIP].Y {
			return Of(ThumbsUp)
		}
		return Of(ThumbsDown)
	}

	if fingers.Only(hand.Index, hand.Middle) {
		// A cursor needs a frame to be relative to.
		if width <= 0 || height <= 0 {
			return Of(Unknown)
		}
		tip := h.Points[hand.IndexTip]
		return NewTwoFingers(ratio(tip.X, width), ratio(tip.Y, height))
	}

	pinchGap := hand.Distance(h.Points[hand.ThumbTip], h.Points[hand.IndexTip])
	if pinchGap < c.config.PinchRatio*h.PalmScale() && fingers.Extended(hand.Index) {
		return Of(Pinch)
	}

	return Of(Unknown)
}

// ratio normalizes a pixel coordinate by size, clamped to [0,1]. Trackers
// report landmarks slightly outside the frame near its edges.
func ratio(v float64, size int) float64 {
	return min(max(v/float64(size), 0), 1)
}

// normalizeByDiagonal expresses a pixel distance as a fraction of the frame
// diagonal. An unknown frame size leaves the distance in pixels.
func normalizeByDiagonal(d float64, width, height int) float64 {
	diag := math.Hypot(float64(width), float64(height))
	if diag == 0 {
		return d
	}
	return d / diag
}
