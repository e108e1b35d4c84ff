// Package handtest builds synthetic hand landmark sets in pixel space for
// tests, replay fixtures and the mock detector.
package handtest

import "github.com/lokesh7385/mudra/internal/hand"

// Frame size used by the preset poses.
const (
	Width  = 640
	Height = 480
)

// Origin is the default wrist position for single-hand poses.
var Origin = hand.Point{X: 320, Y: 400}

// Layout offsets relative to the wrist, written for a Right hand with the
// palm facing the camera. Left hands are mirrored on the x axis.
const (
	mcpRise = 80.0

	extPIP = 120.0
	extDIP = 150.0
	extTip = 180.0

	flexPIP = 110.0
	flexDIP = 95.0
	flexTip = 85.0
)

var mcpOffsetX = [...]float64{
	hand.Index:  -30,
	hand.Middle: -10,
	hand.Ring:   10,
	hand.Pinky:  30,
}

// ThumbTip selects where the thumb tip is placed.
type ThumbTip int

const (
	// ThumbTucked keeps the thumb flexed across the palm.
	ThumbTucked ThumbTip = iota
	// ThumbOutUp extends the thumb outward with the tip above its IP joint.
	ThumbOutUp
	// ThumbOutDown extends the thumb outward with the tip below its IP joint.
	ThumbOutDown
	// ThumbOnIndex places the thumb tip against the index fingertip.
	ThumbOnIndex
)

// Build lays out a hand at wrist position origin. extended lists the long
// fingers (Index..Pinky) that point up; the thumb is placed by thumb.
func Build(side hand.Side, origin hand.Point, thumb ThumbTip, extended ...hand.Finger) hand.Hand {
	var up [5]bool
	for _, f := range extended {
		up[f] = true
	}

	h := hand.Hand{Side: hand.Right}
	at := func(dx, dy float64) hand.Point {
		return hand.Point{X: origin.X + dx, Y: origin.Y - dy}
	}

	h.Points[hand.Wrist] = origin
	h.Points[hand.ThumbCMC] = at(-20, 20)
	h.Points[hand.ThumbMCP] = at(-40, 40)
	h.Points[hand.ThumbIP] = at(-55, 55)

	tips := [...]struct {
		finger             hand.Finger
		mcp, pip, dip, tip int
	}{
		{hand.Index, hand.IndexMCP, hand.IndexPIP, hand.IndexDIP, hand.IndexTip},
		{hand.Middle, hand.MiddleMCP, hand.MiddlePIP, hand.MiddleDIP, hand.MiddleTip},
		{hand.Ring, hand.RingMCP, hand.RingPIP, hand.RingDIP, hand.RingTip},
		{hand.Pinky, hand.PinkyMCP, hand.PinkyPIP, hand.PinkyDIP, hand.PinkyTip},
	}
	for _, f := range tips {
		dx := mcpOffsetX[f.finger]
		h.Points[f.mcp] = at(dx, mcpRise)
		if up[f.finger] {
			h.Points[f.pip] = at(dx, extPIP)
			h.Points[f.dip] = at(dx, extDIP)
			h.Points[f.tip] = at(dx, extTip)
		} else {
			h.Points[f.pip] = at(dx, flexPIP)
			h.Points[f.dip] = at(dx, flexDIP)
			h.Points[f.tip] = at(dx, flexTip)
		}
	}

	switch thumb {
	case ThumbOutUp:
		h.Points[hand.ThumbTip] = at(-75, 65)
	case ThumbOutDown:
		h.Points[hand.ThumbTip] = at(-75, 45)
	case ThumbOnIndex:
		tip := h.Points[hand.IndexTip]
		h.Points[hand.ThumbTip] = hand.Point{X: tip.X + 4, Y: tip.Y + 3}
	default:
		h.Points[hand.ThumbTip] = at(-45, 50)
	}

	if side == hand.Left {
		h = Mirror(h, origin.X)
	}
	return h
}

// Mirror reflects h around the vertical line x = axis and flips its side.
func Mirror(h hand.Hand, axis float64) hand.Hand {
	for i := range h.Points {
		h.Points[i].X = 2*axis - h.Points[i].X
	}
	if h.Side == hand.Right {
		h.Side = hand.Left
	} else {
		h.Side = hand.Right
	}
	return h
}

// Scale multiplies every coordinate of h by k.
func Scale(h hand.Hand, k float64) hand.Hand {
	for i := range h.Points {
		h.Points[i].X *= k
		h.Points[i].Y *= k
	}
	return h
}

// Translate shifts every landmark of h by (dx, dy).
func Translate(h hand.Hand, dx, dy float64) hand.Hand {
	for i := range h.Points {
		h.Points[i].X += dx
		h.Points[i].Y += dy
	}
	return h
}

// OpenPalm returns a hand with all five fingers extended.
func OpenPalm(side hand.Side) hand.Hand {
	return Build(side, Origin, ThumbOutUp, hand.Index, hand.Middle, hand.Ring, hand.Pinky)
}

// ThumbsUp returns a fist with the thumb extended upward.
func ThumbsUp(side hand.Side) hand.Hand {
	return Build(side, Origin, ThumbOutUp)
}

// ThumbsDown returns a fist with the thumb extended downward.
func ThumbsDown(side hand.Side) hand.Hand {
	return Build(side, Origin, ThumbOutDown)
}

// TwoFingers returns index and middle extended with the thumb tucked.
func TwoFingers(side hand.Side) hand.Hand {
	return Build(side, Origin, ThumbTucked, hand.Index, hand.Middle)
}

// Pinch returns the index extended with the thumb tip touching it.
func Pinch(side hand.Side) hand.Hand {
	return Build(side, Origin, ThumbOnIndex, hand.Index)
}

// Fist returns a hand with every finger flexed.
func Fist(side hand.Side) hand.Hand {
	return Build(side, Origin, ThumbTucked)
}

// NamastePair returns two open hands whose wrists and fingertips nearly touch.
func NamastePair() (left, right hand.Hand) {
	right = Build(hand.Right, hand.Point{X: 300, Y: 400}, ThumbTucked, hand.Index, hand.Middle, hand.Ring, hand.Pinky)
	left = Build(hand.Left, hand.Point{X: 310, Y: 400}, ThumbTucked, hand.Index, hand.Middle, hand.Ring, hand.Pinky)
	return left, right
}

// ApartPair returns two open hands whose wrists are gap pixels apart,
// centred on the frame.
func ApartPair(gap float64) (left, right hand.Hand) {
	cx := float64(Width) / 2
	right = Build(hand.Right, hand.Point{X: cx - gap/2, Y: 400}, ThumbOutUp, hand.Index, hand.Middle, hand.Ring, hand.Pinky)
	left = Build(hand.Left, hand.Point{X: cx + gap/2, Y: 400}, ThumbOutUp, hand.Index, hand.Middle, hand.Ring, hand.Pinky)
	return left, right
}

// Set wraps hands into a hand.Set sized Width x Height.
func Set(hands ...hand.Hand) hand.Set {
	s := hand.NewSet(Width, Height)
	for _, h := range hands {
		s.Add(h)
	}
	return s
}
