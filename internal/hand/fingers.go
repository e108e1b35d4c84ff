package hand

import "strings"

// Finger identifies one of the five digits.
type Finger int

const (
	Thumb Finger = iota
	Index
	Middle
	Ring
	Pinky
)

var fingerNames = [...]string{"thumb", "index", "middle", "ring", "pinky"}

func (f Finger) String() string {
	if f < Thumb || f > Pinky {
		return "unknown"
	}
	return fingerNames[f]
}

// Fingers records which fingers are extended, indexed by Finger.
type Fingers [5]bool

// tip/pip landmark pairs for the four long fingers.
var longFingers = [...]struct {
	finger   Finger
	tip, pip int
}{
	{Index, IndexTip, IndexPIP},
	{Middle, MiddleTip, MiddlePIP},
	{Ring, RingTip, RingPIP},
	{Pinky, PinkyTip, PinkyPIP},
}

// Fingers extracts the extended/flexed state of every finger.
//
// A long finger is extended when its tip sits above (smaller y than) its PIP
// joint. The thumb moves along the palm plane instead, so it is judged on the
// x axis against the IP joint, with the direction mirrored between hands.
func (h Hand) Fingers() Fingers {
	var f Fingers
	f[Thumb] = h.ThumbExtended()
	for _, lf := range longFingers {
		f[lf.finger] = h.Points[lf.tip].Y < h.Points[lf.pip].Y
	}
	return f
}

// ThumbExtended reports whether the thumb points outward from the palm.
func (h Hand) ThumbExtended() bool {
	tip, ip := h.Points[ThumbTip], h.Points[ThumbIP]
	if h.Side == Right {
		return tip.X < ip.X
	}
	return tip.X > ip.X
}

// Extended reports whether finger f is extended.
func (f Fingers) Extended(finger Finger) bool {
	return f[finger]
}

// All reports whether all five fingers are extended.
func (f Fingers) All() bool {
	return f == Fingers{true, true, true, true, true}
}

// Only reports whether exactly the given fingers are extended and every
// other finger is flexed.
func (f Fingers) Only(fingers ...Finger) bool {
	var want Fingers
	for _, finger := range fingers {
		want[finger] = true
	}
	return f == want
}

// String renders the state as five digits, thumb first, e.g. "01100".
func (f Fingers) String() string {
	var b strings.Builder
	for _, up := range f {
		if up {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
