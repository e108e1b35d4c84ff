package hand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokesh7385/mudra/internal/hand"
	"github.com/lokesh7385/mudra/internal/hand/handtest"
)

func TestHand_Fingers(t *testing.T) {
	tests := []struct {
		name string
		hand hand.Hand
		want hand.Fingers
	}{
		{"open palm right", handtest.OpenPalm(hand.Right), hand.Fingers{true, true, true, true, true}},
		{"open palm left", handtest.OpenPalm(hand.Left), hand.Fingers{true, true, true, true, true}},
		{"fist", handtest.Fist(hand.Right), hand.Fingers{}},
		{"thumbs up", handtest.ThumbsUp(hand.Right), hand.Fingers{true, false, false, false, false}},
		{"two fingers", handtest.TwoFingers(hand.Left), hand.Fingers{false, true, true, false, false}},
		{"pinch", handtest.Pinch(hand.Right), hand.Fingers{false, true, false, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.hand.Fingers(), "fingers %s", tt.hand.Fingers())
		})
	}
}

func TestHand_ThumbMirrorsBySide(t *testing.T) {
	var h hand.Hand
	h.Points[hand.ThumbIP] = hand.Point{X: 100, Y: 100}
	h.Points[hand.ThumbTip] = hand.Point{X: 80, Y: 100}

	h.Side = hand.Right
	assert.True(t, h.ThumbExtended(), "right thumb tip left of the joint is extended")

	h.Side = hand.Left
	assert.False(t, h.ThumbExtended(), "left thumb uses the reversed inequality")

	h.Points[hand.ThumbTip].X = 120
	assert.True(t, h.ThumbExtended())
}

func TestHand_LongFingerNeedsTipAbovePIP(t *testing.T) {
	h := handtest.Fist(hand.Right)
	// Level with the joint is not extended.
	h.Points[hand.IndexTip].Y = h.Points[hand.IndexPIP].Y
	assert.False(t, h.Fingers().Extended(hand.Index))

	h.Points[hand.IndexTip].Y = h.Points[hand.IndexPIP].Y - 1
	assert.True(t, h.Fingers().Extended(hand.Index))
}

func TestFingers_Only(t *testing.T) {
	f := hand.Fingers{false, true, true, false, false}
	assert.True(t, f.Only(hand.Index, hand.Middle))
	assert.False(t, f.Only(hand.Index))
	assert.False(t, f.All())
	assert.Equal(t, "01100", f.String())
	assert.True(t, hand.Fingers{}.Only())
}

func TestFingers_ScaleInvariant(t *testing.T) {
	for _, k := range []float64{0.25, 0.5, 2, 3.7} {
		h := handtest.TwoFingers(hand.Right)
		scaled := handtest.Scale(h, k)
		assert.Equal(t, h.Fingers(), scaled.Fingers(), "k=%v", k)
	}
}

func TestSet(t *testing.T) {
	s := hand.NewSet(640, 480)
	assert.Equal(t, 0, s.Len())

	_, ok := s.Get(hand.Right)
	assert.False(t, ok)

	s.Add(handtest.OpenPalm(hand.Left))
	s.Add(handtest.Fist(hand.Right))
	s.Add(hand.Hand{Side: "Middle"})
	require.Equal(t, 2, s.Len())

	hands := s.Hands()
	require.Len(t, hands, 2)
	assert.Equal(t, hand.Right, hands[0].Side)

	// A second hand on the same side replaces the first.
	s.Add(handtest.OpenPalm(hand.Right))
	r, ok := s.Get(hand.Right)
	require.True(t, ok)
	assert.True(t, r.Fingers().All())
	assert.Equal(t, 2, s.Len())
}

func TestParseSide(t *testing.T) {
	side, ok := hand.ParseSide("Left")
	assert.True(t, ok)
	assert.Equal(t, hand.Left, side)

	_, ok = hand.ParseSide("left")
	assert.False(t, ok)
}

func TestHand_ValueMethods(t *testing.T) {
	// Poses returned by value can be queried without a variable.
	assert.True(t, handtest.OpenPalm(hand.Left).Fingers().All())
	assert.False(t, handtest.Fist(hand.Right).ThumbExtended())
	assert.Greater(t, handtest.Scale(handtest.Fist(hand.Right), 2).PalmScale(), handtest.Fist(hand.Right).PalmScale())
}

func TestPalmScale(t *testing.T) {
	var h hand.Hand
	h.Points[hand.Wrist] = hand.Point{X: 0, Y: 0}
	h.Points[hand.IndexMCP] = hand.Point{X: 3, Y: 4}
	assert.InDelta(t, 5.0, h.PalmScale(), 1e-9)
}
