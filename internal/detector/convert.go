package detector

import "github.com/lokesh7385/mudra/internal/hand"

// jsonHand is one hand as reported by the tracker service. Points are
// normalized to [0,1] of the frame.
type jsonHand struct {
	Points     []jsonPoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// toSet converts tracker output to a pixel-space hand set for a frame of
// the given size. Hands without a recognised side or without all 21
// landmarks are skipped. When two hands claim the same side the one with
// the higher score wins.
func toSet(hands []jsonHand, width, height int) hand.Set {
	set := hand.NewSet(width, height)
	best := map[hand.Side]float64{}

	for _, jh := range hands {
		side, ok := hand.ParseSide(jh.Handedness)
		if !ok || len(jh.Points) < hand.NumLandmarks {
			continue
		}
		if score, seen := best[side]; seen && score >= jh.Score {
			continue
		}
		best[side] = jh.Score

		h := hand.Hand{Side: side}
		for i := 0; i < hand.NumLandmarks; i++ {
			h.Points[i] = hand.Point{
				X: jh.Points[i].X * float64(width),
				Y: jh.Points[i].Y * float64(height),
			}
		}
		set.Add(h)
	}

	return set
}
