package detector

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokesh7385/mudra/internal/hand"
	"github.com/lokesh7385/mudra/internal/hand/handtest"
	"github.com/lokesh7385/mudra/internal/logging"
)

func fullHand(label string, score, x, y float64) jsonHand {
	jh := jsonHand{Handedness: label, Score: score}
	for i := 0; i < hand.NumLandmarks; i++ {
		jh.Points = append(jh.Points, jsonPoint{X: x, Y: y, Z: 0.1})
	}
	return jh
}

func TestToSet(t *testing.T) {
	t.Run("scales normalized points to pixels", func(t *testing.T) {
		set := toSet([]jsonHand{fullHand("Right", 0.9, 0.25, 0.5)}, 640, 480)

		assert.Equal(t, 640, set.Width)
		assert.Equal(t, 480, set.Height)
		require.Equal(t, 1, set.Len())

		h, ok := set.Get(hand.Right)
		require.True(t, ok)
		assert.Equal(t, hand.Point{X: 160, Y: 240}, h.Points[hand.Wrist])
		assert.Equal(t, hand.Point{X: 160, Y: 240}, h.Points[hand.PinkyTip])
	})

	t.Run("keeps both sides", func(t *testing.T) {
		set := toSet([]jsonHand{
			fullHand("Left", 0.8, 0.1, 0.1),
			fullHand("Right", 0.8, 0.9, 0.9),
		}, 100, 100)

		assert.Equal(t, 2, set.Len())
		hands := set.Hands()
		assert.Equal(t, hand.Right, hands[0].Side)
		assert.Equal(t, hand.Left, hands[1].Side)
	})

	t.Run("duplicate side keeps higher score", func(t *testing.T) {
		for _, order := range [][]jsonHand{
			{fullHand("Right", 0.6, 0.1, 0.1), fullHand("Right", 0.95, 0.5, 0.5)},
			{fullHand("Right", 0.95, 0.5, 0.5), fullHand("Right", 0.6, 0.1, 0.1)},
		} {
			set := toSet(order, 100, 100)
			require.Equal(t, 1, set.Len())
			h, _ := set.Get(hand.Right)
			assert.Equal(t, hand.Point{X: 50, Y: 50}, h.Points[hand.Wrist])
		}
	})

	t.Run("skips short and unlabelled hands", func(t *testing.T) {
		short := fullHand("Left", 0.9, 0.5, 0.5)
		short.Points = short.Points[:20]

		set := toSet([]jsonHand{
			short,
			fullHand("Unknown", 0.9, 0.5, 0.5),
			fullHand("", 0.9, 0.5, 0.5),
		}, 100, 100)

		assert.Equal(t, 0, set.Len())
	})

	t.Run("no hands", func(t *testing.T) {
		set := toSet(nil, 320, 240)
		assert.Equal(t, 0, set.Len())
		assert.Equal(t, 320, set.Width)
	})
}

func TestMockDetector(t *testing.T) {
	t.Run("reports no hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, hands.Len())
		assert.Equal(t, handtest.Width, hands.Width)
		assert.Equal(t, 1, mock.Calls())
	})

	t.Run("returns configured pose", func(t *testing.T) {
		mock := NewMockDetector()
		left, right := handtest.NamastePair()
		mock.SetPose(left, right)

		hands, err := mock.Detect(nil)
		require.NoError(t, err)
		assert.Equal(t, 2, hands.Len())
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetPose(handtest.OpenPalm(hand.Right))
		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)
		assert.ErrorIs(t, err, expectedErr)
		assert.Equal(t, 0, hands.Len())
	})

	t.Run("Close returns nil", func(t *testing.T) {
		assert.NoError(t, NewMockDetector().Close())
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestNewMediaPipeDetector_MissingScript(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Script = "/nonexistent/mediapipe_service.py"

	_, err := NewMediaPipeDetector(cfg, nil)
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2, cfg.MaxHands)
	assert.InDelta(t, 0.7, cfg.MinConfidence, 1e-9)
	assert.InDelta(t, 0.5, cfg.MinTrackingConf, 1e-9)
}

type fakeTimer struct{ stopped bool }

func (f *fakeTimer) Stop() bool {
	f.stopped = true
	return true
}

func TestMediaPipeDetector_IdleTimer(t *testing.T) {
	var (
		timers []*fakeTimer
		fire   func()
		after  time.Duration
	)
	orig := afterFunc
	afterFunc = func(d time.Duration, f func()) timer {
		ft := &fakeTimer{}
		timers = append(timers, ft)
		fire, after = f, d
		return ft
	}
	t.Cleanup(func() { afterFunc = orig })

	d := &MediaPipeDetector{config: Config{IdleShutdown: 5 * time.Second}, log: logging.NewNop()}

	d.resetIdleTimer()
	d.resetIdleTimer()
	require.Len(t, timers, 2)
	assert.True(t, timers[0].stopped, "rearming stops the previous timer")
	assert.False(t, timers[1].stopped)
	assert.Equal(t, 5*time.Second, after)

	// Firing on a stopped service is harmless.
	fire()
	assert.False(t, d.started)

	d.config.IdleShutdown = 0
	d.resetIdleTimer()
	assert.Len(t, timers, 2, "zero idle shutdown disables the timer")
}
