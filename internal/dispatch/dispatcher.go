// Package dispatch turns the per-frame gesture stream into debounced
// actions. A Dispatcher owns all cross-frame state: cooldowns, the Namaste
// hold timer, cursor smoothing history and the zoom baseline.
package dispatch

import (
	"math"
	"time"

	"github.com/lokesh7385/mudra/internal/action"
	"github.com/lokesh7385/mudra/internal/gesture"
)

// Config holds the timing and threshold rules applied by the Dispatcher.
type Config struct {
	PlayPauseCooldown time.Duration
	VolumeCooldown    time.Duration
	ClickCooldown     time.Duration
	CloseTabCooldown  time.Duration

	// NamasteHold is how long Namaste must be held before CloseTab fires.
	NamasteHold time.Duration

	// ZoomThreshold is the minimum frame-to-frame change in normalized hand
	// distance that produces a Zoom.
	ZoomThreshold float64

	// ZoomMaxDistance ignores HandsDistance readings above this normalized
	// distance, as if no two-hand gesture were shown. Zero disables it.
	ZoomMaxDistance float64

	// SmoothingWindow is the number of cursor samples averaged per axis.
	SmoothingWindow int
}

// DefaultConfig returns the standard dispatch rules.
func DefaultConfig() Config {
	return Config{
		PlayPauseCooldown: time.Second,
		VolumeCooldown:    200 * time.Millisecond,
		ClickCooldown:     500 * time.Millisecond,
		CloseTabCooldown:  3 * time.Second,
		NamasteHold:       time.Second,
		ZoomThreshold:     0.02,
		SmoothingWindow:   5,
	}
}

// Dispatcher is the per-session gesture state machine. It is not safe for
// concurrent use; frames must be fed in order from a single goroutine.
type Dispatcher struct {
	config Config

	lastFired map[action.Kind]time.Time

	holdStart time.Time
	holding   bool

	cursorX *window
	cursorY *window

	zoomBaseline float64
	hasBaseline  bool
}

// New creates a Dispatcher with empty state.
func New(config Config) *Dispatcher {
	if config.SmoothingWindow < 1 {
		config.SmoothingWindow = DefaultConfig().SmoothingWindow
	}
	return &Dispatcher{
		config:    config,
		lastFired: make(map[action.Kind]time.Time),
		cursorX:   newWindow(config.SmoothingWindow),
		cursorY:   newWindow(config.SmoothingWindow),
	}
}

// Dispatch consumes this frame's gesture observed at now and returns the
// action to perform, or an action of kind None.
func (d *Dispatcher) Dispatch(g gesture.Gesture, now time.Time) action.Action {
	if g.Kind == gesture.HandsDistance && d.config.ZoomMaxDistance > 0 && g.Distance > d.config.ZoomMaxDistance {
		g = gesture.Of(gesture.Unknown)
	}

	d.reset(g.Kind)

	switch g.Kind {
	case gesture.HandsDistance:
		return d.zoom(g.Distance)

	case gesture.OpenPalm:
		return d.fire(action.PlayPause, d.config.PlayPauseCooldown, now)

	case gesture.ThumbsUp:
		return d.fire(action.VolumeUp, d.config.VolumeCooldown, now)

	case gesture.ThumbsDown:
		return d.fire(action.VolumeDown, d.config.VolumeCooldown, now)

	case gesture.Pinch:
		return d.fire(action.Click, d.config.ClickCooldown, now)

	case gesture.TwoFingers:
		d.cursorX.push(unit(g.Cursor.X))
		d.cursorY.push(unit(g.Cursor.Y))
		return action.NewMoveMouse(d.cursorX.mean(), d.cursorY.mean())

	case gesture.Namaste:
		return d.namaste(now)
	}

	return action.Of(action.None)
}

// reset clears every piece of state whose triggering gesture is absent
// this frame. Hold and zoom tracking only survive uninterrupted runs.
func (d *Dispatcher) reset(kind gesture.Kind) {
	if kind != gesture.Namaste {
		d.holding = false
		d.holdStart = time.Time{}
	}
	if kind != gesture.HandsDistance {
		d.hasBaseline = false
		d.zoomBaseline = 0
	}
	if kind != gesture.TwoFingers {
		d.cursorX.reset()
		d.cursorY.reset()
	}
}

func (d *Dispatcher) zoom(dist float64) action.Action {
	if !d.hasBaseline {
		d.zoomBaseline = dist
		d.hasBaseline = true
		return action.Of(action.None)
	}

	delta := dist - d.zoomBaseline
	d.zoomBaseline = dist

	if math.Abs(delta) <= d.config.ZoomThreshold {
		return action.Of(action.None)
	}
	if delta > 0 {
		return action.NewZoom(action.In)
	}
	return action.NewZoom(action.Out)
}

func (d *Dispatcher) namaste(now time.Time) action.Action {
	if !d.holding {
		d.holding = true
		d.holdStart = now
	}

	if now.Sub(d.holdStart) < d.config.NamasteHold {
		return action.Of(action.None)
	}

	a := d.fire(action.CloseTab, d.config.CloseTabCooldown, now)
	if !a.IsNone() {
		d.holding = false
		d.holdStart = time.Time{}
	}
	return a
}

// unit clamps v to [0,1].
func unit(v float64) float64 {
	return min(max(v, 0), 1)
}

// fire returns kind if its cooldown has elapsed since the last firing and
// records now as the new firing time. Otherwise it returns None.
func (d *Dispatcher) fire(kind action.Kind, cooldown time.Duration, now time.Time) action.Action {
	if !d.allow(kind, cooldown, now) {
		return action.Of(action.None)
	}
	return action.Of(kind)
}

func (d *Dispatcher) allow(kind action.Kind, cooldown time.Duration, now time.Time) bool {
	if last, ok := d.lastFired[kind]; ok && now.Sub(last) <= cooldown {
		return false
	}
	d.lastFired[kind] = now
	return true
}

// State is a read-only view of the dispatcher for status reporting.
type State struct {
	Holding       bool          `json:"holding"`
	HeldFor       time.Duration `json:"held_for"`
	ZoomBaseline  *float64      `json:"zoom_baseline,omitempty"`
	CursorSamples int           `json:"cursor_samples"`
}

// Snapshot reports the current state as seen at now.
func (d *Dispatcher) Snapshot(now time.Time) State {
	s := State{
		Holding:       d.holding,
		CursorSamples: d.cursorX.len(),
	}
	if d.holding {
		s.HeldFor = now.Sub(d.holdStart)
	}
	if d.hasBaseline {
		b := d.zoomBaseline
		s.ZoomBaseline = &b
	}
	return s
}
