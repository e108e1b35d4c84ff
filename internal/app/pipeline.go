package app

import (
	"context"
	"time"

	"github.com/lokesh7385/mudra/internal/capture"
	"github.com/lokesh7385/mudra/internal/gesture"
	"github.com/lokesh7385/mudra/internal/hand"
)

// ProcessHands runs one frame's hands through the classifier and the
// dispatcher at time now, publishes the resulting Event and queues any
// action for execution. Frames must arrive in time order.
func (a *App) ProcessHands(set hand.Set, now time.Time) Event {
	a.procMu.Lock()
	g := a.classifier.Classify(set)
	act := a.dispatcher.Dispatch(g, now)
	a.procMu.Unlock()

	ev := Event{Time: now, Gesture: g, Action: act}

	a.config.Metrics.Gesture(g.Kind.String())

	a.mu.Lock()
	a.lastEvent = &ev
	if !act.IsNone() {
		a.lastAction = &ev
	}
	a.mu.Unlock()

	a.events.publish(ev)

	if !act.IsNone() {
		if g.Kind != gesture.TwoFingers {
			a.log.Info("gesture action", "gesture", g, "action", act)
		}
		a.enqueue(act)
	}

	return ev
}

// runPipeline reads frames at the gate's rate until ctx is done.
//
// Each tick: read a frame, mirror it, feed the motion gate, and while the
// gate is active detect hands and pass them to ProcessHands. Going idle
// feeds an empty frame so holds and baselines do not survive the gap.
func (a *App) runPipeline(ctx context.Context) {
	ticker := time.NewTicker(a.gate.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}
			if a.processFrame(a.clock()) {
				a.config.Camera.SetFPS(a.gate.FPS())
				ticker.Reset(a.gate.Interval())
			}
		}
	}
}

// processFrame handles one camera frame and reports whether the gate
// changed mode.
func (a *App) processFrame(now time.Time) bool {
	frame, err := a.config.Camera.ReadFrame()
	if err != nil {
		a.log.Warn("read frame", "error", err)
		return false
	}
	defer frame.Close()

	if a.config.Mirror {
		capture.Mirror(frame)
	}
	if err := a.frames.offer(frame); err != nil {
		a.log.Debug("encode preview frame", "error", err)
	}

	moved := true
	if a.config.Motion != nil {
		moved, _ = a.config.Motion.Detect(frame)
	}

	mode, changed := a.gate.Observe(moved, now)
	if changed {
		a.mu.Lock()
		a.mode = mode
		a.mu.Unlock()
		a.log.Info("capture mode changed", "mode", mode, "fps", a.gate.FPS())
		if mode == capture.Idle {
			a.ProcessHands(hand.NewSet(frame.Cols(), frame.Rows()), now)
		}
	}
	if mode != capture.Active {
		return changed
	}

	start := time.Now()
	set, err := a.config.Detector.Detect(frame)
	if err != nil {
		a.log.Warn("detect hands", "error", err)
		return changed
	}
	a.ProcessHands(set, now)
	a.config.Metrics.Frame(time.Since(start))

	return changed
}
