package replay

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/lokesh7385/mudra/internal/action"
	"github.com/lokesh7385/mudra/internal/app"
	"github.com/lokesh7385/mudra/internal/gesture"
	"github.com/lokesh7385/mudra/internal/hand"
)

// Processor consumes one frame of hands at a point in time. *app.App
// satisfies it.
type Processor interface {
	ProcessHands(set hand.Set, now time.Time) app.Event
}

// Emitted is an action produced during a replay.
type Emitted struct {
	Offset  time.Duration
	Gesture gesture.Gesture
	Action  action.Action
}

// Result summarizes a replay.
type Result struct {
	Frames  int
	Dropped int
	Actions []Emitted
}

// Run feeds every frame from r to p with the clock set to base plus the
// frame offset. Frames older than the previous one are dropped, never
// reordered. onAction, if set, is called for each emitted action.
func Run(ctx context.Context, r *Reader, p Processor, base time.Time, onAction func(Emitted)) (Result, error) {
	var res Result
	var last time.Duration
	started := false

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, err
		}

		if started && f.Offset < last {
			res.Dropped++
			continue
		}
		started = true
		last = f.Offset
		res.Frames++

		ev := p.ProcessHands(f.Hands, base.Add(f.Offset))
		if ev.Action.IsNone() {
			continue
		}
		em := Emitted{Offset: f.Offset, Gesture: ev.Gesture, Action: ev.Action}
		res.Actions = append(res.Actions, em)
		if onAction != nil {
			onAction(em)
		}
	}
}
