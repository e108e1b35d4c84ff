package app

import (
	"context"

	"github.com/lokesh7385/mudra/internal/action"
)

// enqueue hands act to the worker without blocking. A full queue drops the
// action. Without an executor nothing is queued.
func (a *App) enqueue(act action.Action) {
	if a.config.Executor == nil {
		return
	}
	select {
	case a.queue <- act:
	default:
		a.config.Metrics.Dropped()
		a.log.Warn("action queue full, dropping action", "action", act)
	}
}

// RunWorker executes queued actions until ctx is done. Start runs it; it is
// exported for callers that drive ProcessHands themselves.
func (a *App) RunWorker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case act := <-a.queue:
			a.execute(ctx, act)
		}
	}
}

func (a *App) execute(ctx context.Context, act action.Action) {
	err := a.config.Executor.Execute(ctx, act)
	a.config.Metrics.Action(act.Kind.String(), err)
	if err != nil {
		a.log.Error("action failed", "action", act, "error", err)
		return
	}
	a.log.Info("action executed", "action", act)
}
