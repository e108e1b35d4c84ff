package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokesh7385/mudra/internal/action"
	"github.com/lokesh7385/mudra/internal/dispatch"
	"github.com/lokesh7385/mudra/internal/gesture"
	"github.com/lokesh7385/mudra/internal/hand"
	"github.com/lokesh7385/mudra/internal/hand/handtest"
	"github.com/lokesh7385/mudra/internal/logging"
	"github.com/lokesh7385/mudra/internal/metrics"
	"github.com/lokesh7385/mudra/internal/store"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

type recordingExecutor struct {
	mu   sync.Mutex
	got  []action.Action
	err  error
	done chan action.Action
}

func newRecordingExecutor() *recordingExecutor {
	return &recordingExecutor{done: make(chan action.Action, 64)}
}

func (r *recordingExecutor) Execute(ctx context.Context, a action.Action) error {
	r.mu.Lock()
	r.got = append(r.got, a)
	r.mu.Unlock()
	r.done <- a
	return r.err
}

func (r *recordingExecutor) wait(t *testing.T) action.Action {
	t.Helper()
	select {
	case a := <-r.done:
		return a
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for action")
		return action.Action{}
	}
}

func newTestApp(t *testing.T, cfg Config) *App {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNop()
	}
	if cfg.Dispatcher == (dispatch.Config{}) {
		cfg.Dispatcher = dispatch.DefaultConfig()
	}
	return New(cfg)
}

func TestApp_ProcessHands(t *testing.T) {
	exec := newRecordingExecutor()
	a := newTestApp(t, Config{Executor: exec})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.RunWorker(ctx)

	ev := a.ProcessHands(handtest.Set(handtest.OpenPalm(hand.Right)), t0)
	assert.Equal(t, gesture.OpenPalm, ev.Gesture.Kind)
	assert.Equal(t, action.Of(action.PlayPause), ev.Action)
	assert.Equal(t, t0, ev.Time)
	assert.Equal(t, action.Of(action.PlayPause), exec.wait(t))

	// Still inside the cooldown.
	ev = a.ProcessHands(handtest.Set(handtest.OpenPalm(hand.Right)), t0.Add(500*time.Millisecond))
	assert.True(t, ev.Action.IsNone())

	ev = a.ProcessHands(handtest.Set(), t0.Add(600*time.Millisecond))
	assert.Equal(t, gesture.None, ev.Gesture.Kind)

	st := a.Status()
	require.NotNil(t, st.LastEvent)
	require.NotNil(t, st.LastAction)
	assert.Equal(t, gesture.None, st.LastEvent.Gesture.Kind)
	assert.Equal(t, action.PlayPause, st.LastAction.Action.Kind)
	assert.Equal(t, t0, st.LastAction.Time)
	assert.Equal(t, "idle", st.Mode)
	assert.False(t, st.Running)
}

func TestApp_ProcessHands_CursorAndNamaste(t *testing.T) {
	a := newTestApp(t, Config{})

	ev := a.ProcessHands(handtest.Set(handtest.TwoFingers(hand.Right)), t0)
	require.Equal(t, action.MoveMouse, ev.Action.Kind)
	assert.InDelta(t, ev.Gesture.Cursor.X, ev.Action.X, 1e-9)

	l, r := handtest.NamastePair()
	namaste := handtest.Set(l, r)
	assert.True(t, a.ProcessHands(namaste, t0.Add(100*time.Millisecond)).Action.IsNone())
	assert.True(t, a.ProcessHands(namaste, t0.Add(600*time.Millisecond)).Action.IsNone())
	ev = a.ProcessHands(namaste, t0.Add(1100*time.Millisecond))
	assert.Equal(t, action.Of(action.CloseTab), ev.Action)
}

func TestApp_QueueFullDrops(t *testing.T) {
	m := metrics.New()
	a := newTestApp(t, Config{QueueSize: 1, Metrics: m, Executor: newRecordingExecutor()})

	// No worker running: the first action fills the queue.
	a.ProcessHands(handtest.Set(handtest.OpenPalm(hand.Right)), t0)
	a.ProcessHands(handtest.Set(handtest.ThumbsUp(hand.Right)), t0.Add(time.Millisecond))
	a.ProcessHands(handtest.Set(handtest.Pinch(hand.Right)), t0.Add(2*time.Millisecond))

	assert.Len(t, a.queue, 1)
	assert.Equal(t, action.PlayPause, (<-a.queue).Kind)
	assert.Equal(t, 2.0, gathered(t, m, "mudra_actions_dropped_total"))
}

func TestApp_NoExecutorQueuesNothing(t *testing.T) {
	a := newTestApp(t, Config{QueueSize: 1})

	ev := a.ProcessHands(handtest.Set(handtest.OpenPalm(hand.Right)), t0)
	assert.Equal(t, action.PlayPause, ev.Action.Kind)
	assert.Empty(t, a.queue)
}

func TestApp_ExecutorErrorCounted(t *testing.T) {
	m := metrics.New()
	exec := newRecordingExecutor()
	exec.err = errors.New("plugin missing")
	a := newTestApp(t, Config{Executor: exec, Metrics: m})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.RunWorker(ctx)

	a.ProcessHands(handtest.Set(handtest.Pinch(hand.Right)), t0)
	exec.wait(t)

	assert.Eventually(t, func() bool {
		return gathered(t, m, "mudra_action_errors_total") == 1
	}, time.Second, 10*time.Millisecond)
}

func TestApp_Subscribe(t *testing.T) {
	a := newTestApp(t, Config{})

	events, unsubscribe := a.Subscribe(4)
	a.ProcessHands(handtest.Set(handtest.ThumbsDown(hand.Left)), t0)

	select {
	case ev := <-events:
		assert.Equal(t, gesture.ThumbsDown, ev.Gesture.Kind)
		assert.Equal(t, action.VolumeDown, ev.Action.Kind)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	unsubscribe()
	unsubscribe()
	_, open := <-events
	assert.False(t, open)

	// Publishing after unsubscribe must not panic.
	a.ProcessHands(handtest.Set(), t0.Add(time.Second))
}

func TestApp_SlowSubscriberDoesNotBlock(t *testing.T) {
	a := newTestApp(t, Config{})
	_, unsubscribe := a.Subscribe(1)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			a.ProcessHands(handtest.Set(), t0.Add(time.Duration(i)*time.Millisecond))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ProcessHands blocked on a full subscriber")
	}
}

func TestApp_EnabledPersisted(t *testing.T) {
	s, err := store.New(":memory:")
	require.NoError(t, err)
	defer s.Close()

	a := newTestApp(t, Config{Settings: s.Settings()})
	assert.True(t, a.IsEnabled(), "enabled by default")

	require.NoError(t, a.SetEnabled(false))
	assert.False(t, a.IsEnabled())

	b := newTestApp(t, Config{Settings: s.Settings()})
	assert.False(t, b.IsEnabled(), "restored from settings")
	assert.False(t, b.Status().Enabled)
}

func TestApp_DisableClearsHold(t *testing.T) {
	a := newTestApp(t, Config{Clock: func() time.Time { return t0 }})
	l, r := handtest.NamastePair()
	namaste := handtest.Set(l, r)

	a.ProcessHands(namaste, t0)
	require.NoError(t, a.SetEnabled(false))
	require.NoError(t, a.SetEnabled(true))

	ev := a.ProcessHands(namaste, t0.Add(1200*time.Millisecond))
	assert.Equal(t, gesture.Namaste, ev.Gesture.Kind)
	assert.True(t, ev.Action.IsNone(), "hold restarts after a disable")

	ev = a.ProcessHands(namaste, t0.Add(2300*time.Millisecond))
	assert.Equal(t, action.CloseTab, ev.Action.Kind)
}

func TestApp_StartRequiresCameraAndDetector(t *testing.T) {
	a := newTestApp(t, Config{})
	assert.Error(t, a.Start(context.Background()))
	assert.False(t, a.IsRunning())
	a.Stop()
}

func TestFrameHub(t *testing.T) {
	f := newFrameHub()
	assert.False(t, f.watched())

	release := f.watch()
	assert.True(t, f.watched())

	f.store([]byte{1, 2, 3})
	data, seq, ok := f.latest()
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, data)
	assert.Equal(t, uint64(1), seq)

	release()
	release()
	_, _, ok = f.latest()
	assert.False(t, ok, "frame dropped once nobody watches")
	assert.False(t, f.watched())
}

func gathered(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var total float64
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, metric := range f.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}
	return total
}
