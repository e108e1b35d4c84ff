// Package app wires capture, tracking, classification, dispatch and action
// execution into the running mudra pipeline.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lokesh7385/mudra/internal/action"
	"github.com/lokesh7385/mudra/internal/capture"
	"github.com/lokesh7385/mudra/internal/detector"
	"github.com/lokesh7385/mudra/internal/dispatch"
	"github.com/lokesh7385/mudra/internal/gesture"
	"github.com/lokesh7385/mudra/internal/metrics"
	"github.com/lokesh7385/mudra/internal/store"
)

// DefaultQueueSize is the number of pending actions kept before new ones
// are dropped.
const DefaultQueueSize = 8

// Settings persists user toggles. *store.SettingsRepository satisfies it.
type Settings interface {
	Bool(key string, def bool) (bool, error)
	SetBool(key string, value bool) error
}

// Config holds the collaborators and options of an App. Camera and
// Detector are only needed by Start; ProcessHands works without them.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	// Motion gates detection between idle and active frame rates. Nil keeps
	// the pipeline active on every frame.
	Motion *capture.MotionDetector
	Gate   capture.GateConfig
	Mirror bool

	Classifier gesture.Config
	Dispatcher dispatch.Config

	Executor  action.Executor
	QueueSize int

	Settings Settings
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// App is the frame orchestrator. It owns the only Dispatcher.
type App struct {
	config     Config
	log        *slog.Logger
	clock      func() time.Time
	classifier *gesture.Classifier
	gate       *capture.Gate

	procMu     sync.Mutex
	dispatcher *dispatch.Dispatcher

	queue chan action.Action

	events *hub
	frames *frameHub

	mu         sync.RWMutex
	enabled    bool
	mode       capture.Mode
	lastEvent  *Event
	lastAction *Event
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// New creates an App. Detection starts enabled unless Settings says
// otherwise.
func New(config Config) *App {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueSize
	}

	a := &App{
		config:     config,
		log:        config.Logger,
		clock:      config.Clock,
		classifier: gesture.NewClassifier(config.Classifier),
		gate:       capture.NewGate(config.Gate),
		dispatcher: dispatch.New(config.Dispatcher),
		queue:      make(chan action.Action, config.QueueSize),
		events:     newHub(),
		frames:     newFrameHub(),
		enabled:    true,
	}

	if config.Settings != nil {
		enabled, err := config.Settings.Bool(store.SettingEnabled, true)
		if err != nil {
			a.log.Warn("load enabled setting", "error", err)
		}
		a.enabled = enabled
	}

	return a
}

// SetEnabled turns detection on or off and persists the choice. Disabling
// clears holds, the zoom baseline and cursor history; cooldowns survive.
func (a *App) SetEnabled(enabled bool) error {
	a.mu.Lock()
	a.enabled = enabled
	a.mu.Unlock()

	if !enabled {
		a.procMu.Lock()
		a.dispatcher.Dispatch(gesture.Of(gesture.None), a.clock())
		a.procMu.Unlock()
	}

	a.log.Info("detection toggled", "enabled", enabled)

	if a.config.Settings == nil {
		return nil
	}
	if err := a.config.Settings.SetBool(store.SettingEnabled, enabled); err != nil {
		return fmt.Errorf("persist enabled: %w", err)
	}
	return nil
}

// IsEnabled returns whether detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// IsRunning reports whether the pipeline has been started.
func (a *App) IsRunning() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cancel != nil
}

// Status is a point-in-time view of the pipeline.
type Status struct {
	Enabled    bool   `json:"enabled"`
	Running    bool   `json:"running"`
	Mode       string `json:"mode"`
	LastEvent  *Event `json:"last_event,omitempty"`
	LastAction *Event `json:"last_action,omitempty"`
}

// Status returns the current pipeline status.
func (a *App) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := Status{
		Enabled: a.enabled,
		Running: a.cancel != nil,
		Mode:    a.mode.String(),
	}
	if a.lastEvent != nil {
		ev := *a.lastEvent
		s.LastEvent = &ev
	}
	if a.lastAction != nil {
		ev := *a.lastAction
		s.LastAction = &ev
	}
	return s
}

// Start opens the camera and runs the frame loop and the action worker
// until Stop is called or ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		return nil
	}
	if a.config.Camera == nil || a.config.Detector == nil {
		return errors.New("app: camera and detector are required to start")
	}

	if err := a.config.Camera.Open(); err != nil {
		return err
	}
	fps := a.gate.FPS()
	a.config.Camera.SetFPS(fps)

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(2)
	go func() {
		defer a.wg.Done()
		a.RunWorker(ctx)
	}()
	go func() {
		defer a.wg.Done()
		a.runPipeline(ctx)
	}()

	a.log.Info("detection pipeline started", "mirror", a.config.Mirror, "fps", fps)
	return nil
}

// Stop halts the pipeline and releases the camera, motion detector and
// tracker.
func (a *App) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	a.wg.Wait()

	if err := a.config.Camera.Close(); err != nil {
		a.log.Warn("close camera", "error", err)
	}
	if a.config.Motion != nil {
		a.config.Motion.Reset()
	}
	if err := a.config.Detector.Close(); err != nil {
		a.log.Warn("close detector", "error", err)
	}

	a.log.Info("detection pipeline stopped")
}

// Subscribe registers for per-frame events. Events are dropped for a
// subscriber whose buffer is full. Call the returned func to unsubscribe.
func (a *App) Subscribe(buffer int) (<-chan Event, func()) {
	return a.events.subscribe(buffer)
}

// WatchFrames asks the pipeline to keep the latest frame as JPEG until the
// returned func is called.
func (a *App) WatchFrames() func() {
	return a.frames.watch()
}

// LatestFrame returns the most recent JPEG frame, if one is available.
func (a *App) LatestFrame() ([]byte, uint64, bool) {
	return a.frames.latest()
}
