package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lokesh7385/mudra/internal/app"
	"github.com/lokesh7385/mudra/internal/capture"
	"github.com/lokesh7385/mudra/internal/config"
	"github.com/lokesh7385/mudra/internal/detector"
	"github.com/lokesh7385/mudra/internal/metrics"
	"github.com/lokesh7385/mudra/internal/plugin"
	"github.com/lokesh7385/mudra/internal/store"
)

// services holds the long-lived collaborators shared by commands.
type services struct {
	cfg     config.Config
	log     *slog.Logger
	store   *store.Store
	plugins *plugin.Manager
	actions *plugin.ActionExecutor
}

// openServices opens the database and discovers plugins.
func openServices(cfg config.Config, log *slog.Logger) (*services, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	st, err := store.New(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	plugins := plugin.NewManager(cfg.Plugins.Dir, plugin.WithLogger(log))
	if err := plugins.Discover(); err != nil {
		log.Warn("plugin discovery failed", "dir", cfg.Plugins.Dir, "error", err)
	}

	executor := plugin.NewExecutor(cfg.Plugins.Timeout)
	return &services{
		cfg:     cfg,
		log:     log,
		store:   st,
		plugins: plugins,
		actions: plugin.NewActionExecutor(plugins, executor, st.Bindings(), log),
	}, nil
}

func (s *services) Close() error {
	return s.store.Close()
}

// newPipeline builds an App reading from the configured camera through the
// MediaPipe tracker.
func (s *services) newPipeline(m *metrics.Metrics) (*app.App, error) {
	cfg := s.cfg

	det, err := detector.NewMediaPipeDetector(detectorConfig(cfg), s.log)
	if err != nil {
		return nil, err
	}

	return app.New(app.Config{
		Camera:     capture.NewCamera(cameraConfig(cfg)),
		Detector:   det,
		Motion:     capture.NewMotionDetector(cfg.Camera.MotionThreshold),
		Gate:       gateConfig(cfg),
		Mirror:     cfg.Camera.Mirror,
		Classifier: cfg.GestureConfig(),
		Dispatcher: cfg.DispatchConfig(),
		Executor:   s.actions,
		QueueSize:  cfg.Camera.QueueSize,
		Settings:   s.store.Settings(),
		Metrics:    m,
		Logger:     s.log,
	}), nil
}

func cameraConfig(cfg config.Config) capture.Config {
	return capture.Config{
		DeviceID: cfg.Camera.DeviceID,
		Width:    cfg.Camera.Width,
		Height:   cfg.Camera.Height,
		FPS:      cfg.Camera.IdleFPS,
	}
}

func gateConfig(cfg config.Config) capture.GateConfig {
	return capture.GateConfig{
		IdleFPS:     cfg.Camera.IdleFPS,
		ActiveFPS:   cfg.Camera.ActiveFPS,
		IdleTimeout: cfg.Camera.IdleTimeout,
	}
}

func detectorConfig(cfg config.Config) detector.Config {
	d := cfg.Detector
	return detector.Config{
		MaxHands:        d.MaxHands,
		MinConfidence:   d.MinConfidence,
		MinTrackingConf: d.MinTrackingConf,
		Script:          d.Script,
		Python:          d.Python,
		IdleShutdown:    d.IdleShutdown,
	}
}
