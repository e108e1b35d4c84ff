package config

import (
	"fmt"

	"github.com/lokesh7385/mudra/internal/logging"
)

// Validate checks every section and returns the first problem found,
// wrapped in ErrInvalid.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return invalid("data_dir is required")
	}

	cam := c.Camera
	if cam.Width <= 0 || cam.Height <= 0 {
		return invalid("camera size must be positive, got %dx%d", cam.Width, cam.Height)
	}
	if cam.IdleFPS <= 0 || cam.ActiveFPS <= 0 {
		return invalid("camera fps must be positive")
	}
	if cam.ActiveFPS < cam.IdleFPS {
		return invalid("camera active_fps (%d) below idle_fps (%d)", cam.ActiveFPS, cam.IdleFPS)
	}
	if cam.MotionThreshold < 0 || cam.MotionThreshold > 100 {
		return invalid("camera motion_threshold must be a percentage, got %v", cam.MotionThreshold)
	}
	if cam.IdleTimeout < 0 {
		return invalid("camera idle_timeout must not be negative")
	}
	if cam.QueueSize < 1 {
		return invalid("camera action_queue must be at least 1")
	}

	if c.Detector.MaxHands < 1 || c.Detector.MaxHands > 2 {
		return invalid("detector max_hands must be 1 or 2, got %d", c.Detector.MaxHands)
	}
	if !unit(c.Detector.MinConfidence) || !unit(c.Detector.MinTrackingConf) {
		return invalid("detector confidences must lie in [0,1]")
	}

	if c.Classifier.NamasteRatio <= 0 || c.Classifier.PinchRatio <= 0 {
		return invalid("classifier ratios must be positive")
	}

	d := c.Dispatcher
	for name, v := range map[string]int64{
		"play_pause_cooldown": int64(d.PlayPauseCooldown),
		"volume_cooldown":     int64(d.VolumeCooldown),
		"click_cooldown":      int64(d.ClickCooldown),
		"close_tab_cooldown":  int64(d.CloseTabCooldown),
		"namaste_hold":        int64(d.NamasteHold),
	} {
		if v < 0 {
			return invalid("dispatcher %s must not be negative", name)
		}
	}
	if d.ZoomThreshold < 0 || d.ZoomMaxDistance < 0 {
		return invalid("dispatcher zoom limits must not be negative")
	}
	if d.SmoothingWindow < 1 {
		return invalid("dispatcher smoothing_window must be at least 1")
	}

	if c.Plugins.Timeout <= 0 {
		return invalid("plugins timeout must be positive")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return invalid("log: %v", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return invalid("log format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
