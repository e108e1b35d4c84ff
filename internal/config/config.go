// Package config loads mudra's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lokesh7385/mudra/internal/dispatch"
	"github.com/lokesh7385/mudra/internal/gesture"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the complete application configuration.
type Config struct {
	DataDir    string           `yaml:"data_dir"`
	Camera     CameraConfig     `yaml:"camera"`
	Detector   DetectorConfig   `yaml:"detector"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Dispatcher DispatcherConfig `yaml:"dispatcher"`
	Plugins    PluginsConfig    `yaml:"plugins"`
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
}

// CameraConfig controls frame capture and the motion gate.
type CameraConfig struct {
	DeviceID        int           `yaml:"device_id"`
	Width           int           `yaml:"width"`
	Height          int           `yaml:"height"`
	IdleFPS         int           `yaml:"idle_fps"`
	ActiveFPS       int           `yaml:"active_fps"`
	MotionThreshold float64       `yaml:"motion_threshold"` // percent of changed pixels
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	Mirror          bool          `yaml:"mirror"`
	QueueSize       int           `yaml:"action_queue"` // pending actions before new ones are dropped
}

// DetectorConfig controls the MediaPipe hand tracker subprocess.
type DetectorConfig struct {
	MaxHands        int           `yaml:"max_hands"`
	MinConfidence   float64       `yaml:"min_confidence"`
	MinTrackingConf float64       `yaml:"min_tracking_confidence"`
	Script          string        `yaml:"script"` // empty: search the usual locations
	Python          string        `yaml:"python"` // empty: venv python, then python3
	IdleShutdown    time.Duration `yaml:"idle_shutdown"`
}

// ClassifierConfig mirrors gesture.Config.
type ClassifierConfig struct {
	NamasteRatio float64 `yaml:"namaste_ratio"`
	PinchRatio   float64 `yaml:"pinch_ratio"`
}

// DispatcherConfig mirrors dispatch.Config.
type DispatcherConfig struct {
	PlayPauseCooldown time.Duration `yaml:"play_pause_cooldown"`
	VolumeCooldown    time.Duration `yaml:"volume_cooldown"`
	ClickCooldown     time.Duration `yaml:"click_cooldown"`
	CloseTabCooldown  time.Duration `yaml:"close_tab_cooldown"`
	NamasteHold       time.Duration `yaml:"namaste_hold"`
	ZoomThreshold     float64       `yaml:"zoom_threshold"`
	ZoomMaxDistance   float64       `yaml:"zoom_max_distance"`
	SmoothingWindow   int           `yaml:"smoothing_window"`
}

// PluginsConfig locates and bounds action plugins.
type PluginsConfig struct {
	Dir     string        `yaml:"dir"`
	Timeout time.Duration `yaml:"timeout"`
}

// ServerConfig controls the local dashboard server.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	StaticDir string `yaml:"static_dir"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// DefaultDir returns ~/.mudra, or .mudra when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mudra"
	}
	return filepath.Join(home, ".mudra")
}

// DefaultPath returns the config file location inside DefaultDir.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// Default returns the built-in configuration.
func Default() Config {
	dir := DefaultDir()
	gc := gesture.DefaultConfig()
	dc := dispatch.DefaultConfig()

	return Config{
		DataDir: dir,
		Camera: CameraConfig{
			Width:           640,
			Height:          480,
			IdleFPS:         5,
			ActiveFPS:       15,
			MotionThreshold: 1.0,
			IdleTimeout:     2 * time.Second,
			Mirror:          true,
			QueueSize:       8,
		},
		Detector: DetectorConfig{
			MaxHands:        2,
			MinConfidence:   0.7,
			MinTrackingConf: 0.5,
			IdleShutdown:    30 * time.Second,
		},
		Classifier: ClassifierConfig{
			NamasteRatio: gc.NamasteRatio,
			PinchRatio:   gc.PinchRatio,
		},
		Dispatcher: DispatcherConfig{
			PlayPauseCooldown: dc.PlayPauseCooldown,
			VolumeCooldown:    dc.VolumeCooldown,
			ClickCooldown:     dc.ClickCooldown,
			CloseTabCooldown:  dc.CloseTabCooldown,
			NamasteHold:       dc.NamasteHold,
			ZoomThreshold:     dc.ZoomThreshold,
			ZoomMaxDistance:   dc.ZoomMaxDistance,
			SmoothingWindow:   dc.SmoothingWindow,
		},
		Plugins: PluginsConfig{
			Dir:     filepath.Join(dir, "plugins"),
			Timeout: 5 * time.Second,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Write stores cfg as YAML at path, creating parent directories.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// GestureConfig returns the classifier thresholds.
func (c Config) GestureConfig() gesture.Config {
	return gesture.Config{
		NamasteRatio: c.Classifier.NamasteRatio,
		PinchRatio:   c.Classifier.PinchRatio,
	}
}

// DispatchConfig returns the dispatcher rules.
func (c Config) DispatchConfig() dispatch.Config {
	d := c.Dispatcher
	return dispatch.Config{
		PlayPauseCooldown: d.PlayPauseCooldown,
		VolumeCooldown:    d.VolumeCooldown,
		ClickCooldown:     d.ClickCooldown,
		CloseTabCooldown:  d.CloseTabCooldown,
		NamasteHold:       d.NamasteHold,
		ZoomThreshold:     d.ZoomThreshold,
		ZoomMaxDistance:   d.ZoomMaxDistance,
		SmoothingWindow:   d.SmoothingWindow,
	}
}

// DBPath returns the SQLite database path inside DataDir.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "mudra.db")
}
