// Package detector adapts external hand trackers to per-frame hand sets.
package detector

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/lokesh7385/mudra/internal/hand"
)

// Detector defines the interface for hand tracking implementations.
type Detector interface {
	// Detect analyzes a video frame and returns the hands tracked in it,
	// in the frame's pixel coordinates. An empty set means no hands.
	Detect(frame *gocv.Mat) (hand.Set, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// Script overrides the mediapipe_service.py lookup.
	Script string

	// Python overrides the interpreter lookup.
	Python string

	// IdleShutdown stops the tracker process after this long without frames.
	IdleShutdown time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        2,
		MinConfidence:   0.7,
		MinTrackingConf: 0.5,
		IdleShutdown:    30 * time.Second,
	}
}
