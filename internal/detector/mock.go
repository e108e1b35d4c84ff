package detector

import (
	"sync"

	"gocv.io/x/gocv"

	"github.com/lokesh7385/mudra/internal/hand"
	"github.com/lokesh7385/mudra/internal/hand/handtest"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	mu    sync.Mutex
	hands hand.Set
	err   error
	calls int
}

// NewMockDetector creates a new MockDetector that reports no hands.
func NewMockDetector() *MockDetector {
	return &MockDetector{hands: hand.NewSet(handtest.Width, handtest.Height)}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands hand.Set) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
}

// SetPose is shorthand for SetHands with preset poses on a 640x480 frame.
func (m *MockDetector) SetPose(hands ...hand.Hand) {
	m.SetHands(handtest.Set(hands...))
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been called.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) (hand.Set, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return hand.NewSet(m.hands.Width, m.hands.Height), m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}
