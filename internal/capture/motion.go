package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

const (
	blurKernel    = 21
	diffThreshold = 25
)

// MotionDetector compares each frame with the previous one after grayscale
// conversion and a Gaussian blur. Motion is reported when more than
// threshold percent of pixels changed.
type MotionDetector struct {
	mu        sync.Mutex
	threshold float64
	prev      gocv.Mat
	primed    bool
}

// NewMotionDetector creates a detector. threshold is a percentage, so 1.0
// means 1% of pixels must change.
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		prev:      gocv.NewMat(),
	}
}

// Detect reports whether frame moved relative to the previous frame and the
// changed pixel percentage. The first frame only primes the baseline.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: blurKernel, Y: blurKernel}, 0, 0, gocv.BorderDefault)

	if !m.primed || blurred.Rows() != m.prev.Rows() || blurred.Cols() != m.prev.Cols() {
		blurred.CopyTo(&m.prev)
		m.primed = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prev, &diff)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(diff, &mask, diffThreshold, 255, gocv.ThresholdBinary)

	changed := float64(gocv.CountNonZero(mask)) / float64(mask.Rows()*mask.Cols()) * 100.0

	blurred.CopyTo(&m.prev)

	return changed > m.threshold, changed
}

// Reset drops the baseline so the next frame primes it again.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release()
}

// Close releases the stored baseline frame.
func (m *MotionDetector) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.release()
}

func (m *MotionDetector) release() {
	if !m.prev.Empty() {
		m.prev.Close()
		m.prev = gocv.NewMat()
	}
	m.primed = false
}

// SetThreshold ignores values <= 0.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.threshold = threshold
}
