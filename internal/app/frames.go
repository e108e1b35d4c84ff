package app

import (
	"sync"

	"gocv.io/x/gocv"
)

// frameHub keeps the latest frame as JPEG while at least one viewer is
// watching.
type frameHub struct {
	mu       sync.Mutex
	watchers int
	jpeg     []byte
	seq      uint64
}

func newFrameHub() *frameHub {
	return &frameHub{}
}

func (f *frameHub) watch() func() {
	f.mu.Lock()
	f.watchers++
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.watchers--
			if f.watchers == 0 {
				f.jpeg = nil
			}
		})
	}
}

func (f *frameHub) watched() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watchers > 0
}

// offer encodes frame if anyone is watching.
func (f *frameHub) offer(frame *gocv.Mat) error {
	if !f.watched() {
		return nil
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return err
	}
	defer buf.Close()

	data := append([]byte(nil), buf.GetBytes()...)
	f.store(data)
	return nil
}

func (f *frameHub) store(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jpeg = data
	f.seq++
}

func (f *frameHub) latest() ([]byte, uint64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jpeg, f.seq, f.jpeg != nil
}
