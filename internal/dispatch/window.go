package dispatch

// window is a fixed-capacity rolling buffer of samples. Pushing into a full
// window evicts the oldest sample.
type window struct {
	buf  []float64
	next int
	full bool
}

func newWindow(size int) *window {
	if size < 1 {
		size = 1
	}
	return &window{buf: make([]float64, size)}
}

func (w *window) push(v float64) {
	w.buf[w.next] = v
	w.next = (w.next + 1) % len(w.buf)
	if w.next == 0 {
		w.full = true
	}
}

func (w *window) len() int {
	if w.full {
		return len(w.buf)
	}
	return w.next
}

// mean returns the arithmetic mean of the buffered samples, or 0 when empty.
func (w *window) mean() float64 {
	n := w.len()
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += w.buf[i]
	}
	return sum / float64(n)
}

func (w *window) reset() {
	w.next = 0
	w.full = false
}
