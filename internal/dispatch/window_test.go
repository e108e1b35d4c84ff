package dispatch

import "testing"

func TestWindow(t *testing.T) {
	w := newWindow(3)

	if got := w.mean(); got != 0 {
		t.Errorf("empty mean = %f, want 0", got)
	}

	w.push(1)
	w.push(2)
	if w.len() != 2 {
		t.Errorf("len = %d, want 2", w.len())
	}
	if got := w.mean(); got != 1.5 {
		t.Errorf("mean = %f, want 1.5", got)
	}

	w.push(3)
	w.push(10) // evicts 1
	if w.len() != 3 {
		t.Errorf("len = %d, want capacity 3", w.len())
	}
	if got := w.mean(); got != 5 {
		t.Errorf("mean = %f, want 5", got)
	}

	for i := 0; i < 100; i++ {
		w.push(float64(i))
		if w.len() > 3 {
			t.Fatalf("len %d exceeds capacity", w.len())
		}
	}

	w.reset()
	if w.len() != 0 {
		t.Errorf("len after reset = %d, want 0", w.len())
	}
}

func TestWindow_MinimumSize(t *testing.T) {
	w := newWindow(0)
	w.push(4)
	w.push(7)
	if got := w.mean(); got != 7 {
		t.Errorf("mean = %f, want 7", got)
	}
}
