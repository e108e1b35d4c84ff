package app

import (
	"sync"
	"time"

	"github.com/lokesh7385/mudra/internal/action"
	"github.com/lokesh7385/mudra/internal/gesture"
)

// Event describes one processed frame.
type Event struct {
	Time    time.Time       `json:"time"`
	Gesture gesture.Gesture `json:"gesture"`
	Action  action.Action   `json:"action"`
}

// hub fans events out to subscribers without blocking the publisher.
type hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[chan Event]struct{})}
}

func (h *hub) subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

func (h *hub) publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
