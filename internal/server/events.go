package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lokesh7385/mudra/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

const (
	eventBuffer = 32
	writeWait   = 2 * time.Second
)

// EventSource publishes per-frame events. *app.App satisfies it.
type EventSource interface {
	Subscribe(buffer int) (<-chan app.Event, func())
}

// EventsHandler streams pipeline events to WebSocket clients as JSON text
// messages. Each connection gets its own subscription; a slow client only
// misses its own events.
type EventsHandler struct {
	events EventSource
	log    *slog.Logger
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(events EventSource, log *slog.Logger) *EventsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &EventsHandler{events: events, log: log}
}

// ServeHTTP upgrades the connection and forwards events until either side
// goes away.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade", "error", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := h.events.Subscribe(eventBuffer)
	defer unsubscribe()

	// Reads only detect the client closing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				h.log.Debug("websocket write", "error", err)
				return
			}
		}
	}
}
