package server

import (
	"fmt"
	"net/http"
	"time"
)

// FrameSource provides the latest encoded camera frame. *app.App satisfies
// it.
type FrameSource interface {
	WatchFrames() func()
	LatestFrame() ([]byte, uint64, bool)
}

// streamPoll is how often the stream checks for a new frame.
const streamPoll = 33 * time.Millisecond

// StreamHandler serves MJPEG frames from the running pipeline.
type StreamHandler struct {
	frames FrameSource
}

// NewStreamHandler creates a new StreamHandler reading from frames.
func NewStreamHandler(frames FrameSource) *StreamHandler {
	return &StreamHandler{frames: frames}
}

// ServeHTTP streams each new frame as one multipart part until the client
// disconnects.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stop := h.frames.WatchFrames()
	defer stop()

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	ticker := time.NewTicker(streamPoll)
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}

		data, seq, ok := h.frames.LatestFrame()
		if !ok || seq == last {
			continue
		}
		last = seq

		if _, err := fmt.Fprintf(w, "--frame\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n", len(data)); err != nil {
			return
		}
		if _, err := w.Write(data); err != nil {
			return
		}
		if _, err := fmt.Fprint(w, "\r\n"); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}
