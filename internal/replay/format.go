// Package replay reads and writes recorded landmark streams and runs them
// through the gesture pipeline with their recorded timing.
//
// A recording is JSON Lines, one frame per line:
//
//	{"t_ms":0,"width":640,"height":480,"hands":[{"side":"Right","points":[[x,y],...]}]}
//
// Points are in pixels and every hand carries exactly 21 of them.
package replay

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lokesh7385/mudra/internal/hand"
)

// ErrInvalidFrame is wrapped by every malformed-line error.
var ErrInvalidFrame = errors.New("invalid frame")

// Frame is one recorded frame.
type Frame struct {
	// Offset is the frame time relative to the start of the recording.
	Offset time.Duration
	Hands  hand.Set
}

type lineFrame struct {
	TimeMs float64    `json:"t_ms"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Hands  []lineHand `json:"hands"`
}

type lineHand struct {
	Side   string      `json:"side"`
	Points [][]float64 `json:"points"`
}

// Reader decodes a recording line by line.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// NewReader reads frames from r.
func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: s}
}

// Next returns the next frame, or io.EOF after the last one. Blank lines
// and lines starting with # are skipped.
func (r *Reader) Next() (Frame, error) {
	for r.scanner.Scan() {
		r.line++
		text := strings.TrimSpace(r.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var lf lineFrame
		if err := json.Unmarshal([]byte(text), &lf); err != nil {
			return Frame{}, fmt.Errorf("line %d: %w: %v", r.line, ErrInvalidFrame, err)
		}
		f, err := lf.frame()
		if err != nil {
			return Frame{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		return f, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Frame{}, err
	}
	return Frame{}, io.EOF
}

// ReadAll returns every remaining frame.
func (r *Reader) ReadAll() ([]Frame, error) {
	var frames []Frame
	for {
		f, err := r.Next()
		if errors.Is(err, io.EOF) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames = append(frames, f)
	}
}

func (lf lineFrame) frame() (Frame, error) {
	if lf.TimeMs < 0 {
		return Frame{}, fmt.Errorf("%w: negative t_ms %v", ErrInvalidFrame, lf.TimeMs)
	}
	if lf.Width < 0 || lf.Height < 0 {
		return Frame{}, fmt.Errorf("%w: negative frame size %dx%d", ErrInvalidFrame, lf.Width, lf.Height)
	}

	set := hand.NewSet(lf.Width, lf.Height)
	seen := map[hand.Side]bool{}
	for i, lh := range lf.Hands {
		side, ok := hand.ParseSide(lh.Side)
		if !ok {
			return Frame{}, fmt.Errorf("%w: hand %d: unknown side %q", ErrInvalidFrame, i, lh.Side)
		}
		if seen[side] {
			return Frame{}, fmt.Errorf("%w: hand %d: duplicate side %s", ErrInvalidFrame, i, side)
		}
		seen[side] = true

		if len(lh.Points) != hand.NumLandmarks {
			return Frame{}, fmt.Errorf("%w: hand %d: %d points, want %d", ErrInvalidFrame, i, len(lh.Points), hand.NumLandmarks)
		}
		h := hand.Hand{Side: side}
		for j, p := range lh.Points {
			if len(p) != 2 {
				return Frame{}, fmt.Errorf("%w: hand %d point %d: %d coordinates, want 2", ErrInvalidFrame, i, j, len(p))
			}
			h.Points[j] = hand.Point{X: p[0], Y: p[1]}
		}
		set.Add(h)
	}

	return Frame{
		Offset: time.Duration(lf.TimeMs * float64(time.Millisecond)),
		Hands:  set,
	}, nil
}

// Writer encodes frames as JSON Lines.
type Writer struct {
	enc *json.Encoder
}

// NewWriter writes frames to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(w)}
}

// Write appends one frame.
func (w *Writer) Write(f Frame) error {
	lf := lineFrame{
		TimeMs: float64(f.Offset) / float64(time.Millisecond),
		Width:  f.Hands.Width,
		Height: f.Hands.Height,
		Hands:  []lineHand{},
	}
	for _, h := range f.Hands.Hands() {
		lh := lineHand{Side: string(h.Side), Points: make([][]float64, len(h.Points))}
		for i, p := range h.Points {
			lh.Points[i] = []float64{p.X, p.Y}
		}
		lf.Hands = append(lf.Hands, lh)
	}
	return w.enc.Encode(lf)
}
