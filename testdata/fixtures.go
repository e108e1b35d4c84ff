// Package testdata embeds recorded landmark streams and camera frames used
// by replay and end-to-end tests.
package testdata

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"gocv.io/x/gocv"
)

//go:embed replay/*.jsonl
var replayFS embed.FS

//go:embed frames/*
var framesFS embed.FS

// OpenReplay opens an embedded replay recording by name, with or without
// the .jsonl suffix.
func OpenReplay(name string) (io.ReadCloser, error) {
	if !strings.HasSuffix(name, ".jsonl") {
		name += ".jsonl"
	}
	f, err := replayFS.Open("replay/" + name)
	if err != nil {
		return nil, fmt.Errorf("open replay %s: %w", name, err)
	}
	return f, nil
}

// Replays lists the embedded recordings without their suffix.
func Replays() []string {
	matches, _ := fs.Glob(replayFS, "replay/*.jsonl")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(m, "replay/"), ".jsonl"))
	}
	sort.Strings(names)
	return names
}

// LoadFrame decodes an embedded camera frame. The caller owns the Mat.
func LoadFrame(name string) (*gocv.Mat, error) {
	data, err := framesFS.ReadFile("frames/" + name)
	if err != nil {
		return nil, fmt.Errorf("load frame %s: %w", name, err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode frame %s: %w", name, err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("decode frame %s: empty image", name)
	}

	return &mat, nil
}

// LoadSequence loads the named frames in order. On error every frame
// already loaded is closed.
func LoadSequence(names ...string) ([]*gocv.Mat, error) {
	var frames []*gocv.Mat
	for _, name := range names {
		frame, err := LoadFrame(name)
		if err != nil {
			for _, f := range frames {
				f.Close()
			}
			return nil, err
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
