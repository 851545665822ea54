//go:build integration

package steps

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"background-band/domain/band"
)

const (
	videoWidth  = 64
	videoHeight = 128
	bandTop     = 100
)

// syntheticVideo describes a generated clip: a light gray picture with a
// darker band from bandTop to the bottom in frames [bandFrom, bandTo)
type syntheticVideo struct {
	total     int
	available int
	bandFrom  int
	bandTo    int
}

func (v syntheticVideo) frame(n int) *band.Frame {
	data := make([]byte, videoWidth*videoHeight*band.Channels)
	f, _ := band.NewFrame(videoWidth, videoHeight, data)
	banded := v.bandFrom >= 0 && n >= v.bandFrom && n < v.bandTo
	for y := 0; y < videoHeight; y++ {
		p := band.RGB{R: 200, G: 200, B: 200}
		if banded && y >= bandTop {
			p = band.RGB{R: 100, G: 100, B: 100}
		}
		for x := 0; x < videoWidth; x++ {
			f.Set(x, y, p)
		}
	}
	return f
}

// syntheticSource plays a syntheticVideo
type syntheticSource struct {
	video syntheticVideo
	next  int
}

func (s *syntheticSource) Info() band.SourceInfo {
	return band.SourceInfo{Width: videoWidth, Height: videoHeight, FPS: 25, TotalFrames: s.video.total}
}

func (s *syntheticSource) Next() (*band.Frame, error) {
	if s.next >= s.video.available {
		return nil, io.EOF
	}
	f := s.video.frame(s.next)
	s.next++
	return f, nil
}

func (s *syntheticSource) Close() error {
	return nil
}

// syntheticOpener opens generated videos by file name; any other file
// fails to open
type syntheticOpener struct {
	videos map[string]syntheticVideo
}

func newSyntheticOpener() *syntheticOpener {
	return &syntheticOpener{videos: make(map[string]syntheticVideo)}
}

func (o *syntheticOpener) Open(ctx context.Context, path string) (band.FrameSource, error) {
	v, ok := o.videos[filepath.Base(path)]
	if !ok {
		return nil, errors.New("not a video")
	}
	return &syntheticSource{video: v}, nil
}
