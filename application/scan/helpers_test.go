package scan

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"background-band/domain/band"
)

var (
	gray200 = band.RGB{R: 200, G: 200, B: 200}
	gray100 = band.RGB{R: 100, G: 100, B: 100}
)

// plainFrame is a 64x128 frame filled with gray200
func plainFrame() *band.Frame {
	f, _ := band.NewFrame(64, 128, make([]byte, 64*128*band.Channels))
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.Set(x, y, gray200)
		}
	}
	return f
}

// bandedFrame is plainFrame with a darker band from row 100 to the bottom
func bandedFrame() *band.Frame {
	f := plainFrame()
	for y := 100; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.Set(x, y, gray100)
		}
	}
	return f
}

// fakeSource serves declared frames, of which the first `available` exist.
// Frames from bandFrom onward carry the band; bandFrom < 0 never does.
type fakeSource struct {
	info      band.SourceInfo
	available int
	bandFrom  int
	readErrAt int
	gate      chan struct{}

	mu     sync.Mutex
	served int
	closed bool
}

func newFakeSource(total, bandFrom int) *fakeSource {
	return &fakeSource{
		info:      band.SourceInfo{Width: 64, Height: 128, FPS: 25, TotalFrames: total},
		available: total,
		bandFrom:  bandFrom,
		readErrAt: -1,
	}
}

func (s *fakeSource) Info() band.SourceInfo {
	return s.info
}

func (s *fakeSource) Next() (*band.Frame, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.served
	if n == s.readErrAt {
		return nil, errors.New("decoder error")
	}
	if n >= s.available {
		return nil, io.EOF
	}
	s.served++
	if s.bandFrom >= 0 && n >= s.bandFrom {
		return bandedFrame(), nil
	}
	return plainFrame(), nil
}

func (s *fakeSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *fakeSource) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fakeOpener hands out sources by path
type fakeOpener struct {
	sources map[string]*fakeSource
	opened  []string
}

func (o *fakeOpener) Open(ctx context.Context, path string) (band.FrameSource, error) {
	o.opened = append(o.opened, path)
	src, ok := o.sources[path]
	if !ok {
		return nil, errors.New("no such file")
	}
	return src, nil
}

// memoryWriter records timelines instead of writing files
type memoryWriter struct {
	mu        sync.Mutex
	timelines map[string]*band.Timeline
	err       error
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{timelines: make(map[string]*band.Timeline)}
}

func (w *memoryWriter) Write(sourcePath string, tl *band.Timeline) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return "", w.err
	}
	w.timelines[sourcePath] = tl
	return sourcePath + ".csv", nil
}

// fakeLister returns a fixed listing
type fakeLister struct {
	paths []string
	err   error
}

func (l *fakeLister) List(dir string) ([]string, error) {
	return l.paths, l.err
}

// syncBuffer is a bytes.Buffer safe for concurrent writers
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
