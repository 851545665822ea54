//go:build detection

package detection

import (
	"context"
	"fmt"
	"io"

	"background-band/domain/band"

	"gocv.io/x/gocv"
)

// CaptureOpener implements band.SourceOpener using OpenCV's VideoCapture
type CaptureOpener struct{}

// NewCaptureOpener creates a new GoCV-based frame source opener
func NewCaptureOpener() *CaptureOpener {
	return &CaptureOpener{}
}

// Open implements band.SourceOpener
func (o *CaptureOpener) Open(ctx context.Context, path string) (band.FrameSource, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", band.ErrOpenFailure, path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: %s", band.ErrOpenFailure, path)
	}

	info := band.SourceInfo{
		Width:       int(vc.Get(gocv.VideoCaptureFrameWidth)),
		Height:      int(vc.Get(gocv.VideoCaptureFrameHeight)),
		FPS:         vc.Get(gocv.VideoCaptureFPS),
		TotalFrames: int(vc.Get(gocv.VideoCaptureFrameCount)),
	}

	return &captureSource{vc: vc, mat: gocv.NewMat(), info: info}, nil
}

// captureSource reads frames into a reused Mat and copies them out
type captureSource struct {
	vc   *gocv.VideoCapture
	mat  gocv.Mat
	info band.SourceInfo
}

func (s *captureSource) Info() band.SourceInfo {
	return s.info
}

// Next decodes the next frame. An empty read is the end of the stream.
func (s *captureSource) Next() (*band.Frame, error) {
	if ok := s.vc.Read(&s.mat); !ok || s.mat.Empty() {
		return nil, io.EOF
	}
	if s.mat.Channels() != band.Channels {
		return nil, fmt.Errorf("unsupported frame with %d channels", s.mat.Channels())
	}
	return band.NewFrame(s.mat.Cols(), s.mat.Rows(), s.mat.ToBytes())
}

// Close releases the Mat and the capture
func (s *captureSource) Close() error {
	s.mat.Close()
	return s.vc.Close()
}

// Ensure CaptureOpener implements band.SourceOpener
var _ band.SourceOpener = (*CaptureOpener)(nil)
