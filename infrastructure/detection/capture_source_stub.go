//go:build !detection

package detection

import (
	"context"
	"fmt"

	"background-band/domain/band"
)

// CaptureOpener is a stub when GoCV/OpenCV is not available
type CaptureOpener struct{}

// NewCaptureOpener creates a stub opener (requires building with -tags=detection)
func NewCaptureOpener() *CaptureOpener {
	return &CaptureOpener{}
}

// Open returns an error indicating the gocv backend is not available
func (o *CaptureOpener) Open(ctx context.Context, path string) (band.FrameSource, error) {
	return nil, fmt.Errorf("%w: %s: gocv decoder not available: build with '-tags=detection' and install OpenCV/GoCV", band.ErrOpenFailure, path)
}

// Ensure CaptureOpener implements band.SourceOpener
var _ band.SourceOpener = (*CaptureOpener)(nil)
