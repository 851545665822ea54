package band

import "context"

// SourceInfo describes an opened video stream
type SourceInfo struct {
	Width       int
	Height      int
	FPS         float64
	TotalFrames int
}

// FrameSource yields decoded frames in order. Next returns io.EOF at the
// end of the stream.
type FrameSource interface {
	Info() SourceInfo
	Next() (*Frame, error)
	Close() error
}

// SourceOpener opens frame sources for video paths
// This is a port implemented by the decoder adapters
type SourceOpener interface {
	Open(ctx context.Context, path string) (FrameSource, error)
}
