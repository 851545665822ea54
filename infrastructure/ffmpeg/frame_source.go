package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io"

	"background-band/domain/band"
)

// FrameSourceOpener implements band.SourceOpener by probing a file with
// ffprobe and decoding it to raw BGR frames with ffmpeg
type FrameSourceOpener struct {
	ffmpegPath  string
	ffprobePath string
	runner      CommandRunner
}

// Option is a functional option for configuring FrameSourceOpener
type Option func(*FrameSourceOpener)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) Option {
	return func(o *FrameSourceOpener) {
		if path != "" {
			o.ffmpegPath = path
		}
	}
}

// WithFFprobePath sets a custom ffprobe executable path
func WithFFprobePath(path string) Option {
	return func(o *FrameSourceOpener) {
		if path != "" {
			o.ffprobePath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) Option {
	return func(o *FrameSourceOpener) {
		o.runner = runner
	}
}

// NewFrameSourceOpener creates a new ffmpeg-based frame source opener
func NewFrameSourceOpener(opts ...Option) *FrameSourceOpener {
	o := &FrameSourceOpener{
		ffmpegPath:  "ffmpeg",
		ffprobePath: "ffprobe",
		runner:      &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Open implements band.SourceOpener
func (o *FrameSourceOpener) Open(ctx context.Context, path string) (band.FrameSource, error) {
	output, err := o.runner.Output(ctx, o.ffprobePath, probeArgs(path)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: ffprobe failed: %v", band.ErrOpenFailure, path, err)
	}
	info, err := parseProbe(output)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", band.ErrOpenFailure, path, err)
	}

	stream, err := o.runner.Start(ctx, o.ffmpegPath,
		"-loglevel", "error",
		"-nostdin",
		"-i", path,
		"-map", "0:v:0",
		"-f", "rawvideo",
		"-pix_fmt", "bgr24",
		"-",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", band.ErrOpenFailure, path, err)
	}

	return &frameSource{info: info, stream: stream}, nil
}

// VerifyInstalled checks that ffmpeg and ffprobe are available
func (o *FrameSourceOpener) VerifyInstalled(ctx context.Context) error {
	for _, bin := range []string{o.ffmpegPath, o.ffprobePath} {
		if _, err := o.runner.Output(ctx, bin, "-version"); err != nil {
			return fmt.Errorf("%s not found or not executable: %w", bin, err)
		}
	}
	return nil
}

// frameSource reads fixed-size raw frames from a running ffmpeg
type frameSource struct {
	info   band.SourceInfo
	stream io.ReadCloser
}

func (s *frameSource) Info() band.SourceInfo {
	return s.info
}

// Next reads one frame. A short read at the end of the stream is treated as
// the end of the stream.
func (s *frameSource) Next() (*band.Frame, error) {
	buf := make([]byte, s.info.Width*s.info.Height*band.Channels)
	if _, err := io.ReadFull(s.stream, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}
	return band.NewFrame(s.info.Width, s.info.Height, buf)
}

func (s *frameSource) Close() error {
	return s.stream.Close()
}

// Ensure FrameSourceOpener implements band.SourceOpener
var _ band.SourceOpener = (*FrameSourceOpener)(nil)
