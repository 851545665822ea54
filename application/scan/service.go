package scan

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"background-band/domain/band"
	"background-band/domain/video"
	"background-band/infrastructure/config"
)

// FileLister enumerates the entries of a directory
type FileLister interface {
	List(dir string) ([]string, error)
}

// Outcome is the result of scanning one directory entry
type Outcome struct {
	Path   string
	Result *Result
	Err    error
}

// Summary collects the outcomes of a directory run in scan order
type Summary struct {
	Files []Outcome
}

// Succeeded counts the files that produced a timeline
func (s *Summary) Succeeded() int {
	n := 0
	for _, f := range s.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts the files that could not be scanned
func (s *Summary) Failed() int {
	return len(s.Files) - s.Succeeded()
}

// Service runs a scan job for every entry of a directory, one at a time
type Service struct {
	lister FileLister
	opener band.SourceOpener
	writer TimelineWriter
	cfg    *config.Config
	logger zerolog.Logger
	output io.Writer
}

// NewService creates a new scan service
func NewService(
	lister FileLister,
	opener band.SourceOpener,
	writer TimelineWriter,
	cfg *config.Config,
	logger zerolog.Logger,
	output io.Writer,
) *Service {
	return &Service{
		lister: lister,
		opener: opener,
		writer: writer,
		cfg:    cfg,
		logger: logger,
		output: output,
	}
}

// Run scans every entry of dir. A failing file is reported and the run
// moves on to the next one; only a directory that cannot be listed fails
// the run itself.
func (s *Service) Run(ctx context.Context, dir string) (*Summary, error) {
	paths, err := s.lister.List(dir)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("dir", dir).Int("entries", len(paths)).Msg("directory listed")

	summary := &Summary{}
	for _, path := range paths {
		fmt.Fprintln(s.output, path)
		outcome := s.scanFile(ctx, path)
		if outcome.Err != nil {
			fmt.Fprintln(s.output, outcome.Err)
		} else {
			s.printTimeline(outcome.Result)
		}
		summary.Files = append(summary.Files, outcome)
	}

	s.logger.Info().
		Int("files", len(summary.Files)).
		Int("failed", summary.Failed()).
		Msg("run finished")
	return summary, nil
}

func (s *Service) scanFile(ctx context.Context, path string) Outcome {
	job, err := StartJob(ctx, path, s.opener,
		WithTimelineWriter(s.writer),
		WithProgressEvery(s.cfg.Scan.ProgressEvery),
		WithLogger(s.logger),
	)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("unable to start scan")
		return Outcome{Path: path, Err: err}
	}

	interval := s.cfg.Scan.PollInterval
	if interval <= 0 {
		interval = config.Default().Scan.PollInterval
	}
	for !job.Finished() {
		fmt.Fprintf(s.output, "%d%%\r", job.Progress())
		select {
		case <-job.Done():
		case <-time.After(interval):
		}
	}
	fmt.Fprintf(s.output, "%d%%\n", job.Progress())

	result, err := job.Wait()
	return Outcome{Path: path, Result: result, Err: err}
}

func (s *Service) printTimeline(r *Result) {
	fmt.Fprintf(s.output, "Found %d events (upper row %d, lower row %d)\n",
		len(r.Timeline.Events), r.Timeline.UpperMode, r.Timeline.LowerMode)
	for _, e := range r.Timeline.Events {
		ts := video.FrameTimestamp(e.Frame, r.Info.FPS)
		if e.Appear {
			fmt.Fprintf(s.output, "  %s  frame %d  appear\n", ts, e.Frame)
		} else {
			fmt.Fprintf(s.output, "  %s  frame %d  disappear\n", ts, e.Frame)
		}
	}
	if r.OutputPath != "" {
		fmt.Fprintf(s.output, "Saved: %s\n", r.OutputPath)
	}
}
