package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"background-band/domain/band"
)

// DefaultProgressEvery is how many frames pass between progress updates
const DefaultProgressEvery = 40

// State is the lifecycle stage of a job
type State int

const (
	StateOpening State = iota
	StateScanning
	StateAggregating
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateScanning:
		return "scanning"
	case StateAggregating:
		return "aggregating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// TimelineWriter persists the timeline of a scanned file
type TimelineWriter interface {
	Write(sourcePath string, tl *band.Timeline) (string, error)
}

// Result is the outcome of a successful job
type Result struct {
	JobID      string
	Path       string
	OutputPath string
	Info       band.SourceInfo
	Frames     int
	Timeline   *band.Timeline
}

// Job scans one file on its own goroutine. Callers poll Progress and State
// or block on Wait.
type Job struct {
	id            string
	path          string
	writer        TimelineWriter
	progressEvery int
	logger        zerolog.Logger

	mu       sync.Mutex
	progress int
	state    State
	result   *Result
	err      error
	done     chan struct{}
}

// JobOption configures a Job
type JobOption func(*Job)

// WithTimelineWriter sets where the finished timeline is stored
func WithTimelineWriter(w TimelineWriter) JobOption {
	return func(j *Job) {
		j.writer = w
	}
}

// WithProgressEvery sets the progress update interval in frames
func WithProgressEvery(n int) JobOption {
	return func(j *Job) {
		if n > 0 {
			j.progressEvery = n
		}
	}
}

// WithLogger sets the job logger
func WithLogger(l zerolog.Logger) JobOption {
	return func(j *Job) {
		j.logger = l
	}
}

// StartJob opens path and starts scanning it in the background. Open
// failures and empty sources are returned directly; everything after that
// is reported through Wait.
func StartJob(ctx context.Context, path string, opener band.SourceOpener, opts ...JobOption) (*Job, error) {
	j := &Job{
		id:            uuid.NewString(),
		path:          path,
		progressEvery: DefaultProgressEvery,
		logger:        zerolog.Nop(),
		state:         StateOpening,
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(j)
	}
	j.logger = j.logger.With().Str("job", j.id).Str("path", path).Logger()

	src, err := opener.Open(context.WithoutCancel(ctx), path)
	if err != nil {
		if !errors.Is(err, band.ErrOpenFailure) {
			err = fmt.Errorf("%w %s: %v", band.ErrOpenFailure, path, err)
		}
		return nil, err
	}

	info := src.Info()
	if info.TotalFrames <= 0 {
		src.Close()
		return nil, fmt.Errorf("%w: %s", band.ErrEmptySource, path)
	}

	j.logger.Debug().
		Int("width", info.Width).
		Int("height", info.Height).
		Float64("fps", info.FPS).
		Int("frames", info.TotalFrames).
		Msg("source opened")

	j.state = StateScanning
	go j.run(src, info)
	return j, nil
}

// ID is the unique id of the job
func (j *Job) ID() string {
	return j.id
}

// Path is the file being scanned
func (j *Job) Path() string {
	return j.path
}

// Progress is the completion percentage in [0, 100]
func (j *Job) Progress() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.progress
}

// State reports the current lifecycle stage
func (j *Job) State() State {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.state
}

// Finished reports whether the job reached Done or Failed
func (j *Job) Finished() bool {
	select {
	case <-j.done:
		return true
	default:
		return false
	}
}

// Done is closed once the job finishes
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job finishes and returns its outcome
func (j *Job) Wait() (*Result, error) {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.err
}

func (j *Job) run(src band.FrameSource, info band.SourceInfo) {
	defer src.Close()

	result, err := j.scan(src, info)

	j.mu.Lock()
	j.progress = 100
	if err != nil {
		j.state = StateFailed
		j.err = err
	} else {
		j.state = StateDone
		j.result = result
	}
	j.mu.Unlock()
	close(j.done)

	if err != nil {
		j.logger.Warn().Err(err).Msg("scan failed")
		return
	}
	j.logger.Info().
		Int("frames", result.Frames).
		Int("events", len(result.Timeline.Events)).
		Msg("scan finished")
}

func (j *Job) scan(src band.FrameSource, info band.SourceInfo) (*Result, error) {
	total := info.TotalFrames
	history := band.NewHistory()

	var prev *band.Frame
	for n := 0; n < total; n++ {
		if n%j.progressEvery == 0 {
			j.setProgress(100 * n / total)
		}

		frame, err := src.Next()
		if errors.Is(err, io.EOF) {
			// Containers often overstate the count by one.
			if n < total-1 {
				return nil, fmt.Errorf("%w %s: stream ended at frame %d of %d", band.ErrTruncatedSource, j.path, n, total)
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read frame %d of %s: %w", n, j.path, err)
		}

		history.Observe(prev, frame)
		prev = frame
	}

	j.setState(StateAggregating)
	timeline, err := band.Aggregate(history, total)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", j.path, err)
	}

	result := &Result{
		JobID:    j.id,
		Path:     j.path,
		Info:     info,
		Frames:   history.Frames(),
		Timeline: timeline,
	}
	if j.writer != nil {
		out, err := j.writer.Write(j.path, timeline)
		if err != nil {
			return nil, fmt.Errorf("failed to store timeline: %w", err)
		}
		result.OutputPath = out
	}
	return result, nil
}

func (j *Job) setProgress(p int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if p > j.progress {
		j.progress = p
	}
}

func (j *Job) setState(s State) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.state = s
}
