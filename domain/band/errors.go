package band

import "errors"

var (
	// ErrOpenFailure is returned when a frame source cannot open a path
	ErrOpenFailure = errors.New("unable to open video file")

	// ErrEmptySource is returned when a source reports no frames
	ErrEmptySource = errors.New("no frames in video file")

	// ErrTruncatedSource is returned when the stream ends before the declared frame count
	ErrTruncatedSource = errors.New("incomplete video file")

	// ErrNoBandDetected is returned when no boundary row dominates the file
	ErrNoBandDetected = errors.New("background bands not found in video file")
)
