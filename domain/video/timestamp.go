package video

import (
	"fmt"
	"math"
)

// Timestamp represents a position in a video as HH:MM:SS.mmm
type Timestamp struct {
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
}

// FrameTimestamp converts a frame index into a timestamp at the given frame
// rate. A non-positive rate yields the zero timestamp.
func FrameTimestamp(frame int, fps float64) Timestamp {
	if fps <= 0 || frame <= 0 {
		return Timestamp{}
	}
	total := int64(math.Round(float64(frame) * 1000 / fps))
	return Timestamp{
		Hours:        int(total / 3600000),
		Minutes:      int(total % 3600000 / 60000),
		Seconds:      int(total % 60000 / 1000),
		Milliseconds: int(total % 1000),
	}
}

// String returns the timestamp in HH:MM:SS.mmm format
func (t Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", t.Hours, t.Minutes, t.Seconds, t.Milliseconds)
}

// TotalMilliseconds returns the timestamp as total milliseconds
func (t Timestamp) TotalMilliseconds() int64 {
	return int64(t.Hours)*3600000 + int64(t.Minutes)*60000 + int64(t.Seconds)*1000 + int64(t.Milliseconds)
}

// IsZero returns true if the timestamp is 00:00:00.000
func (t Timestamp) IsZero() bool {
	return t.TotalMilliseconds() == 0
}

// Before returns true if t is before other
func (t Timestamp) Before(other Timestamp) bool {
	return t.TotalMilliseconds() < other.TotalMilliseconds()
}
