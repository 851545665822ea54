package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"background-band/domain/band"
)

// Header is the first line of every timeline file
var Header = []string{"FrameN", "upperY", "lowerY"}

// Writer stores timelines next to their source video
type Writer struct {
	suffix string
}

// NewWriter creates a writer appending suffix to the source path
func NewWriter(suffix string) *Writer {
	if suffix == "" {
		suffix = ".csv"
	}
	return &Writer{suffix: suffix}
}

// OutputPath returns where the timeline for sourcePath is written
func (w *Writer) OutputPath(sourcePath string) string {
	return sourcePath + w.suffix
}

// Write stores tl as CSV. Appear rows carry the file's mode rows; disappear
// rows carry -1 for both.
func (w *Writer) Write(sourcePath string, tl *band.Timeline) (string, error) {
	path := w.OutputPath(sourcePath)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Header); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	for _, e := range tl.Events {
		upper, lower := -1, -1
		if e.Appear {
			upper, lower = tl.UpperMode, tl.LowerMode
		}
		record := []string{strconv.Itoa(e.Frame), strconv.Itoa(upper), strconv.Itoa(lower)}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}
