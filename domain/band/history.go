package band

// RowClassification maps a qualifying upper row to its strong-match flag
type RowClassification map[int]bool

// Span is a vertical row range; NoSpan marks the absence of one
type Span struct {
	Top    int
	Bottom int
}

// NoSpan is returned when no transition was found
var NoSpan = Span{Top: -1, Bottom: -1}

// Found reports whether the span holds a detection
func (s Span) Found() bool {
	return s.Top > 0
}

// History accumulates per-frame detector output for one file. It is owned
// by a single job and handed to Aggregate once scanning ends.
type History struct {
	Upper       []int
	Lower       []int
	Rows        []RowClassification
	Transitions map[int]Span
}

// NewHistory creates an empty history
func NewHistory() *History {
	return &History{Transitions: make(map[int]Span)}
}

// Observe runs both detectors on cur against prev and records the results
// under the next frame index
func (h *History) Observe(prev, cur *Frame) {
	n := len(h.Rows)
	h.Rows = append(h.Rows, ClassifyRows(cur, h))
	if span := DetectTransition(prev, cur); span.Found() {
		h.Transitions[n] = span
	}
}

// Frames is the number of observed frames
func (h *History) Frames() int {
	return len(h.Rows)
}
