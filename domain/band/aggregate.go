package band

import (
	"fmt"
	"sort"
)

// Event marks the band appearing or disappearing at a frame
type Event struct {
	Frame  int
	Appear bool
	Upper  int
	Lower  int
}

// Timeline is the reconciled result for one file
type Timeline struct {
	UpperMode int
	LowerMode int
	Events    []Event
}

// Appearances returns the number of appear events
func (t *Timeline) Appearances() int {
	n := 0
	for _, e := range t.Events {
		if e.Appear {
			n++
		}
	}
	return n
}

// mode returns the most frequent row and its count. Ties go to the lowest
// row; an empty input yields -1.
func mode(rows []int) (row, count int) {
	freq := make(map[int]int)
	for _, r := range rows {
		freq[r]++
	}
	keys := make([]int, 0, len(freq))
	for r := range freq {
		keys = append(keys, r)
	}
	sort.Ints(keys)

	row = -1
	for _, r := range keys {
		if row < 0 || freq[r] > count {
			row, count = r, freq[r]
		}
	}
	return row, count
}

func snapRows(rows []int, target int) {
	for i, r := range rows {
		if iabs(r-target) < CandidateSnapRows {
			rows[i] = target
		}
	}
}

// snapClassification copies the flag of every row near target onto target,
// in ascending row order
func snapClassification(c RowClassification, target int) {
	rows := make([]int, 0, len(c))
	for r := range c {
		if iabs(r-target) < CandidateSnapRows {
			rows = append(rows, r)
		}
	}
	sort.Ints(rows)
	for _, r := range rows {
		c[target] = c[r]
	}
}

// Aggregate reconciles the per-frame detections of a whole file into a
// timeline of appear and disappear events. totalFrames is the declared
// frame count of the source. The history is modified in place.
func Aggregate(h *History, totalFrames int) (*Timeline, error) {
	upperMode, upperCount := mode(h.Upper)
	lowerMode, lowerCount := mode(h.Lower)

	if upperMode <= 0 || float64(upperCount) <= UpperDominance*float64(totalFrames) {
		return nil, fmt.Errorf("%w: no row reached %.0f%% of %d frames", ErrNoBandDetected, UpperDominance*100, totalFrames)
	}
	lowerValid := lowerMode > 0 && float64(lowerCount) > LowerDominance*float64(totalFrames)

	appear := make(map[int]Span)
	for frame, span := range h.Transitions {
		if iabs(span.Top-upperMode) >= EventSnapRows {
			continue
		}
		lower := -1
		if lowerValid && iabs(span.Bottom-lowerMode) < EventSnapRows {
			lower = lowerMode
		}
		appear[frame] = Span{Top: upperMode, Bottom: lower}
	}
	if len(appear) == 0 {
		appear[0] = Span{Top: upperMode, Bottom: lowerMode}
	}

	snapRows(h.Upper, upperMode)
	if lowerMode > 0 {
		snapRows(h.Lower, lowerMode)
	}
	for _, c := range h.Rows {
		snapClassification(c, upperMode)
	}

	disappear := inferPresence(h, totalFrames, upperMode, lowerMode, appear)

	events := make(map[int]Event, len(appear)+len(disappear))
	for frame, span := range appear {
		events[frame] = Event{Frame: frame, Appear: true, Upper: span.Top, Lower: span.Bottom}
	}
	for _, frame := range disappear {
		events[frame] = Event{Frame: frame, Appear: false, Upper: -1, Lower: -1}
	}

	tl := &Timeline{UpperMode: upperMode, LowerMode: lowerMode}
	for _, e := range events {
		tl.Events = append(tl.Events, e)
	}
	sort.Slice(tl.Events, func(i, j int) bool {
		return tl.Events[i].Frame < tl.Events[j].Frame
	})
	return tl, nil
}

// inferPresence walks the frames with a run-length hysteresis on the mode
// row. Inferred appear events are added to appear; inferred disappear
// frames are returned.
func inferPresence(h *History, totalFrames, upperMode, lowerMode int, appear map[int]Span) []int {
	var disappear []int
	on := false
	present, missing := 0, 0
	presentStart, missingStart := 0, 0

	for n := 0; n < totalFrames; n++ {
		if _, ok := appear[n]; ok {
			on = true
			if present == 0 {
				presentStart = n
			}
			present++
			missing = 0
			continue
		}

		var c RowClassification
		if n < len(h.Rows) {
			c = h.Rows[n]
		}
		strong, seen := c[upperMode]
		switch {
		case seen && strong:
			if present == 0 {
				presentStart = n
			}
			present++
			missing = 0
		case !seen:
			if missing == 0 {
				missingStart = n
			}
			missing++
			present = 0
		}

		if !on && present > HysteresisFrames {
			on = true
			appear[presentStart] = Span{Top: upperMode, Bottom: lowerMode}
			continue
		}
		if on && missing > HysteresisFrames {
			on = false
			disappear = append(disappear, missingStart)
			missing = 0
		}
	}
	return disappear
}
