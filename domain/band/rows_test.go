package band

import (
	"reflect"
	"testing"
)

func TestClassifyRows(t *testing.T) {
	t.Run("uniform frame has no boundary rows", func(t *testing.T) {
		h := NewHistory()
		got := ClassifyRows(solidFrame(64, 128, gray200), h)

		if len(got) != 0 {
			t.Errorf("expected empty classification, got %v", got)
		}
		if len(h.Upper) != 0 || len(h.Lower) != 0 {
			t.Errorf("expected no candidates, got upper=%v lower=%v", h.Upper, h.Lower)
		}
	})

	t.Run("small uniform brightness change is ignored", func(t *testing.T) {
		f := solidFrame(64, 128, gray200)
		fillRows(f, 100, 127, RGB{190, 190, 190})
		h := NewHistory()
		got := ClassifyRows(f, h)

		if len(got) != 0 || len(h.Upper) != 0 {
			t.Errorf("expected nothing below the ratio threshold, got %v upper=%v", got, h.Upper)
		}
	})

	t.Run("dark band top edge is a strong upper row", func(t *testing.T) {
		h := NewHistory()
		got := ClassifyRows(bandFrame(100), h)

		want := RowClassification{100: true}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if !reflect.DeepEqual(h.Upper, []int{100}) {
			t.Errorf("expected upper candidates [100], got %v", h.Upper)
		}
		if len(h.Lower) != 0 {
			t.Errorf("expected no lower candidates, got %v", h.Lower)
		}
	})

	t.Run("edge in the bottom fifth is not an upper row", func(t *testing.T) {
		h := NewHistory()
		got := ClassifyRows(bandFrame(110), h)

		if len(got) != 0 || len(h.Upper) != 0 {
			t.Errorf("expected nothing below 80%% of the height, got %v upper=%v", got, h.Upper)
		}
	})

	t.Run("edge in the upper half is outside the scan", func(t *testing.T) {
		h := NewHistory()
		got := ClassifyRows(bandFrame(40), h)

		if len(got) != 0 || len(h.Upper) != 0 {
			t.Errorf("expected nothing above the midpoint, got %v upper=%v", got, h.Upper)
		}
	})

	t.Run("band bottom edge near the frame bottom is a lower row", func(t *testing.T) {
		f := bandFrame(100)
		fillRows(f, 120, 127, gray200)
		h := NewHistory()
		ClassifyRows(f, h)

		if !reflect.DeepEqual(h.Upper, []int{100}) {
			t.Errorf("expected upper candidates [100], got %v", h.Upper)
		}
		if !reflect.DeepEqual(h.Lower, []int{120}) {
			t.Errorf("expected lower candidates [120], got %v", h.Lower)
		}
	})

	t.Run("uneven darkening is rejected", func(t *testing.T) {
		f := solidFrame(64, 128, gray200)
		for y := 100; y < 128; y++ {
			for x := 0; x < 64; x++ {
				p := gray100
				if x%2 == 1 {
					p = RGB{55, 55, 55}
				}
				f.Set(x, y, p)
			}
		}
		h := NewHistory()
		got := ClassifyRows(f, h)

		want := RowClassification{100: false}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if len(h.Upper) != 0 {
			t.Errorf("expected no upper candidates, got %v", h.Upper)
		}
	})

	t.Run("edge next to a black region is weak", func(t *testing.T) {
		f := bandFrame(100)
		for y := 0; y < 128; y++ {
			for x := 0; x < 35; x++ {
				f.Set(x, y, black)
			}
		}
		h := NewHistory()
		got := ClassifyRows(f, h)

		want := RowClassification{100: false}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
		if !reflect.DeepEqual(h.Upper, []int{100}) {
			t.Errorf("expected upper candidates [100], got %v", h.Upper)
		}
	})
}

func TestHistoryObserve(t *testing.T) {
	h := NewHistory()
	before := solidFrame(64, 128, gray200)
	after := bandFrame(100)

	h.Observe(nil, before)
	h.Observe(before, after)
	h.Observe(after, after)

	if h.Frames() != 3 {
		t.Fatalf("expected 3 frames, got %d", h.Frames())
	}
	if !reflect.DeepEqual(h.Upper, []int{100, 100}) {
		t.Errorf("expected upper candidates [100 100], got %v", h.Upper)
	}
	want := map[int]Span{1: {Top: 100, Bottom: 127}}
	if !reflect.DeepEqual(h.Transitions, want) {
		t.Errorf("expected transitions %v, got %v", want, h.Transitions)
	}
}
