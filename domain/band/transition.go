package band

import "math"

// rowTally counts per-pixel outcomes for one row of a frame pair
type rowTally struct {
	darkened int
	darkHue  int
	same     int
	zeros    int
}

// tallyPixel classifies one pixel of the current frame against the same
// pixel of the previous frame and returns its darkening ratio
func tallyPixel(t *rowTally, cur, prev RGB) (k float64, darkened bool) {
	c := ToHSV(cur)
	p := ToHSV(prev)
	dist := ColorDistance(cur, prev)
	dH := hueDistance(c.H, p.H)
	k = ratio(c.V, p.V)
	absK := math.Abs(k)

	if dH < SameHueLimit && k > RatioThreshold {
		t.darkHue++
	}
	zero := false
	if (c.V < BlackPairValue && p.V < BlackPairValue) || (c.V < DimCurrentValue && p.V < DimPreviousValue) {
		t.zeros++
		zero = true
	}
	if c.V < DarkPairCurrent && p.V < DarkPairPrevious {
		if absK < RatioThreshold && !zero {
			t.same++
		}
		return k, false
	}
	if c.V > WhitePairValue && p.V > WhitePairValue {
		if absK < RatioThreshold && dH < SameHueLimit {
			t.same++
		}
		return k, false
	}

	sameColor := dH < SameHueLimit &&
		((c.S > SaturatedChroma && p.S > SaturatedChroma) || iabs(c.S-p.S) < ChromaDelta || dH < ExactHueLimit)
	if sameColor {
		if p.V-c.V > ValueDropLimit || k > DarkenRatio {
			t.darkened++
			return k, true
		}
		if absK < RatioThreshold {
			t.same++
		}
		return k, false
	}
	if dH < CloseHueLimit && dist < SameColorDistance && absK < SameColorRatioLimit {
		t.same++
	}
	return k, false
}

// DetectTransition looks for a vertical span in the lower part of cur that
// darkened coherently against prev, the signature of a band appearing.
// It returns NoSpan when prev is nil, the geometry differs, or the pair does
// not look like a clean transition.
func DetectTransition(prev, cur *Frame) Span {
	if prev == nil || !cur.SameGeometry(prev) {
		return NoSpan
	}

	w := float64(cur.Width)
	h := float64(cur.Height)
	first, last := -1, -1
	errorRows, darkenedRows := 0, 0
	var ratios []float64

	for y := 0; y < cur.Height; y++ {
		var t rowTally
		for x := 0; x < cur.Width; x++ {
			k, darkened := tallyPixel(&t, cur.At(x, y), prev.At(x, y))
			if darkened && first > 0 {
				ratios = append(ratios, k)
			}
		}

		lowerHalf := y > cur.Height/2
		open := first > 0
		switch {
		case float64(t.darkened) > RowDarkenedFraction*w,
			lowerHalf && float64(t.darkened) > RowPartialFraction*w && float64(t.darkened+t.zeros) > RowDarkenedFraction*w,
			lowerHalf && open && float64(last-first) > SpanMinHeightFraction*h && float64(t.zeros) > RowContinueZeros*w:
			darkenedRows++
			if first < 0 {
				first = y
			}
			last = y
		case open && float64(t.darkened+t.zeros) > RowDarkenedFraction*w:
			last = y
		}

		if first < 0 {
			noisy := float64(t.same+t.zeros) < RowSameFraction*w ||
				(y < cur.Height/2 && float64(t.darkHue) > RowHueShiftFraction*w && float64(t.darkened+t.zeros) > RowDarkenedFraction*w)
			if noisy {
				errorRows++
				if float64(errorRows) > ErrorRowsFraction*h {
					return NoSpan
				}
			}
		}
	}

	span := float64(last - first)
	if span > SpanMinHeightFraction*h && float64(first) > h/2 && float64(last) > SpanBottomFraction*h &&
		float64(darkenedRows) > SpanDensityFraction*span {
		if SampleStdDev(ratios) > UniformityLimit {
			return NoSpan
		}
		return Span{Top: first, Bottom: last}
	}
	return NoSpan
}

func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
