package band

import "math"

// edgeScan accumulates one direction (darkening or lightening) of a row scan
type edgeScan struct {
	count   int
	run     int
	longest int
	zeros   int
	ratios  []float64
}

func (e *edgeScan) hit(k float64, bright bool) {
	e.count++
	e.run++
	if bright {
		e.ratios = append(e.ratios, math.Abs(k))
	}
}

func (e *edgeScan) breakRun() {
	if e.run > e.longest {
		e.longest = e.run
	}
	e.run = 0
}

// finish closes the last run and applies the saturation rule
func (e *edgeScan) finish(width int) {
	e.breakRun()
	if float64(e.count) > SaturatedFraction*float64(width) {
		e.longest = e.count
	}
}

func (e *edgeScan) qualifies(width int, density float64) bool {
	w := float64(width)
	return float64(e.count) > EdgeCountFraction*w &&
		float64(e.longest) > EdgeRunFraction*w &&
		float64(e.count+e.zeros) > density*w
}

// ClassifyRows scans the lower half of f comparing each row with the row
// above it. Rows that look like the top edge of a dark band enter the
// returned classification and qualifying rows are appended to h.Upper; rows
// that look like the bottom edge near the frame bottom are appended to
// h.Lower.
func ClassifyRows(f *Frame, h *History) RowClassification {
	result := make(RowClassification)
	w := float64(f.Width)

	for y := f.Height / 2; y < f.Height; y++ {
		if y == 0 {
			continue
		}
		var dark, light edgeScan
		for x := 0; x < f.Width; x++ {
			above := ToHSV(f.At(x, y-1)).V
			row := ToHSV(f.At(x, y)).V

			if above < NearBlackValue && row < NearBlackValue {
				if row < ZeroValue {
					dark.zeros++
				}
				if above < ZeroValue {
					light.zeros++
				}
				dark.breakRun()
				light.breakRun()
				continue
			}

			k := ratio(above, row)
			bright := above > BrightValue && row > BrightValue
			if k < -RatioThreshold {
				dark.hit(k, bright)
			} else {
				dark.breakRun()
			}
			if k > RatioThreshold {
				light.hit(k, bright)
			} else {
				light.breakRun()
			}
		}
		dark.finish(f.Width)
		light.finish(f.Width)

		if float64(y) < UpperRegion*float64(f.Height) && dark.qualifies(f.Width, UpperDensityFraction) {
			if SampleStdDev(dark.ratios) < UniformityLimit {
				result[y] = float64(dark.zeros) < StrongZerosFraction*w || float64(dark.count) > StrongCountFraction*w
				h.Upper = append(h.Upper, y)
			} else {
				result[y] = false
			}
		}
		if float64(y) > LowerRegion*float64(f.Height) && light.qualifies(f.Width, LowerDensityFraction) {
			if SampleStdDev(light.ratios) < UniformityLimit {
				h.Lower = append(h.Lower, y)
			}
		}
	}
	return result
}
