package band

import "math"

// RGB is a single 8-bit color sample
type RGB struct {
	R, G, B uint8
}

// HSV holds a hue in [0,360) and saturation/value in [0,255]
type HSV struct {
	H, S, V int
}

// ToHSV converts an RGB sample using the hexagonal HSV model with integer
// saturation and value
func ToHSV(p RGB) HSV {
	r, g, b := int(p.R), int(p.G), int(p.B)
	maxc := max(r, g, b)
	minc := min(r, g, b)

	s := 0
	if maxc > 0 {
		s = (maxc - minc) * 255 / maxc
	}
	if s == 0 {
		return HSV{H: 0, S: 0, V: maxc}
	}

	d := float64(maxc - minc)
	rc := float64(maxc-r) / d
	gc := float64(maxc-g) / d
	bc := float64(maxc-b) / d

	var h float64
	switch maxc {
	case r:
		h = bc - gc
	case g:
		h = 2 + rc - bc
	default:
		h = 4 + gc - rc
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	hue := int(h)
	if hue == 360 {
		hue = 0
	}
	return HSV{H: hue, S: s, V: maxc}
}

// ColorDistance is the weighted "redmean" RGB distance.
// See https://www.compuphase.com/cmetric.htm
func ColorDistance(a, b RGB) float64 {
	rmean := (int64(a.R) + int64(b.R)) / 2
	r := int64(a.R) - int64(b.R)
	g := int64(a.G) - int64(b.G)
	bl := int64(a.B) - int64(b.B)
	return math.Sqrt(float64((((512 + rmean) * r * r) >> 8) + 4*g*g + (((767 - rmean) * bl * bl) >> 8)))
}

// SampleStdDev returns the n-1 normalized standard deviation of values.
// Fewer than two samples have no spread and yield 0.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sum float64
	for _, v := range values {
		sum += (v - mean) * (v - mean)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}

// hueDistance is the circular distance between two hues in degrees
func hueDistance(a, b int) int {
	d := a - b
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// ratio is the relative brightness change from before to after
func ratio(before, after int) float64 {
	return float64(after-before) / float64(after+before)
}
