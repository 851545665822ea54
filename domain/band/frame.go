package band

import "fmt"

// Channels is the number of color channels per pixel
const Channels = 3

// Frame is one decoded picture. Data is row-major BGR, the layout OpenCV
// and ffmpeg's bgr24 hand out.
type Frame struct {
	Width  int
	Height int
	Data   []byte
}

// NewFrame wraps raw BGR bytes, checking the buffer matches the geometry
func NewFrame(width, height int, data []byte) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame geometry %dx%d", width, height)
	}
	if len(data) != width*height*Channels {
		return nil, fmt.Errorf("frame buffer has %d bytes, want %d for %dx%d", len(data), width*height*Channels, width, height)
	}
	return &Frame{Width: width, Height: height, Data: data}, nil
}

// At returns the pixel at column x, row y
func (f *Frame) At(x, y int) RGB {
	i := (y*f.Width + x) * Channels
	return RGB{B: f.Data[i], G: f.Data[i+1], R: f.Data[i+2]}
}

// Set writes the pixel at column x, row y
func (f *Frame) Set(x, y int, p RGB) {
	i := (y*f.Width + x) * Channels
	f.Data[i], f.Data[i+1], f.Data[i+2] = p.B, p.G, p.R
}

// SameGeometry reports whether both frames have identical dimensions
func (f *Frame) SameGeometry(o *Frame) bool {
	return o != nil && f.Width == o.Width && f.Height == o.Height
}
