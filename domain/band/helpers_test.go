package band

var (
	gray200 = RGB{R: 200, G: 200, B: 200}
	gray100 = RGB{R: 100, G: 100, B: 100}
	black   = RGB{}
)

// solidFrame returns a width x height frame filled with p
func solidFrame(width, height int, p RGB) *Frame {
	f := &Frame{Width: width, Height: height, Data: make([]byte, width*height*Channels)}
	fillRows(f, 0, height-1, p)
	return f
}

// fillRows paints rows top..bottom inclusive
func fillRows(f *Frame, top, bottom int, p RGB) {
	for y := top; y <= bottom; y++ {
		for x := 0; x < f.Width; x++ {
			f.Set(x, y, p)
		}
	}
}

// bandFrame is a 64x128 gray frame with a darker band from row top to the bottom
func bandFrame(top int) *Frame {
	f := solidFrame(64, 128, gray200)
	fillRows(f, top, 127, gray100)
	return f
}

// presentHistory builds a history of total frames where the band edge at
// row is classified strongly in frames [from, to)
func presentHistory(total, row, from, to int) *History {
	h := NewHistory()
	for n := 0; n < total; n++ {
		c := make(RowClassification)
		if n >= from && n < to {
			c[row] = true
			h.Upper = append(h.Upper, row)
		}
		h.Rows = append(h.Rows, c)
	}
	return h
}

// clearFrames removes the mode row from frames [from, to)
func clearFrames(h *History, row, from, to int) {
	for n := from; n < to; n++ {
		delete(h.Rows[n], row)
	}
}
