package render

import "math"

// DepthBuffer stores one depth value per pixel. Larger values are closer to
// the viewer; a cleared buffer holds -Inf everywhere.
type DepthBuffer struct {
	Width  int
	Height int
	Depth  []float64 // Row-major, same layout as Image
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{
		Width:  width,
		Height: height,
		Depth:  make([]float64, width*height),
	}
	d.Clear()
	return d
}

// Clear resets every entry to -Inf.
func (d *DepthBuffer) Clear() {
	// Use copy-doubling for faster clearing
	n := len(d.Depth)
	if n == 0 {
		return
	}
	d.Depth[0] = math.Inf(-1)
	for i := 1; i < n; i *= 2 {
		copy(d.Depth[i:], d.Depth[:i])
	}
}

// At returns the depth at (x, y). The caller guarantees (x, y) is in range.
func (d *DepthBuffer) At(x, y int) float64 {
	return d.Depth[y*d.Width+x]
}

// Lookup returns the depth at (x, y) and whether (x, y) is in range.
func (d *DepthBuffer) Lookup(x, y int) (float64, bool) {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return 0, false
	}
	return d.Depth[y*d.Width+x], true
}

// Set stores z at (x, y).
func (d *DepthBuffer) Set(x, y int, z float64) {
	d.Depth[y*d.Width+x] = z
}

// Image renders the buffer as grayscale, mapping [0, DepthRange] to
// [0, 255]. Empty pixels are black.
func (d *DepthBuffer) Image() *Image[Gray] {
	img := NewImage[Gray](d.Width, d.Height)
	for i, z := range d.Depth {
		img.Pix[i] = Gray{channel(z / DepthRange * 255)}
	}
	return img
}
