package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/taigrr/tinyrender/pkg/tga"
)

// Image is a 2D array of pixels in color space T.
//
// Rendered images put row 0 at the bottom, so that viewport y grows upward.
// Images decoded from files keep the file's convention of row 0 at the top.
type Image[T Pixel[T]] struct {
	Width  int
	Height int
	Pix    []T // Row-major pixel data
}

// NewImage creates an image with every pixel set to the zero color.
func NewImage[T Pixel[T]](width, height int) *Image[T] {
	return &Image[T]{
		Width:  width,
		Height: height,
		Pix:    make([]T, width*height),
	}
}

// In reports whether (x, y) lies inside the image.
func (m *Image[T]) In(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Set sets the pixel at (x, y). It panics if (x, y) is out of bounds.
func (m *Image[T]) Set(x, y int, c T) {
	if !m.In(x, y) {
		panic(fmt.Sprintf("render: pixel (%d, %d) outside %dx%d image", x, y, m.Width, m.Height))
	}
	m.Pix[y*m.Width+x] = c
}

// At returns the pixel at (x, y). It panics if (x, y) is out of bounds.
func (m *Image[T]) At(x, y int) T {
	if !m.In(x, y) {
		panic(fmt.Sprintf("render: pixel (%d, %d) outside %dx%d image", x, y, m.Width, m.Height))
	}
	return m.Pix[y*m.Width+x]
}

// Clear fills the image with a solid color.
func (m *Image[T]) Clear(c T) {
	for i := range m.Pix {
		m.Pix[i] = c
	}
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm. Points outside the image are skipped.
func (m *Image[T]) DrawLine(x0, y0, x1, y1 int, c T) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if m.In(x0, y0) {
			m.Pix[y0*m.Width+x0] = c
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts a rendered image to a standard Go image, flipping it so
// that row 0 of the result is the top of the picture. Gray images become
// *image.Gray, the rest *image.NRGBA.
func (m *Image[T]) ToImage() image.Image {
	rect := image.Rect(0, 0, m.Width, m.Height)
	if White[T]().Channels() == 1 {
		img := image.NewGray(rect)
		for y := range m.Height {
			for x := range m.Width {
				img.SetGray(x, m.Height-1-y, color.Gray{Y: m.Pix[y*m.Width+x].RGBA().R})
			}
		}
		return img
	}

	img := image.NewNRGBA(rect)
	for y := range m.Height {
		for x := range m.Width {
			img.SetNRGBA(x, m.Height-1-y, color.NRGBA(m.Pix[y*m.Width+x].RGBA()))
		}
	}
	return img
}

// ImageFromGo converts a decoded image into color space T. Row 0 stays the
// top row, matching the texture sampling convention.
func ImageFromGo[T Pixel[T]](src image.Image) *Image[T] {
	b := src.Bounds()
	m := NewImage[T](b.Dx(), b.Dy())
	var zero T
	for y := range m.Height {
		for x := range m.Width {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			m.Pix[y*m.Width+x] = zero.FromRGBA(color.RGBA(c))
		}
	}
	return m
}

// WriteTGA encodes a rendered image as TGA, stored bottom-up at the image's
// native channel depth.
func (m *Image[T]) WriteTGA(w io.Writer, rle bool) error {
	return tga.Encode(w, m.ToImage(), &tga.Options{
		RLE:          rle,
		BitsPerPixel: White[T]().Channels() * 8,
	})
}

// SavePNG saves a rendered image as a PNG file.
func (m *Image[T]) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, m.ToImage())
}
