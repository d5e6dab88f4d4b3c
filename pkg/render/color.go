// Package render implements a CPU triangle rasterizer: images and depth
// buffers, the camera transform stack, texture maps, the shader contract and
// the barycentric triangle fill.
package render

import (
	"image/color"
)

// Pixel is the set of color spaces an Image can hold.
type Pixel[T any] interface {
	comparable

	// Shade scales the color channels by intensity. Intensities above 1
	// leave the color unchanged; negative or NaN intensities give black.
	Shade(intensity float64) T

	// Map applies f to each color channel. Alpha is left alone.
	Map(f func(c float64) float64) T

	// White returns the brightest value of the color space.
	White() T

	// FromRGBA converts an 8-bit color into this color space.
	FromRGBA(c color.RGBA) T

	// RGBA returns the color as non-premultiplied 8-bit RGBA.
	RGBA() color.RGBA

	// Channels returns the number of stored channels.
	Channels() int
}

// Gray is a single-channel 8-bit color.
type Gray struct{ Y uint8 }

// RGB is a 24-bit color.
type RGB struct{ R, G, B uint8 }

// RGBA is a 32-bit color with straight alpha.
type RGBA struct{ R, G, B, A uint8 }

// clampShade normalizes a shading intensity; ok is false when the color
// should be left unchanged.
func clampShade(intensity float64) (k float64, ok bool) {
	if intensity > 1 {
		return 1, false
	}
	if !(intensity >= 0) {
		return 0, true
	}
	return intensity, true
}

// channel converts a float channel value to a byte, saturating at both ends.
func channel(v float64) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

func (c Gray) Shade(intensity float64) Gray {
	k, ok := clampShade(intensity)
	if !ok {
		return c
	}
	return Gray{uint8(float64(c.Y) * k)}
}

func (c Gray) Map(f func(float64) float64) Gray {
	return Gray{channel(f(float64(c.Y)))}
}

func (Gray) White() Gray { return Gray{255} }

func (c Gray) RGBA() color.RGBA { return color.RGBA{c.Y, c.Y, c.Y, 255} }

func (Gray) Channels() int { return 1 }

// FromRGBA keeps the brightest of the three color channels.
func (Gray) FromRGBA(c color.RGBA) Gray {
	return Gray{max(c.R, c.G, c.B)}
}

func (c RGB) Shade(intensity float64) RGB {
	k, ok := clampShade(intensity)
	if !ok {
		return c
	}
	return RGB{uint8(float64(c.R) * k), uint8(float64(c.G) * k), uint8(float64(c.B) * k)}
}

func (c RGB) Map(f func(float64) float64) RGB {
	return RGB{channel(f(float64(c.R))), channel(f(float64(c.G))), channel(f(float64(c.B)))}
}

func (RGB) White() RGB { return RGB{255, 255, 255} }

func (RGB) FromRGBA(c color.RGBA) RGB { return RGB{c.R, c.G, c.B} }

func (c RGB) RGBA() color.RGBA { return color.RGBA{c.R, c.G, c.B, 255} }

func (RGB) Channels() int { return 3 }

func (RGBA) White() RGBA { return RGBA{255, 255, 255, 255} }

func (RGBA) FromRGBA(c color.RGBA) RGBA { return RGBA(c) }

func (c RGBA) RGBA() color.RGBA { return color.RGBA(c) }

func (RGBA) Channels() int { return 4 }

func (c RGBA) Map(f func(float64) float64) RGBA {
	return RGBA{channel(f(float64(c.R))), channel(f(float64(c.G))), channel(f(float64(c.B))), c.A}
}

// Shade scales the color channels; alpha is preserved.
func (c RGBA) Shade(intensity float64) RGBA {
	k, ok := clampShade(intensity)
	if !ok {
		return c
	}
	return RGBA{uint8(float64(c.R) * k), uint8(float64(c.G) * k), uint8(float64(c.B) * k), c.A}
}

// White returns the brightest value of T.
func White[T Pixel[T]]() T {
	var zero T
	return zero.White()
}

// ColorOf converts an 8-bit color into T.
func ColorOf[T Pixel[T]](c color.RGBA) T {
	var zero T
	return zero.FromRGBA(c)
}

// Colors used by overlays.
var (
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorBlue  = color.RGBA{0, 0, 255, 255}
)
