package render

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/tinyrender/pkg/math3d"
	"github.com/taigrr/tinyrender/pkg/tga"
)

func TestImageSetPanicsOutOfBounds(t *testing.T) {
	img := NewImage[RGB](4, 3)
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, 3}, {2, -5}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Set(%d, %d) did not panic", p[0], p[1])
				}
			}()
			img.Set(p[0], p[1], RGB{1, 1, 1})
		}()
	}
}

func TestToImageFlipsRows(t *testing.T) {
	img := NewImage[RGB](3, 2)
	img.Set(0, 0, RGB{255, 0, 0})
	img.Set(2, 1, RGB{0, 255, 0})

	out, ok := img.ToImage().(*image.NRGBA)
	if !ok {
		t.Fatalf("ToImage returned %T", img.ToImage())
	}
	if got := out.NRGBAAt(0, 1); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("bottom-left = %v", got)
	}
	if got := out.NRGBAAt(2, 0); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("top-right = %v", got)
	}

	gray := NewImage[Gray](2, 2)
	gray.Set(1, 0, Gray{99})
	g, ok := gray.ToImage().(*image.Gray)
	if !ok {
		t.Fatalf("gray ToImage returned %T", gray.ToImage())
	}
	if got := g.GrayAt(1, 1).Y; got != 99 {
		t.Errorf("gray pixel = %d", got)
	}
}

func TestWriteTGARoundTrip(t *testing.T) {
	img := NewImage[RGB](5, 4)
	for y := range img.Height {
		for x := range img.Width {
			img.Set(x, y, RGB{uint8(x * 50), uint8(y * 60), 9})
		}
	}

	for _, rle := range []bool{false, true} {
		var buf bytes.Buffer
		if err := img.WriteTGA(&buf, rle); err != nil {
			t.Fatalf("WriteTGA(rle=%v): %v", rle, err)
		}
		decoded, err := tga.Decode(&buf)
		if err != nil {
			t.Fatalf("Decode(rle=%v): %v", rle, err)
		}

		want := img.ToImage()
		for y := range img.Height {
			for x := range img.Width {
				g := color.NRGBAModel.Convert(decoded.At(x, y))
				w := color.NRGBAModel.Convert(want.At(x, y))
				if g != w {
					t.Fatalf("rle=%v pixel (%d,%d) = %v, want %v", rle, x, y, g, w)
				}
			}
		}
	}
}

func TestImageFromGoKeepsTopRow(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(1, 0, color.NRGBA{10, 20, 30, 255})

	m := ImageFromGo[RGB](src)
	if m.Width != 2 || m.Height != 2 {
		t.Fatalf("size = %dx%d", m.Width, m.Height)
	}
	if got := m.At(1, 0); got != (RGB{10, 20, 30}) {
		t.Errorf("At(1, 0) = %v", got)
	}
	if got := ImageFromGo[Gray](src).At(1, 0); got != (Gray{30}) {
		t.Errorf("gray At(1, 0) = %v", got)
	}
}

func TestDrawLineSkipsOffImagePoints(t *testing.T) {
	img := NewImage[Gray](10, 10)
	img.DrawLine(-5, 2, 20, 2, Gray{255})

	for x := range 10 {
		if img.At(x, 2) != (Gray{255}) {
			t.Errorf("pixel (%d, 2) not drawn", x)
		}
	}
	img.DrawLine(3, 3, 3, 3, Gray{7})
	if img.At(3, 3) != (Gray{7}) {
		t.Error("single-point line not drawn")
	}
}

func TestDepthBuffer(t *testing.T) {
	d := NewDepthBuffer(3, 2)
	for i, z := range d.Depth {
		if !math.IsInf(z, -1) {
			t.Fatalf("entry %d = %v, want -Inf", i, z)
		}
	}

	d.Set(0, 0, DepthRange)
	d.Set(1, 0, DepthRange/2)
	d.Set(2, 1, 2*DepthRange)

	if _, ok := d.Lookup(3, 0); ok {
		t.Error("Lookup out of range reported ok")
	}
	if z, ok := d.Lookup(1, 0); !ok || z != DepthRange/2 {
		t.Errorf("Lookup(1, 0) = %v, %v", z, ok)
	}

	img := d.Image()
	want := []Gray{{255}, {127}, {0}, {0}, {0}, {255}}
	for i, g := range want {
		if img.Pix[i] != g {
			t.Errorf("depth image pixel %d = %v, want %v", i, img.Pix[i], g)
		}
	}

	d.Clear()
	if !math.IsInf(d.At(0, 0), -1) || !math.IsInf(d.At(2, 1), -1) {
		t.Error("Clear left stale depths")
	}
}

func TestDrawAxes(t *testing.T) {
	img := NewImage[RGB](64, 64)
	w := NewWireframe(img, NewCamera(math3d.V3(0, 0, 3)).Transform(64, 64))
	w.DrawAxes(1)

	// The viewport spans [8, 56]; the origin lands on (32, 32) and the Z
	// axis, pointing at the camera, collapses onto it.
	if got := img.At(44, 32); got != (RGB{255, 0, 0}) {
		t.Errorf("X axis pixel = %v", got)
	}
	if got := img.At(32, 44); got != (RGB{0, 255, 0}) {
		t.Errorf("Y axis pixel = %v", got)
	}
	if got := img.At(32, 32); got != (RGB{0, 0, 255}) {
		t.Errorf("origin pixel = %v", got)
	}
}
