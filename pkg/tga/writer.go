package tga

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
)

// Options controls how Encode lays out the file.
type Options struct {
	// RLE enables run-length encoding (image types 10 and 11).
	RLE bool

	// TopDown stores the first row of m first. By default rows are stored
	// bottom-up, which is the TGA default origin.
	TopDown bool

	// BitsPerPixel selects 8 (grayscale), 24 or 32. Zero picks 8 for
	// *image.Gray, 24 for opaque images and 32 otherwise.
	BitsPerPixel int
}

// Encode writes m to w in TGA format. A nil o uses the zero Options.
func Encode(w io.Writer, m image.Image, o *Options) error {
	if o == nil {
		o = &Options{}
	}
	b := m.Bounds()
	if b.Dx() > 0xffff || b.Dy() > 0xffff {
		return fmt.Errorf("%w: %dx%d exceeds 65535", ErrUnsupported, b.Dx(), b.Dy())
	}

	bpp := o.BitsPerPixel
	if bpp == 0 {
		bpp = inferDepth(m)
	}
	if bpp != 8 && bpp != 24 && bpp != 32 {
		return fmt.Errorf("%w: %d bits per pixel", ErrUnsupported, bpp)
	}

	h := header{
		Width:        uint16(b.Dx()),
		Height:       uint16(b.Dy()),
		BitsPerPixel: uint8(bpp),
	}
	switch {
	case bpp == 8 && o.RLE:
		h.ImageType = typeGrayRLE
	case bpp == 8:
		h.ImageType = typeGray
	case o.RLE:
		h.ImageType = typeTrueColorRLE
	default:
		h.ImageType = typeTrueColor
	}
	if bpp == 32 {
		h.Descriptor |= 8
	}
	if o.TopDown {
		h.Descriptor |= descTopDown
	}

	data := pixelBytes(m, bpp/8, o.TopDown)

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(h.marshal()); err != nil {
		return fmt.Errorf("tga: write header: %w", err)
	}
	if o.RLE {
		writeRLE(bw, data, bpp/8)
	} else {
		bw.Write(data)
	}
	// Extension and developer area offsets, both absent.
	bw.Write(make([]byte, 8))
	bw.Write(footer)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("tga: write image: %w", err)
	}
	return nil
}

func inferDepth(m image.Image) int {
	if _, ok := m.(*image.Gray); ok {
		return 8
	}
	if op, ok := m.(interface{ Opaque() bool }); ok && op.Opaque() {
		return 24
	}
	return 32
}

// pixelBytes flattens m into TGA byte order: gray, BGR or BGRA.
func pixelBytes(m image.Image, n int, topDown bool) []byte {
	b := m.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*n)
	for row := range b.Dy() {
		y := b.Min.Y + row
		if !topDown {
			y = b.Max.Y - 1 - row
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			if n == 1 {
				out = append(out, color.GrayModel.Convert(m.At(x, y)).(color.Gray).Y)
				continue
			}
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			out = append(out, c.B, c.G, c.R)
			if n == 4 {
				out = append(out, c.A)
			}
		}
	}
	return out
}

// writeRLE emits run packets for repeated pixels and raw packets for the
// stretches in between. Packets may cross scanlines.
func writeRLE(w *bufio.Writer, data []byte, n int) {
	pixels := len(data) / n
	px := func(i int) []byte { return data[i*n : (i+1)*n] }

	for i := 0; i < pixels; {
		run := 1
		for i+run < pixels && run < maxPacket && bytes.Equal(px(i), px(i+run)) {
			run++
		}
		if run > 1 {
			w.WriteByte(0x80 | byte(run-1))
			w.Write(px(i))
			i += run
			continue
		}

		raw := 1
		for i+raw < pixels && raw < maxPacket {
			if i+raw+1 < pixels && bytes.Equal(px(i+raw), px(i+raw+1)) {
				break
			}
			raw++
		}
		w.WriteByte(byte(raw - 1))
		w.Write(data[i*n : (i+raw)*n])
		i += raw
	}
}
