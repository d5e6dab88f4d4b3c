package tga

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
)

// DecodeConfig returns the dimensions and color model of a TGA image
// without decoding its pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	model := color.NRGBAModel
	if h.gray() {
		model = color.GrayModel
	}
	return image.Config{ColorModel: model, Width: int(h.Width), Height: int(h.Height)}, nil
}

// Decode reads a TGA image from r. Grayscale files decode to *image.Gray,
// true-color files to *image.NRGBA. Row 0 of the result is the top of the
// picture regardless of the origin stored in the file.
func Decode(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	if _, err := br.Discard(int(h.IDLength)); err != nil {
		return nil, fmt.Errorf("tga: skip image id: %w", err)
	}

	n := int(h.BitsPerPixel) / 8
	w, ht := int(h.Width), int(h.Height)
	data := make([]byte, w*ht*n)
	if h.rle() {
		err = readRLE(br, data, n)
	} else {
		_, err = io.ReadFull(br, data)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	topDown := h.Descriptor&descTopDown != 0
	rightLeft := h.Descriptor&descRightLeft != 0
	dst := func(i int) (x, y int) {
		x, y = i%w, i/w
		if !topDown {
			y = ht - 1 - y
		}
		if rightLeft {
			x = w - 1 - x
		}
		return x, y
	}

	rect := image.Rect(0, 0, w, ht)
	if n == 1 {
		img := image.NewGray(rect)
		for i, v := range data {
			x, y := dst(i)
			img.Pix[y*img.Stride+x] = v
		}
		return img, nil
	}

	img := image.NewNRGBA(rect)
	for i := range w * ht {
		x, y := dst(i)
		p := data[i*n : (i+1)*n]
		o := y*img.Stride + x*4
		img.Pix[o+0] = p[2]
		img.Pix[o+1] = p[1]
		img.Pix[o+2] = p[0]
		img.Pix[o+3] = 0xff
		if n == 4 {
			img.Pix[o+3] = p[3]
		}
	}
	return img, nil
}

func readHeader(r io.Reader) (*header, error) {
	buf := make([]byte, headerLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("tga: read header: %w", err)
	}
	h := &header{}
	h.unmarshal(buf)

	if h.ColorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped image", ErrUnsupported)
	}
	switch h.ImageType {
	case typeGray, typeGrayRLE:
		if h.BitsPerPixel != 8 {
			return nil, fmt.Errorf("%w: %d-bit grayscale", ErrUnsupported, h.BitsPerPixel)
		}
	case typeTrueColor, typeTrueColorRLE:
		if h.BitsPerPixel != 24 && h.BitsPerPixel != 32 {
			return nil, fmt.Errorf("%w: %d-bit true-color", ErrUnsupported, h.BitsPerPixel)
		}
	default:
		return nil, fmt.Errorf("%w: image type %d", ErrUnsupported, h.ImageType)
	}
	return h, nil
}

func readRLE(r *bufio.Reader, data []byte, n int) error {
	for off := 0; off < len(data); {
		c, err := r.ReadByte()
		if err != nil {
			return err
		}
		count := int(c&0x7f) + 1
		if off+count*n > len(data) {
			return fmt.Errorf("packet of %d pixels overflows image", count)
		}
		if c&0x80 == 0 {
			if _, err := io.ReadFull(r, data[off:off+count*n]); err != nil {
				return err
			}
			off += count * n
			continue
		}
		if _, err := io.ReadFull(r, data[off:off+n]); err != nil {
			return err
		}
		for i := 1; i < count; i++ {
			copy(data[off+i*n:], data[off:off+n])
		}
		off += count * n
	}
	return nil
}
