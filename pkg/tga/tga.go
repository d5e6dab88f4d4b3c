// Package tga reads and writes Truevision TGA images.
//
// Uncompressed and run-length encoded true-color (types 2 and 10) and
// grayscale (types 3 and 11) images are supported at 8, 24 and 32 bits
// per pixel. Color-mapped images are rejected.
package tga

import (
	"encoding/binary"
	"errors"
)

// Image type codes from the TGA header.
const (
	typeTrueColor    = 2
	typeGray         = 3
	typeTrueColorRLE = 10
	typeGrayRLE      = 11
)

const (
	headerLen = 18

	// Image descriptor bits.
	descRightLeft = 0x10
	descTopDown   = 0x20

	// A packet holds at most 128 pixels.
	maxPacket = 128
)

// footer is the TGA 2.0 signature written after the image data, preceded
// by zeroed extension and developer area offsets.
var footer = []byte("TRUEVISION-XFILE.\x00")

var (
	// ErrUnsupported is returned for TGA variants this package does not handle.
	ErrUnsupported = errors.New("tga: unsupported format")

	// ErrCorrupt is returned when pixel data runs past the end of the file
	// or an RLE packet overflows the image.
	ErrCorrupt = errors.New("tga: corrupt image data")
)

type header struct {
	IDLength       uint8
	ColorMapType   uint8
	ImageType      uint8
	ColorMapOrigin uint16
	ColorMapLength uint16
	ColorMapDepth  uint8
	XOrigin        uint16
	YOrigin        uint16
	Width          uint16
	Height         uint16
	BitsPerPixel   uint8
	Descriptor     uint8
}

func (h *header) marshal() []byte {
	b := make([]byte, headerLen)
	b[0] = h.IDLength
	b[1] = h.ColorMapType
	b[2] = h.ImageType
	binary.LittleEndian.PutUint16(b[3:], h.ColorMapOrigin)
	binary.LittleEndian.PutUint16(b[5:], h.ColorMapLength)
	b[7] = h.ColorMapDepth
	binary.LittleEndian.PutUint16(b[8:], h.XOrigin)
	binary.LittleEndian.PutUint16(b[10:], h.YOrigin)
	binary.LittleEndian.PutUint16(b[12:], h.Width)
	binary.LittleEndian.PutUint16(b[14:], h.Height)
	b[16] = h.BitsPerPixel
	b[17] = h.Descriptor
	return b
}

func (h *header) unmarshal(b []byte) {
	h.IDLength = b[0]
	h.ColorMapType = b[1]
	h.ImageType = b[2]
	h.ColorMapOrigin = binary.LittleEndian.Uint16(b[3:])
	h.ColorMapLength = binary.LittleEndian.Uint16(b[5:])
	h.ColorMapDepth = b[7]
	h.XOrigin = binary.LittleEndian.Uint16(b[8:])
	h.YOrigin = binary.LittleEndian.Uint16(b[10:])
	h.Width = binary.LittleEndian.Uint16(b[12:])
	h.Height = binary.LittleEndian.Uint16(b[14:])
	h.BitsPerPixel = b[16]
	h.Descriptor = b[17]
}

func (h *header) rle() bool {
	return h.ImageType == typeTrueColorRLE || h.ImageType == typeGrayRLE
}

func (h *header) gray() bool {
	return h.ImageType == typeGray || h.ImageType == typeGrayRLE
}
