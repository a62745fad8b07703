package img2dds

import (
	"errors"
	"image"
	"image/color"
	"io"
)

// TGA image types understood by decodeTGA.
const (
	tgaTypeTrueColor    = 2
	tgaTypeTrueColorRLE = 10

	tgaHeaderSize = 18
	// tgaTopToBottom is the descriptor bit for a top-left origin.
	tgaTopToBottom = 0x20
)

var (
	errTGAHeader      = errors.New("tga: invalid header")
	errTGAUnsupported = errors.New("tga: only 24/32-bit true-color images are supported")
	errTGATruncated   = errors.New("tga: truncated pixel data")
)

func init() {
	// id length, no colour map, image type
	image.RegisterFormat("tga", "?\x00\x02", decodeTGA, decodeTGAConfig)
	image.RegisterFormat("tga", "?\x00\x0a", decodeTGA, decodeTGAConfig)
}

// tgaHeader is the part of the 18-byte TGA header the decoder needs.
type tgaHeader struct {
	idLength   int
	imageType  byte
	width      int
	height     int
	bpp        int
	descriptor byte
}

func readTGAHeader(r io.Reader) (tgaHeader, error) {
	var raw [tgaHeaderSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return tgaHeader{}, errTGAHeader
	}

	h := tgaHeader{
		idLength:   int(raw[0]),
		imageType:  raw[2],
		width:      int(raw[12]) | int(raw[13])<<8,
		height:     int(raw[14]) | int(raw[15])<<8,
		bpp:        int(raw[16]),
		descriptor: raw[17],
	}
	if raw[1] != 0 || h.width == 0 || h.height == 0 {
		return tgaHeader{}, errTGAHeader
	}
	if (h.imageType != tgaTypeTrueColor && h.imageType != tgaTypeTrueColorRLE) || (h.bpp != 24 && h.bpp != 32) {
		return tgaHeader{}, errTGAUnsupported
	}

	return h, nil
}

func decodeTGAConfig(r io.Reader) (image.Config, error) {
	h, err := readTGAHeader(r)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{ColorModel: color.NRGBAModel, Width: h.width, Height: h.height}, nil
}

// decodeTGA decodes uncompressed and RLE true-color TGA into straight-alpha
// NRGBA. 24-bit images are opaque.
func decodeTGA(r io.Reader) (image.Image, error) {
	h, err := readTGAHeader(r)
	if err != nil {
		return nil, err
	}
	if _, err := io.CopyN(io.Discard, r, int64(h.idLength)); err != nil {
		return nil, errTGATruncated
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, h.width, h.height))
	bytesPerPixel := h.bpp / 8
	topToBottom := h.descriptor&tgaTopToBottom != 0

	// put stores the i-th pixel of the file, which is stored in BGR(A) order
	put := func(i int, src []byte) {
		x, y := i%h.width, i/h.width
		if !topToBottom {
			y = h.height - 1 - y
		}
		o := img.PixOffset(x, y)
		img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3] = src[2], src[1], src[0], 255
		if bytesPerPixel == 4 {
			img.Pix[o+3] = src[3]
		}
	}

	pixelCount := h.width * h.height
	if h.imageType == tgaTypeTrueColor {
		if len(data) < pixelCount*bytesPerPixel {
			return nil, errTGATruncated
		}
		for i := 0; i < pixelCount; i++ {
			put(i, data[i*bytesPerPixel:])
		}
		return img, nil
	}

	pixel, pos := 0, 0
	for pixel < pixelCount {
		if pos >= len(data) {
			return nil, errTGATruncated
		}
		packet := data[pos]
		pos++
		count := min(int(packet&0x7f)+1, pixelCount-pixel)

		if packet&0x80 != 0 {
			if pos+bytesPerPixel > len(data) {
				return nil, errTGATruncated
			}
			for k := 0; k < count; k++ {
				put(pixel+k, data[pos:])
			}
			pos += bytesPerPixel
		} else {
			if pos+count*bytesPerPixel > len(data) {
				return nil, errTGATruncated
			}
			for k := 0; k < count; k++ {
				put(pixel+k, data[pos+k*bytesPerPixel:])
			}
			pos += count * bytesPerPixel
		}
		pixel += count
	}

	return img, nil
}
