package img2dds

import (
	"image"

	"golang.org/x/image/draw"
)

// Flags holds image metadata bits.
type Flags uint8

const (
	// FlagAlpha is set when at least one pixel is not fully opaque.
	FlagAlpha Flags = 1 << iota
)

// PixelBuffer owns a width x height RGBA8 pixel region.
//
// Rows are tightly packed (stride = width*4, always 4-byte aligned). The
// zero value is an empty buffer. Ownership is transferred with Move; the
// pipeline consumes the buffers it is given.
type PixelBuffer struct {
	width  int
	height int
	flags  Flags
	pix    []byte
}

// NewPixelBuffer allocates a zero-initialized buffer.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	n, err := pixelBytes(width, height)
	if err != nil {
		return nil, err
	}

	return &PixelBuffer{width: width, height: height, pix: make([]byte, n)}, nil
}

// PixelBufferFromImage copies img into a new buffer and analyzes its alpha.
func PixelBufferFromImage(img image.Image) (*PixelBuffer, error) {
	bounds := img.Bounds()
	b, err := NewPixelBuffer(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	if src, ok := img.(*image.NRGBA); ok && src.Stride == b.width*4 && src.Rect.Min == (image.Point{}) {
		copy(b.pix, src.Pix)
	} else {
		dst := b.NRGBA()
		draw.Draw(dst, dst.Rect, img, bounds.Min, draw.Src)
	}

	AnalyzeAlpha(b)
	return b, nil
}

// Move transfers the pixel memory to a new buffer and leaves b empty.
func (b *PixelBuffer) Move() *PixelBuffer {
	out := &PixelBuffer{width: b.width, height: b.height, flags: b.flags, pix: b.pix}
	b.Release()
	return out
}

// Release drops the pixel memory. It is safe on an empty buffer.
func (b *PixelBuffer) Release() {
	b.width, b.height, b.flags, b.pix = 0, 0, 0, nil
}

// IsEmpty reports whether b holds no pixel data.
func (b *PixelBuffer) IsEmpty() bool {
	return b == nil || b.pix == nil
}

// Width returns the buffer width in pixels.
func (b *PixelBuffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *PixelBuffer) Height() int { return b.height }

// Flags returns the metadata bits.
func (b *PixelBuffer) Flags() Flags { return b.flags }

// HasAlpha reports whether FlagAlpha is set.
func (b *PixelBuffer) HasAlpha() bool { return b.flags&FlagAlpha != 0 }

// Pix returns the underlying RGBA bytes. The slice is owned by b.
func (b *PixelBuffer) Pix() []byte { return b.pix }

// NRGBA returns an image view sharing b's memory.
func (b *PixelBuffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.pix,
		Stride: b.width * 4,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

func (b *PixelBuffer) setFlag(f Flags, on bool) {
	if on {
		b.flags |= f
	} else {
		b.flags &^= f
	}
}

// sameSize reports whether b and o have identical dimensions.
func (b *PixelBuffer) sameSize(o *PixelBuffer) bool {
	return b.width == o.width && b.height == o.height
}
