package img2dds

import (
	"fmt"
	"image"

	"github.com/woozymasta/bcn"
)

// Compressor turns one RGBA image into a stream of 4x4 compressed blocks.
//
// Implementations must return exactly ceil(w/4)*ceil(h/4) blocks of the
// format's block size (8 bytes for DXT1, 16 bytes for DXT5).
type Compressor interface {
	Compress(img *image.NRGBA, format bcn.Format) ([]byte, error)
}

// CompressorFunc adapts a function to the Compressor interface.
type CompressorFunc func(img *image.NRGBA, format bcn.Format) ([]byte, error)

// Compress calls f(img, format).
func (f CompressorFunc) Compress(img *image.NRGBA, format bcn.Format) ([]byte, error) {
	return f(img, format)
}

// selectFormat picks the block format for a whole texture so that alpha
// semantics stay the same across faces and mip levels.
func selectFormat(compress, hasAlpha bool) bcn.Format {
	switch {
	case !compress:
		return bcn.FormatRGBA8
	case hasAlpha:
		return bcn.FormatDXT5
	default:
		return bcn.FormatDXT1
	}
}

// compressLevel runs c on one level and checks the payload size.
func compressLevel(c Compressor, level *PixelBuffer, format bcn.Format) ([]byte, error) {
	data, err := c.Compress(level.NRGBA(), format)
	if err != nil {
		return nil, fmt.Errorf("%w: %dx%d %s: %v", ErrCompressImage, level.width, level.height, format, err)
	}

	expected := expectedDataLength(format, level.width, level.height)
	if len(data) != expected {
		return nil, fmt.Errorf("%w: %dx%d %s: expected %d, got %d",
			ErrCompressedSizeMismatch, level.width, level.height, format, expected, len(data))
	}

	return data, nil
}

// padToBlocks returns img extended to a multiple of 4 pixels in both
// dimensions by replicating the last column and row.
func padToBlocks(img *image.NRGBA) *image.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pw, ph := (w+3)&^3, (h+3)&^3
	if pw == w && ph == h {
		return img
	}

	out := image.NewNRGBA(image.Rect(0, 0, pw, ph))
	for y := 0; y < ph; y++ {
		srcRow := img.Pix[min(y, h-1)*img.Stride:]
		dstRow := out.Pix[y*out.Stride:]
		copy(dstRow, srcRow[:w*4])
		last := srcRow[(w-1)*4 : w*4]
		for x := w; x < pw; x++ {
			copy(dstRow[x*4:], last)
		}
	}

	return out
}
