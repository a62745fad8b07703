//go:build !nobcn

package img2dds

import (
	"image"

	"github.com/woozymasta/bcn"
)

// highestQuality is the bcn encoder quality used for builds; build time is
// traded for quality.
const highestQuality = 8

// CompressionAvailable reports whether a built-in block compressor exists.
func CompressionAvailable() bool { return true }

// bcnCompressor encodes DXT blocks with the bcn package.
type bcnCompressor struct {
	opts *bcn.EncodeOptions
}

// defaultCompressor returns the built-in compressor.
// A nil opts selects the highest quality level.
func defaultCompressor(opts *bcn.EncodeOptions) Compressor {
	if opts == nil {
		opts = &bcn.EncodeOptions{QualityLevel: highestQuality}
	}

	return bcnCompressor{opts: opts}
}

func (c bcnCompressor) Compress(img *image.NRGBA, format bcn.Format) ([]byte, error) {
	padded := padToBlocks(img)
	data, _, _, err := bcn.EncodeImageWithOptions(padded, format, c.opts)
	if err != nil {
		return nil, err
	}

	return data, nil
}
