package img2dds

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	// source formats understood by LoadImage
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decoder is the process-wide decoding backend state.
var decoder struct {
	mu   sync.Mutex
	refs int
}

// Init acquires the decoding backend. Every Init must be paired with one
// Destroy; LoadImage and ConvertToDDS work only between them.
func Init() {
	decoder.mu.Lock()
	decoder.refs++
	decoder.mu.Unlock()
}

// Destroy releases the decoding backend acquired by Init.
func Destroy() {
	decoder.mu.Lock()
	if decoder.refs > 0 {
		decoder.refs--
	}
	decoder.mu.Unlock()
}

func decoderReady() bool {
	decoder.mu.Lock()
	defer decoder.mu.Unlock()
	return decoder.refs > 0
}

// LoadImage decodes an image file into a pixel buffer with FlagAlpha set
// when the image has any non-opaque pixel. Sources whose declared size does
// not fit a pixel buffer or the file fail with an ErrInput error.
//
// PNG, JPEG, GIF, BMP, TIFF, WebP and TGA are decoded fully. Uncompressed DDS
// and EDDS sources yield their largest mip level of the first face;
// block-compressed ones fail with ErrCompressedSource.
func LoadImage(path string) (*PixelBuffer, error) {
	if !decoderReady() {
		return nil, ErrDecoderNotInitialized
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}

	r := bufio.NewReader(f)
	if hasDDSMagic(r) {
		b, err := decodeDDS(r, isEDDSPath(path), fi.Size())
		if err != nil {
			return nil, fmt.Errorf("%q: %w", path, err)
		}
		return b, nil
	}

	// check the declared size before the decoder allocates for it
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrDecodeImage, path, err)
	}
	if _, err := pixelBytes(cfg.Width, cfg.Height); err != nil {
		return nil, fmt.Errorf("%w: %q: %dx%d: %v", ErrDecodeImage, path, cfg.Width, cfg.Height, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	r.Reset(f)

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrDecodeImage, path, err)
	}

	return PixelBufferFromImage(img)
}

func isEDDSPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ContainerEDDS.Ext())
}
