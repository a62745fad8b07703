package img2dds

import (
	"encoding/binary"
	"image/color"
	"testing"
)

// DDS header field offsets in a file (magic included).
const (
	offFlags       = 8
	offHeight      = 12
	offWidth       = 16
	offPitch       = 20
	offDepth       = 24
	offMipMapCount = 28
	offReserved1   = 32
	offPFFlags     = 80
	offFourCC      = 84
	offBitCount    = 88
	offRMask       = 92
	offGMask       = 96
	offBMask       = 100
	offAMask       = 104
	offCaps        = 108
	offCaps2       = 112
	dataOffset     = 128
)

// Reference DDS bit values.
const (
	wantDDSDCaps        = 0x1
	wantDDSDHeight      = 0x2
	wantDDSDWidth       = 0x4
	wantDDSDPitch       = 0x8
	wantDDSDPixelFormat = 0x1000
	wantDDSDMipMapCount = 0x20000
	wantDDSDLinearSize  = 0x80000

	wantDDPFAlphaPixels = 0x1
	wantDDPFFourCC      = 0x4
	wantDDPFRGB         = 0x40
	wantDDPFNormal      = 0x80000000

	wantCapsComplex = 0x8
	wantCapsTexture = 0x1000
	wantCapsMipmap  = 0x400000

	wantCaps2CubeAll = 0xfe00
)

var (
	colorOpaqueBlue = color.NRGBA{B: 255, A: 255}
	colorFlatNormal = color.NRGBA{R: 128, G: 128, B: 255, A: 255}
)

func u32At(data []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(data[off : off+4])
}

// solidBuffer returns a w x h buffer filled with c.
func solidBuffer(tb testing.TB, w, h int, c color.NRGBA) *PixelBuffer {
	tb.Helper()

	b, err := NewPixelBuffer(w, h)
	if err != nil {
		tb.Fatalf("NewPixelBuffer: %v", err)
	}
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3] = c.R, c.G, c.B, c.A
	}
	AnalyzeAlpha(b)

	return b
}

// patternBuffer returns an opaque w x h buffer with a deterministic pattern.
func patternBuffer(tb testing.TB, w, h int) *PixelBuffer {
	tb.Helper()

	b, err := NewPixelBuffer(w, h)
	if err != nil {
		tb.Fatalf("NewPixelBuffer: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			b.pix[i] = uint8((x*7 + y*3) & 0xff)    //nolint:gosec // bounded by mask
			b.pix[i+1] = uint8((x*13 + y*5) & 0xff) //nolint:gosec // bounded by mask
			b.pix[i+2] = uint8((x ^ y) & 0xff)      //nolint:gosec // bounded by mask
			b.pix[i+3] = 255
		}
	}

	return b
}

// clonePix copies the pixels of b, since builds consume their faces.
func clonePix(b *PixelBuffer) []byte {
	out := make([]byte, len(b.pix))
	copy(out, b.pix)
	return out
}

// initDecoder brackets a test with Init/Destroy. Parallel tests must call
// t.Parallel before it.
func initDecoder(tb testing.TB) {
	tb.Helper()

	Init()
	tb.Cleanup(Destroy)
}
