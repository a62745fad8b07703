package img2dds

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
)

func TestSwizzle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode SwizzleMode
		want []byte
	}{
		{mode: SwizzleNone, want: []byte{10, 200, 30, 5}},
		{mode: SwizzleYYYX, want: []byte{200, 200, 200, 10}},
		{mode: SwizzleZYZX, want: []byte{30, 200, 30, 10}},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			t.Parallel()

			b := solidBuffer(t, 2, 2, color.NRGBA{R: 10, G: 200, B: 30, A: 5})
			if err := Swizzle(b, tc.mode); err != nil {
				t.Fatalf("Swizzle: %v", err)
			}
			for i := 0; i < len(b.Pix()); i += 4 {
				if !bytes.Equal(b.Pix()[i:i+4], tc.want) {
					t.Fatalf("pixel %d = %v, want %v", i/4, b.Pix()[i:i+4], tc.want)
				}
			}
		})
	}
}

func TestSwizzleErrors(t *testing.T) {
	t.Parallel()

	if err := Swizzle(&PixelBuffer{}, SwizzleYYYX); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}

	b := solidBuffer(t, 1, 1, color.NRGBA{A: 255})
	if err := Swizzle(b, SwizzleMode(9)); !errors.Is(err, ErrInvalidSwizzle) {
		t.Fatalf("expected ErrInvalidSwizzle, got %v", err)
	}
}

func TestFlip(t *testing.T) {
	t.Parallel()

	// 2x3, one distinct byte per pixel in R
	newBuf := func() *PixelBuffer {
		b, err := NewPixelBuffer(2, 3)
		if err != nil {
			t.Fatalf("NewPixelBuffer: %v", err)
		}
		for i := 0; i < 6; i++ {
			b.Pix()[i*4] = byte(i + 1)
		}
		return b
	}
	reds := func(b *PixelBuffer) []byte {
		out := make([]byte, 0, 6)
		for i := 0; i < len(b.Pix()); i += 4 {
			out = append(out, b.Pix()[i])
		}
		return out
	}

	v := newBuf()
	FlipVertical(v)
	if got, want := reds(v), []byte{5, 6, 3, 4, 1, 2}; !bytes.Equal(got, want) {
		t.Fatalf("FlipVertical = %v, want %v", got, want)
	}

	h := newBuf()
	FlipHorizontal(h)
	if got, want := reds(h), []byte{2, 1, 4, 3, 6, 5}; !bytes.Equal(got, want) {
		t.Fatalf("FlipHorizontal = %v, want %v", got, want)
	}

	FlipVertical(&PixelBuffer{})
	FlipHorizontal(&PixelBuffer{})
}
