package img2dds

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewPixelBuffer(t *testing.T) {
	t.Parallel()

	b, err := NewPixelBuffer(3, 2)
	if err != nil {
		t.Fatalf("NewPixelBuffer: %v", err)
	}
	if b.IsEmpty() || b.Width() != 3 || b.Height() != 2 {
		t.Fatalf("unexpected buffer %dx%d empty=%v", b.Width(), b.Height(), b.IsEmpty())
	}
	if len(b.Pix()) != 3*2*4 {
		t.Fatalf("pix len = %d, want 24", len(b.Pix()))
	}
	for i, v := range b.Pix() {
		if v != 0 {
			t.Fatalf("pix[%d] = %d, want 0", i, v)
		}
	}
}

func TestNewPixelBufferInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w, h int
		want error
	}{
		{name: "zero-width", w: 0, h: 4, want: ErrInvalidDimensions},
		{name: "negative-height", w: 4, h: -1, want: ErrInvalidDimensions},
		{name: "overflow", w: 1 << 20, h: 1 << 20, want: ErrSizeOverflow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewPixelBuffer(tc.w, tc.h)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if !errors.Is(err, ErrInput) {
				t.Fatalf("expected input error class, got %v", err)
			}
		})
	}
}

func TestPixelBufferMove(t *testing.T) {
	t.Parallel()

	src := solidBuffer(t, 2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
	pix := src.Pix()

	dst := src.Move()
	if !src.IsEmpty() || src.Width() != 0 || src.Height() != 0 || src.HasAlpha() {
		t.Fatalf("source not emptied after Move")
	}
	if dst.Width() != 2 || dst.Height() != 2 || !dst.HasAlpha() {
		t.Fatalf("destination lost metadata: %dx%d alpha=%v", dst.Width(), dst.Height(), dst.HasAlpha())
	}
	if &dst.Pix()[0] != &pix[0] {
		t.Fatalf("Move copied pixel memory")
	}

	dst.Release()
	dst.Release()
	if !dst.IsEmpty() {
		t.Fatalf("Release left pixels behind")
	}

	var zero PixelBuffer
	if !zero.IsEmpty() {
		t.Fatalf("zero value must be empty")
	}
	if !(*PixelBuffer)(nil).IsEmpty() {
		t.Fatalf("nil buffer must be empty")
	}
}

func TestPixelBufferFromImage(t *testing.T) {
	t.Parallel()

	img := image.NewRGBA(image.Rect(10, 10, 12, 11))
	img.Set(10, 10, color.RGBA{R: 255, A: 255})
	img.Set(11, 10, color.RGBA{G: 128, A: 128})

	b, err := PixelBufferFromImage(img)
	if err != nil {
		t.Fatalf("PixelBufferFromImage: %v", err)
	}
	if b.Width() != 2 || b.Height() != 1 {
		t.Fatalf("unexpected size %dx%d", b.Width(), b.Height())
	}
	if !b.HasAlpha() {
		t.Fatalf("alpha not detected")
	}

	want := []byte{255, 0, 0, 255, 0, 255, 0, 128}
	for i := range want {
		if b.Pix()[i] != want[i] {
			t.Fatalf("pix = %v, want %v", b.Pix(), want)
		}
	}
}
