package img2dds

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestCalculateMipMapCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		w, h int
		want int
	}{
		{w: 1, h: 1, want: 1},
		{w: 4, h: 4, want: 3},
		{w: 8, h: 2, want: 4},
		{w: 5, h: 7, want: 3},
		{w: 256, h: 64, want: 9},
		{w: 4096, h: 4096, want: 13},
	}

	for _, tc := range tests {
		got, err := calculateMipMapCount(tc.w, tc.h)
		if err != nil {
			t.Fatalf("calculateMipMapCount(%d, %d): %v", tc.w, tc.h, err)
		}
		if got != tc.want {
			t.Fatalf("calculateMipMapCount(%d, %d) = %d, want %d", tc.w, tc.h, got, tc.want)
		}
	}
}

func TestGenerateMipmapsDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w, h int
		want [][2]int
	}{
		{name: "8x2", w: 8, h: 2, want: [][2]int{{8, 2}, {4, 1}, {2, 1}, {1, 1}}},
		{name: "5x7", w: 5, h: 7, want: [][2]int{{5, 7}, {2, 3}, {1, 1}}},
		{name: "1x1", w: 1, h: 1, want: [][2]int{{1, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			base := patternBuffer(t, tc.w, tc.h)
			levels, err := GenerateMipmaps(base)
			if err != nil {
				t.Fatalf("GenerateMipmaps: %v", err)
			}
			if !base.IsEmpty() {
				t.Fatalf("base buffer not consumed")
			}
			if len(levels) != len(tc.want) {
				t.Fatalf("levels = %d, want %d", len(levels), len(tc.want))
			}
			for i, l := range levels {
				if l.Width() != tc.want[i][0] || l.Height() != tc.want[i][1] {
					t.Fatalf("level %d is %dx%d, want %dx%d", i, l.Width(), l.Height(), tc.want[i][0], tc.want[i][1])
				}
				if l.Width() != mipDimension(tc.w, i) || l.Height() != mipDimension(tc.h, i) {
					t.Fatalf("level %d disagrees with mipDimension", i)
				}
			}
		})
	}
}

func TestGenerateMipmapsConstantColor(t *testing.T) {
	t.Parallel()

	c := color.NRGBA{R: 200, G: 17, B: 90, A: 33}
	levels, err := GenerateMipmaps(solidBuffer(t, 16, 8, c))
	if err != nil {
		t.Fatalf("GenerateMipmaps: %v", err)
	}

	for i, l := range levels {
		if !l.HasAlpha() {
			t.Fatalf("level %d lost the alpha flag", i)
		}
		p := l.Pix()
		for j := 0; j < len(p); j += 4 {
			if p[j] != c.R || p[j+1] != c.G || p[j+2] != c.B || p[j+3] != c.A {
				t.Fatalf("level %d pixel %d = %v, want %v", i, j/4, p[j:j+4], c)
			}
		}
	}
}

func TestGenerateMipmapsEmpty(t *testing.T) {
	t.Parallel()

	if _, err := GenerateMipmaps(&PixelBuffer{}); !errors.Is(err, ErrEmptyImage) {
		t.Fatalf("expected ErrEmptyImage, got %v", err)
	}
}

func TestFilterTaps(t *testing.T) {
	t.Parallel()

	for _, tc := range [][2]int{{1, 1}, {7, 7}, {16, 8}, {5, 2}, {3, 1}, {4, 9}} {
		src, dst := tc[0], tc[1]
		all := filterTaps(src, dst)
		if len(all) != dst {
			t.Fatalf("%d->%d: %d taps, want %d", src, dst, len(all), dst)
		}
		for i, tp := range all {
			var sum float64
			for _, w := range tp.weights {
				sum += float64(w)
			}
			if math.Abs(sum-1) > 1e-5 {
				t.Fatalf("%d->%d sample %d: weights sum to %f", src, dst, i, sum)
			}
			if src == dst {
				if w := tp.weights[i-tp.first]; math.Abs(float64(w)-1) > 1e-5 {
					t.Fatalf("%d->%d sample %d: centre weight %f, want 1", src, dst, i, w)
				}
			}
		}
	}
}

func TestResampleIdentity(t *testing.T) {
	t.Parallel()

	src := patternBuffer(t, 9, 5)
	dst, err := NewPixelBuffer(9, 5)
	if err != nil {
		t.Fatalf("NewPixelBuffer: %v", err)
	}

	resample(dst, src)
	for i := range src.Pix() {
		if src.Pix()[i] != dst.Pix()[i] {
			t.Fatalf("byte %d: got %d, want %d", i, dst.Pix()[i], src.Pix()[i])
		}
	}
}
