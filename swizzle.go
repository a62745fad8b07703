package img2dds

import "fmt"

// SwizzleMode selects a fixed channel permutation.
type SwizzleMode uint8

const (
	// SwizzleNone leaves channels as they are.
	SwizzleNone SwizzleMode = iota
	// SwizzleYYYX rewrites RGBA to GGGR (DXT5nm normal maps).
	SwizzleYYYX
	// SwizzleZYZX rewrites RGBA to BGBR (DXT5nm+z normal maps).
	SwizzleZYZX
)

// String returns the mode name.
func (m SwizzleMode) String() string {
	switch m {
	case SwizzleNone:
		return "none"
	case SwizzleYYYX:
		return "YYYX"
	case SwizzleZYZX:
		return "ZYZX"
	default:
		return fmt.Sprintf("SwizzleMode(%d)", uint8(m))
	}
}

// Swizzle permutes the channels of every pixel in place.
func Swizzle(b *PixelBuffer, mode SwizzleMode) error {
	if b.IsEmpty() {
		return ErrEmptyImage
	}

	pix := b.pix
	switch mode {
	case SwizzleNone:
	case SwizzleYYYX:
		for i := 0; i < len(pix); i += 4 {
			r, g := pix[i], pix[i+1]
			pix[i], pix[i+1], pix[i+2], pix[i+3] = g, g, g, r
		}
	case SwizzleZYZX:
		for i := 0; i < len(pix); i += 4 {
			r, g, bl := pix[i], pix[i+1], pix[i+2]
			pix[i], pix[i+1], pix[i+2], pix[i+3] = bl, g, bl, r
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidSwizzle, mode)
	}

	return nil
}

// FlipVertical mirrors b top to bottom in place.
func FlipVertical(b *PixelBuffer) {
	if b.IsEmpty() {
		return
	}

	stride := b.width * 4
	tmp := make([]byte, stride)
	for top, bottom := 0, b.height-1; top < bottom; top, bottom = top+1, bottom-1 {
		rowT := b.pix[top*stride : (top+1)*stride]
		rowB := b.pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, rowT)
		copy(rowT, rowB)
		copy(rowB, tmp)
	}
}

// FlipHorizontal mirrors b left to right in place.
func FlipHorizontal(b *PixelBuffer) {
	if b.IsEmpty() {
		return
	}

	stride := b.width * 4
	for y := 0; y < b.height; y++ {
		row := b.pix[y*stride : (y+1)*stride]
		for l, r := 0, (b.width-1)*4; l < r; l, r = l+4, r-4 {
			row[l], row[r] = row[r], row[l]
			row[l+1], row[r+1] = row[r+1], row[l+1]
			row[l+2], row[r+2] = row[r+2], row[l+2]
			row[l+3], row[r+3] = row[r+3], row[l+3]
		}
	}
}
