package img2dds

// calculateMipMapCount calculates the number of mipmap levels for a given width and height.
// The chain always ends at 1x1.
func calculateMipMapCount(width, height int) (int, error) {
	count := 1
	w, err := u32FromInt(width)
	if err != nil {
		return 0, err
	}

	h, err := u32FromInt(height)
	if err != nil {
		return 0, err
	}

	for w > 1 || h > 1 {
		count++
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
	}

	return count, nil
}

// mipDimension calculates the dimension of a mipmap level.
func mipDimension(base, level int) int {
	result := base >> level
	if result < 1 {
		return 1
	}

	return result
}

// GenerateMipmaps builds the full mip chain for base.
//
// Level 0 is base itself, moved into the chain (base is left empty). Every
// further level is a Lanczos-3 downsample of the previous one to half its
// size (rounded down, at least 1) until 1x1 is reached.
func GenerateMipmaps(base *PixelBuffer) ([]*PixelBuffer, error) {
	if base.IsEmpty() {
		return nil, ErrEmptyImage
	}

	count, err := calculateMipMapCount(base.width, base.height)
	if err != nil {
		return nil, err
	}

	levels := make([]*PixelBuffer, count)
	levels[0] = base.Move()
	for i := 1; i < count; i++ {
		level, err := downsample(levels[i-1])
		if err != nil {
			return nil, err
		}
		levels[i] = level
	}

	return levels, nil
}

// downsample halves src with the Lanczos-3 filter.
func downsample(src *PixelBuffer) (*PixelBuffer, error) {
	dst, err := NewPixelBuffer(max(1, src.width/2), max(1, src.height/2))
	if err != nil {
		return nil, err
	}

	resample(dst, src)
	dst.flags = src.flags
	return dst, nil
}
