package img2dds

import "math"

// lanczosRadius is the lobe count of the Lanczos window.
const lanczosRadius = 3

// lanczos3 evaluates the Lanczos-3 kernel sinc(x)*sinc(x/3).
func lanczos3(x float64) float64 {
	if x == 0 {
		return 1
	}
	if x <= -lanczosRadius || x >= lanczosRadius {
		return 0
	}

	px := math.Pi * x
	return lanczosRadius * math.Sin(px) * math.Sin(px/lanczosRadius) / (px * px)
}

// taps are the normalized filter weights of one output sample, starting at
// source index first. Indices outside the source are clamped to the edge.
type taps struct {
	first   int
	weights []float32
}

// filterTaps computes per-output-sample weights for resizing srcLen samples
// into dstLen samples. When minifying, the kernel is stretched by the scale
// factor so every source sample contributes.
func filterTaps(srcLen, dstLen int) []taps {
	scale := float64(srcLen) / float64(dstLen)
	stretch := math.Max(scale, 1)
	support := lanczosRadius * stretch

	out := make([]taps, dstLen)
	raw := make([]float64, 0, int(2*support)+2)
	for i := range out {
		center := (float64(i)+0.5)*scale - 0.5
		lo := int(math.Ceil(center - support))
		hi := int(math.Floor(center + support))

		raw = raw[:0]
		sum := 0.0
		for j := lo; j <= hi; j++ {
			w := lanczos3((float64(j) - center) / stretch)
			raw = append(raw, w)
			sum += w
		}

		weights := make([]float32, len(raw))
		for k, w := range raw {
			weights[k] = float32(w / sum)
		}
		out[i] = taps{first: lo, weights: weights}
	}

	return out
}

// resample scales src into dst. Channels are filtered independently in
// straight alpha, so data stored in alpha (swizzled normal maps) is kept.
func resample(dst, src *PixelBuffer) {
	xTaps := filterTaps(src.width, dst.width)
	yTaps := filterTaps(src.height, dst.height)

	srcStride := src.width * 4
	tmpStride := dst.width * 4
	tmp := make([]float32, src.height*tmpStride)

	// horizontal pass: src.height rows of dst.width samples
	for y := 0; y < src.height; y++ {
		row := src.pix[y*srcStride : (y+1)*srcStride]
		out := tmp[y*tmpStride : (y+1)*tmpStride]
		for x, t := range xTaps {
			var r, g, b, a float32
			for k, w := range t.weights {
				p := clampIndex(t.first+k, src.width) * 4
				r += w * float32(row[p])
				g += w * float32(row[p+1])
				b += w * float32(row[p+2])
				a += w * float32(row[p+3])
			}
			o := x * 4
			out[o], out[o+1], out[o+2], out[o+3] = r, g, b, a
		}
	}

	// vertical pass
	dstStride := dst.width * 4
	for y, t := range yTaps {
		out := dst.pix[y*dstStride : (y+1)*dstStride]
		for x := 0; x < tmpStride; x++ {
			var v float32
			for k, w := range t.weights {
				v += w * tmp[clampIndex(t.first+k, src.height)*tmpStride+x]
			}
			out[x] = clampByte(v)
		}
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}

	return i
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}

	return uint8(v + 0.5)
}
