package img2dds

import "math"

// Normal map heuristic tolerances, in bi-unit [-1,1] space.
const (
	// NormalMapMeanTolerance is the maximum distance between the mean pixel
	// vector and the flat normal (0,0,1), i.e. mean colour #8080ff.
	NormalMapMeanTolerance = 0.25
	// NormalMapLengthTolerance is the maximum deviation of the mean squared
	// pixel vector length from 1.
	NormalMapLengthTolerance = 0.2
)

// AnalyzeAlpha sets FlagAlpha on b iff any alpha byte is below 255.
func AnalyzeAlpha(b *PixelBuffer) {
	if b.IsEmpty() {
		return
	}

	hasAlpha := false
	for i := 3; i < len(b.pix); i += 4 {
		if b.pix[i] != 0xff {
			hasAlpha = true
			break
		}
	}

	b.setFlag(FlagAlpha, hasAlpha)
}

// LooksLikeNormalMap guesses whether b holds a tangent-space normal map.
//
// Each pixel's RGB is mapped to [-1,1]. The image qualifies when the mean
// vector is close to (0,0,1) and the mean squared vector length is close to
// one. This is a heuristic, not a validation.
func LooksLikeNormalMap(b *PixelBuffer) bool {
	if b.IsEmpty() {
		return false
	}

	var sumX, sumY, sumZ, sumLen2 float64
	for i := 0; i < len(b.pix); i += 4 {
		x := float64(b.pix[i])/127.5 - 1
		y := float64(b.pix[i+1])/127.5 - 1
		z := float64(b.pix[i+2])/127.5 - 1

		sumX += x
		sumY += y
		sumZ += z
		sumLen2 += x*x + y*y + z*z
	}

	n := float64(b.width * b.height)
	mx, my, mz := sumX/n, sumY/n, sumZ/n
	meanLen2 := sumLen2 / n

	dist := math.Sqrt(mx*mx + my*my + (mz-1)*(mz-1))
	return dist <= NormalMapMeanTolerance && math.Abs(meanLen2-1) <= NormalMapLengthTolerance
}
