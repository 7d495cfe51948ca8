package window

import "github.com/chewxy/math32"

// RotationAngles are the radian offsets used to build rotated affine
// training perturbations (spec §4.4). Members beyond +/-1 radian are
// unusually large for a MOSSE filter's small-perturbation training set;
// they are inherited from the reference implementation and preserved
// for reproducibility (spec §9).
var RotationAngles = []float32{
	0.02, -0.02, 0.05, -0.05, 0.07, -0.07, 0.09, -0.09,
	1.1, -1.1, 1.3, -1.3, 1.5, -1.5, 2.0, -2.0,
}

// ScaleFactors are the uniform scalings, about the image origin, used
// to build scaled affine training perturbations (spec §4.4).
var ScaleFactors = []float32{0.8, 0.9, 1.1, 1.2}

// TrainingWindowCount is the total number of variants TrainingWindows
// produces: the unperturbed window, plus one per RotationAngles entry,
// plus one per ScaleFactors entry.
const TrainingWindowCount = 1 + 16 + 4

// TrainingWindows returns the deterministic training variants of an
// N x N luminance window used to regularize initial filter synthesis:
// the window itself, then rotations about its center (RotationAngles
// order), then scalings about the coordinate origin (ScaleFactors
// order). The returned slices, apart from the first (which aliases
// win), are freshly allocated.
func TrainingWindows(win []uint8, n int) [][]uint8 {
	variants := make([][]uint8, 0, TrainingWindowCount)
	variants = append(variants, win)
	for _, theta := range RotationAngles {
		variants = append(variants, rotateAboutCenter(win, n, theta))
	}
	for _, s := range ScaleFactors {
		variants = append(variants, scaleAboutOrigin(win, n, s))
	}
	return variants
}

// rotateAboutCenter nearest-neighbor resamples win, rotated by theta
// radians about its own center, filling pixels with no source with
// luminance 0.
func rotateAboutCenter(win []uint8, n int, theta float32) []uint8 {
	out := make([]uint8, n*n)
	c := float32(n-1) / 2
	sinT, cosT := math32.Sin(theta), math32.Cos(theta)
	for y := 0; y < n; y++ {
		dy := float32(y) - c
		for x := 0; x < n; x++ {
			dx := float32(x) - c
			// Backward-map the destination pixel through the inverse
			// rotation to find its source pixel; this is the standard
			// hole-free warp sampling convention.
			sx := c + dx*cosT + dy*sinT
			sy := c - dx*sinT + dy*cosT
			out[y*n+x] = sampleNearest(win, n, sx, sy)
		}
	}
	return out
}

// scaleAboutOrigin nearest-neighbor resamples win, uniformly scaled by
// factor about the coordinate origin (0,0), filling pixels with no
// source with luminance 0.
func scaleAboutOrigin(win []uint8, n int, factor float32) []uint8 {
	out := make([]uint8, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			sx := float32(x) / factor
			sy := float32(y) / factor
			out[y*n+x] = sampleNearest(win, n, sx, sy)
		}
	}
	return out
}

func sampleNearest(win []uint8, n int, sx, sy float32) uint8 {
	ix := int(math32.Round(sx))
	iy := int(math32.Round(sy))
	if ix < 0 || ix >= n || iy < 0 || iy >= n {
		return 0
	}
	return win[iy*n+ix]
}
