package window

import "github.com/chewxy/math32"

// Preprocess converts an N x N luminance window into a length-N*N real
// vector ready for frequency-domain analysis: log-compression,
// mean-zeroing, unit L2-normalization, and a cosine taper (spec §4.1).
// The function is total; it never fails.
func Preprocess(win []uint8, n int) []float32 {
	out := make([]float32, len(win))

	// 1. log-compress
	for i, p := range win {
		out[i] = math32.Log(float32(p) + 1)
	}

	// 2. mean-zero
	var sum float32
	for _, v := range out {
		sum += v
	}
	mean := sum / float32(len(out))
	for i := range out {
		out[i] -= mean
	}

	// 3. unit-norm
	var sumSq float32
	for _, v := range out {
		sumSq += v * v
	}
	u := math32.Sqrt(sumSq)
	if u != 0 {
		for i := range out {
			out[i] /= u
		}
	}

	// 4. cosine window. The outer loop index (i) drives the slow
	// stride and the inner loop index (j) the fast stride of the flat
	// buffer, matching the reference implementation bit-for-bit even
	// though the loop variable names nominally range over width/height
	// rather than row/column; this mapping is load-bearing for
	// reproducing reference outputs (spec §4.1).
	position := 0
	nm1 := float32(n - 1)
	for i := 0; i < n; i++ {
		cww := math32.Sin(math32.Pi * float32(i) / nm1)
		for j := 0; j < n; j++ {
			cwh := math32.Sin(math32.Pi * float32(j) / nm1)
			w := cww
			if cwh < w {
				w = cwh
			}
			out[position] *= w
			position++
		}
	}

	return out
}
