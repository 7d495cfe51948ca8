package window

import "github.com/chewxy/math32"

// targetVariance is the hard-coded Gaussian variance (sigma^2) used by
// BuildTarget. It produces a compact peak roughly 3-4 pixels wide and
// is deliberately not configurable (spec §4.3).
const targetVariance = 2.0

// BuildTarget returns the length-N*N desired correlation response: a
// single quasi-Gaussian peak centered at (N/2, N/2), row-major with y
// as the slow index. Note the asymmetric parenthesization inherited
// from the reference implementation: the variance divides only the y
// term, not the x term. This must be reproduced exactly, since the
// learned filter's shape depends on it.
func BuildTarget(n int) []float32 {
	out := make([]float32, n*n)
	cx := float32(n / 2)
	cy := float32(n / 2)
	for y := 0; y < n; y++ {
		dy := float32(y) - cy
		for x := 0; x < n; x++ {
			dx := float32(x) - cx
			out[y*n+x] = math32.Exp(-(dx*dx + dy*dy/targetVariance))
		}
	}
	return out
}
