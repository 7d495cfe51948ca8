package window

import "math"

// excludeRadius is the half-width of the square neighborhood around the
// peak that ComputePSR excludes from the sidelobe statistics (spec §4.6):
// an 11x11 window, i.e. 5 pixels on either side of the peak.
const excludeRadius = 5

// excludeSize is the area of the (intended) 11x11 exclusion window.
const excludeSize = 11 * 11

// ComputePSR computes the Peak-to-Sidelobe Ratio of a complex response
// map: (peak - mean_of_sidelobe) / stddev_of_sidelobe, where the
// sidelobe is every sample outside an 11x11 neighborhood of the peak.
//
// resp is row-major, n x n, complex; peakIndex is the flat index of
// the response map's maximum (by real part).
//
// When corrected is false, this reproduces the reference implementation's
// exclusion-window bug exactly: the top bound of the exclusion window is
// computed as min(my-5, 0) and the vertical range iterated as
// [bottom, top), which is empty whenever my > 0 (effectively always).
// The sidelobe statistics are then computed over the *entire* map,
// peak included. This is preserved deliberately for behavioral parity
// with the reference (spec §9, Open Questions); set corrected to use
// the fixed top = max(my-5, 0), iterated as [top, bottom).
func ComputePSR(resp []complex128, n, peakIndex int, corrected bool) float64 {
	var s1, s2 float64
	for _, r := range resp {
		re := real(r)
		s1 += re
		s2 += re * re
	}

	mx := peakIndex % n
	my := (peakIndex - mx) / n

	left := mx - excludeRadius
	if left < 0 {
		left = 0
	}
	right := mx + excludeRadius + 1
	if right > n {
		right = n
	}

	var yFrom, yTo int
	bottom := my + excludeRadius + 1
	if bottom > n {
		bottom = n
	}
	if corrected {
		top := my - excludeRadius
		if top < 0 {
			top = 0
		}
		yFrom, yTo = top, bottom
	} else {
		top := my - excludeRadius
		if top > 0 {
			top = 0
		}
		yFrom, yTo = bottom, top
	}

	for x := left; x < right; x++ {
		for y := yFrom; y < yTo; y++ {
			re := real(resp[y*n+x])
			s1 -= re
			s2 -= re * re
		}
	}

	sidelobeSize := float64(n*n - excludeSize)
	if corrected {
		sidelobeSize = float64(n*n - (right-left)*(yTo-yFrom))
	}
	mean := s1 / sidelobeSize
	variance := s2/sidelobeSize - mean*mean
	if !(variance > 0) {
		return 0
	}
	sigma := math.Sqrt(variance)

	peak := real(resp[peakIndex])
	return (peak - mean) / sigma
}

// PeakIndex returns the index of the element with the largest real
// part in resp, breaking ties by first occurrence (spec §4.5.3).
func PeakIndex(resp []complex128) int {
	best := 0
	bestVal := real(resp[0])
	for i := 1; i < len(resp); i++ {
		if v := real(resp[i]); v > bestVal {
			best = i
			bestVal = v
		}
	}
	return best
}

// IndexToCoords converts a flat row-major index into (x, y) for an
// n x n grid: index_to_coords(n, y*n + x) == (x, y).
func IndexToCoords(n, index int) (x, y int) {
	x = index % n
	y = (index - x) / n
	return x, y
}
