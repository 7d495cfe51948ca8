package window

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreprocess_MeanZero(t *testing.T) {
	n := 8
	win := make([]uint8, n*n)
	for i := range win {
		win[i] = uint8((i * 37) % 256)
	}

	out := Preprocess(win, n)

	// The cosine window is applied after mean-zeroing, so the output
	// does not sum to zero; for this input it sums to about -0.135.
	var sum float64
	for _, v := range out {
		sum += float64(v)
	}
	assert.InDelta(t, -0.135, sum, 1e-2, "mean-zeroed, unit-normed, then windowed output sum")
}

func TestPreprocess_ZeroNormWindowStaysFinite(t *testing.T) {
	// A constant image has zero variance after mean-zeroing, so the
	// unit-norm step must leave it untouched rather than dividing by
	// zero (spec §4.1 step 3).
	n := 4
	win := make([]uint8, n*n)
	for i := range win {
		win[i] = 128
	}

	out := Preprocess(win, n)
	for _, v := range out {
		assert.False(t, math.IsNaN(float64(v)))
		assert.False(t, math.IsInf(float64(v), 0))
	}
}

func TestPreprocess_Total(t *testing.T) {
	// The function must never fail for any valid window, including an
	// all-zero (black) frame.
	n := 16
	win := make([]uint8, n*n)
	out := Preprocess(win, n)
	assert.Len(t, out, n*n)
	for _, v := range out {
		assert.False(t, math.IsNaN(float64(v)))
	}
}

func TestPreprocess_CosineWindowZeroesOriginCorner(t *testing.T) {
	// sin(0) == 0, so the first sample (i=0, j=0 in the reference's
	// i-outer/j-inner flat stride-1 mapping) must be exactly zero after
	// the windowing step. The other corners use sin(pi), which is not
	// exactly zero in float32.
	n := 8
	win := make([]uint8, n*n)
	for i := range win {
		win[i] = 200
	}
	out := Preprocess(win, n)
	// position 0 corresponds to i=0, j=0: both sin() terms are 0.
	assert.Equal(t, float32(0), out[0])
}
