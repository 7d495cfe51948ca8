package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainingWindows_Count(t *testing.T) {
	n := 8
	win := make([]uint8, n*n)
	for i := range win {
		win[i] = uint8(i % 256)
	}

	variants := TrainingWindows(win, n)
	require.Len(t, variants, TrainingWindowCount)
	assert.Equal(t, TrainingWindowCount, 1+len(RotationAngles)+len(ScaleFactors))

	// The first variant is the unperturbed window itself.
	assert.Equal(t, win, variants[0])
	for _, v := range variants {
		assert.Len(t, v, n*n)
	}
}

func TestRotateAboutCenter_ZeroAngleIsIdentity(t *testing.T) {
	n := 8
	win := make([]uint8, n*n)
	for i := range win {
		win[i] = uint8(i % 256)
	}
	rotated := rotateAboutCenter(win, n, 0)
	assert.Equal(t, win, rotated)
}

func TestScaleAboutOrigin_UnitScaleIsIdentity(t *testing.T) {
	n := 8
	win := make([]uint8, n*n)
	for i := range win {
		win[i] = uint8(i % 256)
	}
	scaled := scaleAboutOrigin(win, n, 1.0)
	assert.Equal(t, win, scaled)
}

func TestScaleAboutOrigin_FillsExposedPixelsWithZero(t *testing.T) {
	n := 8
	win := make([]uint8, n*n)
	for i := range win {
		win[i] = 255
	}
	// Scaling down by < 1 about the origin exposes pixels near the far
	// edge that have no source; those must be filled with 0.
	scaled := scaleAboutOrigin(win, n, 0.5)
	assert.Equal(t, uint8(0), scaled[(n-1)*n+(n-1)])
}
