package fft

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_RoundTrip(t *testing.T) {
	n := 16
	p, err := NewPlan(n)
	require.NoError(t, err)

	src := make([]complex128, n)
	for i := range src {
		src[i] = complex(math.Sin(float64(i)), 0)
	}

	freq := make([]complex128, n)
	p.Forward(freq, src)

	back := make([]complex128, n)
	p.Inverse(back, freq)

	// Inverse is deliberately unnormalized: it retains gonum's N
	// scaling (we undo gonum's built-in 1/N normalization), so the
	// round trip reproduces src scaled by N.
	for i := range src {
		want := src[i] * complex(float64(n), 0)
		assert.InDelta(t, real(want), real(back[i]), 1e-6)
		assert.InDelta(t, imag(want), imag(back[i]), 1e-6)
	}
}

func TestRegistry_SharesPlansByLength(t *testing.T) {
	r := NewRegistry()
	p1, err := r.Get(256)
	require.NoError(t, err)
	p2, err := r.Get(256)
	require.NoError(t, err)
	assert.Same(t, p1, p2)

	p3, err := r.Get(64)
	require.NoError(t, err)
	assert.NotSame(t, p1, p3)
}

func TestNewPlan_RejectsNonPositiveLength(t *testing.T) {
	_, err := NewPlan(0)
	assert.Error(t, err)
	_, err = NewPlan(-1)
	assert.Error(t, err)
}
