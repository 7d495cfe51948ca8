// Package fft wraps gonum's complex FFT with the plan-sharing and
// normalization convention the MOSSE filter pipeline expects: forward
// transforms are gonum's as-is, inverse transforms retain the
// conventional N scaling factor instead of gonum's 1/N normalization.
package fft

import (
	"fmt"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Plan performs forward and inverse complex FFTs of a fixed length.
// A Plan is safe to share across goroutines for reads only; this
// module never calls a Plan concurrently (see §5 of the design notes),
// but the underlying gonum transform holds no mutable state between
// calls so sharing a single Plan across every tracker of the same
// window size is free.
type Plan struct {
	n   int
	fft *fourier.CmplxFFT
}

// NewPlan builds a Plan for complex sequences of length n.
func NewPlan(n int) (*Plan, error) {
	if n <= 0 {
		return nil, fmt.Errorf("fft: length must be positive, got %d", n)
	}
	return &Plan{n: n, fft: fourier.NewCmplxFFT(n)}, nil
}

// Len returns the transform length this plan was built for.
func (p *Plan) Len() int {
	return p.n
}

// Forward computes the forward FFT of src into dst and returns dst.
// src may be destroyed; gonum's CmplxFFT is permitted to use it as
// scratch space.
func (p *Plan) Forward(dst, src []complex128) []complex128 {
	return p.fft.Coefficients(dst, src)
}

// Inverse computes the inverse FFT of src into dst and returns dst,
// deliberately undoing gonum's 1/N normalization so the result carries
// the conventional N scaling factor (spec requirement: response-map
// comparisons are relative, downstream PSR/peak code is consistent
// with the unnormalized convention, so it must not be silently
// normalized here).
func (p *Plan) Inverse(dst, src []complex128) []complex128 {
	dst = p.fft.Sequence(dst, src)
	scale := complex(float64(p.n), 0)
	for i := range dst {
		dst[i] *= scale
	}
	return dst
}

// Registry shares Plans keyed by window length so every tracker
// operating on the same window size amortizes FFT planning, per the
// "shared FFT plan" design note: a supervisor owns one Registry and
// hands each tracker it constructs a borrowed *Plan.
type Registry struct {
	mu    sync.Mutex
	plans map[int]*Plan
}

// NewRegistry creates an empty plan registry.
func NewRegistry() *Registry {
	return &Registry{plans: make(map[int]*Plan)}
}

// Get returns the shared Plan for length n, creating it on first use.
func (r *Registry) Get(n int) (*Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.plans[n]; ok {
		return p, nil
	}
	p, err := NewPlan(n)
	if err != nil {
		return nil, err
	}
	r.plans[n] = p
	return p, nil
}
