// Package cbuf backs the MOSSE filter's complex-valued window buffers
// (A, B, H, G) with gorgonia.org/tensor.Dense instead of bare slices,
// the way the teacher module backs its numeric leaf types (x/math/mat,
// x/math/vec) with a flat array wrapped in a small type. Only the
// ndarray container is used here, not gorgonia's autodiff graph.
package cbuf

import "gorgonia.org/tensor"

// Buffer is a square, complex128, row-major N x N array.
type Buffer struct {
	n      int
	tensor *tensor.Dense
	data   []complex128
}

// New allocates a zeroed N x N complex buffer.
func New(n int) *Buffer {
	t := tensor.New(
		tensor.WithShape(n, n),
		tensor.Of(tensor.Complex128),
	)
	return &Buffer{n: n, tensor: t, data: t.Data().([]complex128)}
}

// NewFrom wraps an existing length-N*N flat buffer; it takes ownership
// of data (no copy).
func NewFrom(n int, data []complex128) *Buffer {
	t := tensor.New(
		tensor.WithShape(n, n),
		tensor.Of(tensor.Complex128),
		tensor.WithBacking(data),
	)
	return &Buffer{n: n, tensor: t, data: t.Data().([]complex128)}
}

// Data returns the flat, row-major backing slice. Mutating it mutates
// the buffer.
func (b *Buffer) Data() []complex128 {
	return b.data
}

// N returns the buffer's edge length.
func (b *Buffer) N() int {
	return b.n
}

// Tensor exposes the underlying *tensor.Dense for callers that want
// gorgonia/tensor's reshaping or slicing helpers.
func (b *Buffer) Tensor() *tensor.Dense {
	return b.tensor
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	cp := make([]complex128, len(b.data))
	copy(cp, b.data)
	return NewFrom(b.n, cp)
}
