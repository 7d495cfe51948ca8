package cbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ZeroedWithCorrectLength(t *testing.T) {
	n := 8
	b := New(n)
	require.Len(t, b.Data(), n*n)
	assert.Equal(t, n, b.N())
	for _, v := range b.Data() {
		assert.Equal(t, complex128(0), v)
	}
}

func TestNewFrom_WrapsWithoutCopying(t *testing.T) {
	n := 4
	data := make([]complex128, n*n)
	data[0] = complex(1, 2)
	b := NewFrom(n, data)

	data[1] = complex(3, 4)
	assert.Equal(t, complex(3, 4), b.Data()[1], "NewFrom must share the backing array, not copy it")
}

func TestClone_IsIndependentCopy(t *testing.T) {
	n := 4
	b := New(n)
	b.Data()[0] = complex(5, 6)

	clone := b.Clone()
	clone.Data()[0] = complex(9, 9)

	assert.Equal(t, complex(5, 6), b.Data()[0])
	assert.Equal(t, complex(9, 9), clone.Data()[0])
}
