package filter

import (
	"fmt"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// Coefficients holds the feedforward (B) and feedback (A) terms of an IIR
// transfer function, both of length order+1. Coefficients built with
// NewCoefficients are normalized so that A[0] == 1.
type Coefficients struct {
	B []float32 // numerator
	A []float32 // denominator
}

// NewCoefficients validates b and a for the given order and returns a
// normalized copy, every term divided by a[0]. Only the first order+1
// terms of each sequence are used.
func NewCoefficients(order int, b, a []float32) (Coefficients, error) {
	if order < minOrder {
		return Coefficients{}, fmt.Errorf("%w: filter order must be >= %d, got %d",
			dsperr.ErrInvalidConfiguration, minOrder, order)
	}
	if b == nil || a == nil {
		return Coefficients{}, fmt.Errorf("%w: filter coefficients not available",
			dsperr.ErrInvalidConfiguration)
	}

	n := order + 1
	if len(b) < n || len(a) < n {
		return Coefficients{}, fmt.Errorf("%w: order %d needs %d coefficients, got b=%d a=%d",
			dsperr.ErrInvalidConfiguration, order, n, len(b), len(a))
	}
	if a[0] == 0 {
		return Coefficients{}, fmt.Errorf("%w: a[0] must not be zero", dsperr.ErrInvalidConfiguration)
	}

	c := Coefficients{
		B: make([]float32, n),
		A: make([]float32, n),
	}
	if a[0] == 1 {
		copy(c.B, b[:n])
		copy(c.A, a[:n])
		return c, nil
	}

	a0 := a[0]
	for i := range n {
		c.B[i] = b[i] / a0
		c.A[i] = a[i] / a0
	}

	return c, nil
}

// Order returns the filter order described by the coefficients.
func (c Coefficients) Order() int {
	return len(c.A) - 1
}

// Clone returns a deep copy.
func (c Coefficients) Clone() Coefficients {
	return Coefficients{
		B: append([]float32(nil), c.B...),
		A: append([]float32(nil), c.A...),
	}
}
