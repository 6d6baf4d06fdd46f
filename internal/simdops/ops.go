// Package simdops provides generic SIMD operations for float32 and float64 types.
// Sample paths run on float32 while coefficient analysis runs on float64, so a
// single generic table keeps both on the same accelerated kernels.
package simdops

import (
	"github.com/tphakala/simd/f32"
	"github.com/tphakala/simd/f64"
)

// Float is the type constraint for supported floating-point types.
type Float interface {
	float32 | float64
}

// Ops provides SIMD-accelerated operations for type F.
type Ops[F Float] struct {
	// Interleave2 interleaves two slices: dst[0]=a[0], dst[1]=b[0], dst[2]=a[1], ...
	Interleave2 func(dst, a, b []F)

	// Sum returns the sum of all elements.
	Sum func(a []F) F
}

var (
	ops32 = Ops[float32]{
		Interleave2: f32.Interleave2,
		Sum:         f32.Sum,
	}
	ops64 = Ops[float64]{
		Interleave2: f64.Interleave2,
		Sum:         f64.Sum,
	}
)

// Float32Ops returns the float32 SIMD operations.
func Float32Ops() *Ops[float32] {
	return &ops32
}

// Float64Ops returns the float64 SIMD operations.
func Float64Ops() *Ops[float64] {
	return &ops64
}
