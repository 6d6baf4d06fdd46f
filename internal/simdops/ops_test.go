package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterleave2_Float32(t *testing.T) {
	dst := make([]float32, 6)
	Float32Ops().Interleave2(dst, []float32{1, 2, 3}, []float32{-1, -2, -3})
	assert.Equal(t, []float32{1, -1, 2, -2, 3, -3}, dst)
}

func TestSum_Float32(t *testing.T) {
	assert.InDelta(t, 4.5, Float32Ops().Sum([]float32{0.5, 1, 3}), 1e-6)
}

func TestSum_Float64(t *testing.T) {
	ops := Float64Ops()
	assert.InDelta(t, 10.0, ops.Sum([]float64{1, 2, 3, 4}), 1e-12)
	assert.InDelta(t, 0.0, ops.Sum(nil), 1e-12)
}

func BenchmarkInterleave2_32(b *testing.B) {
	ops := Float32Ops()
	left := make([]float32, 1024)
	right := make([]float32, 1024)
	dst := make([]float32, 2048)
	for i := range left {
		left[i] = float32(i) * 0.01
		right[i] = -left[i]
	}

	b.ReportAllocs()
	for b.Loop() {
		ops.Interleave2(dst, left, right)
	}
}
