// Package testutil provides reusable test helper functions for filter, meter
// and playback tests.
package testutil

import (
	"math"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-6 // float32 sample comparisons
	DBTolerance      = 0.01
)

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float32, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		f := float64(v)
		if math.IsNaN(f) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(f, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is non-decreasing.
func AssertMonotonic(t *testing.T, s []float32, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertSlicesInDelta verifies two slices have equal length and match
// element-wise within tolerance.
func AssertSlicesInDelta(t *testing.T, expected, actual []float32, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if !assert.InDelta(t, expected[i], actual[i], tolerance,
			"index %d: expected %f, got %f", i, expected[i], actual[i]) {
			return false
		}
	}
	return true
}

// AssertPrefixMask verifies that a 16-bit bar pattern is a contiguous run of
// high bits starting at the most significant bit, with exactly n bits set.
func AssertPrefixMask(t *testing.T, pattern uint16, n int, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Equal(t, n, bits.OnesCount16(pattern), "pattern %016b bit count", pattern) {
		return false
	}
	if n == 0 {
		return assert.Zero(t, pattern)
	}
	want := uint16(0xFFFF << (16 - n))
	return assert.Equal(t, want, pattern, "pattern %016b is not an MSB-aligned prefix", pattern)
}

// Sine returns an interleaved multi-channel sine of the given length in frames.
// Channel c is phase-shifted by c quarter periods so channels differ.
func Sine(frames, channels int, freq, sampleRate, amplitude float64) []float32 {
	out := make([]float32, frames*channels)
	for k := range frames {
		for c := range channels {
			phase := 2*math.Pi*freq*float64(k)/sampleRate + float64(c)*math.Pi/2
			out[k*channels+c] = float32(amplitude * math.Sin(phase))
		}
	}
	return out
}
