package filter

import (
	"fmt"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// IIR is a multi-channel IIR filter of arbitrary order in direct form II
// transposed. It owns its coefficients and delay line exclusively and is not
// safe for concurrent use.
type IIR struct {
	coeffs Coefficients
	state  *State
}

// NewIIR creates an IIR filter for interleaved audio with the given number
// of channels. b and a must hold at least order+1 terms and a[0] must be
// non-zero; the coefficients are normalized by a[0].
func NewIIR(order, channels int, b, a []float32) (*IIR, error) {
	state, err := NewState(order, channels)
	if err != nil {
		return nil, err
	}

	coeffs, err := NewCoefficients(order, b, a)
	if err != nil {
		return nil, err
	}

	return &IIR{coeffs: coeffs, state: state}, nil
}

// Process filters frames frames of interleaved audio from in into out.
// Both buffers must hold at least frames*channels samples and in may alias
// out. frames must be at least the filter order. The delay line carries
// over to the next call.
//
// For every frame and channel:
//
//	y      = b[0]*x + z[0]
//	z[n-1] = b[n]*x - a[n]*y + z[n]   for n = 1..order
func (f *IIR) Process(in, out []float32, frames int) error {
	if in == nil || out == nil {
		return fmt.Errorf("%w: input and output buffers are required", dsperr.ErrNoBuffer)
	}

	order := f.state.order
	if frames < order {
		return fmt.Errorf("%w: %d frames, order %d", dsperr.ErrBlockTooShort, frames, order)
	}

	channels := f.state.channels
	size := frames * channels
	if len(in) < size || len(out) < size {
		return fmt.Errorf("%w: need %d samples, got in=%d out=%d",
			dsperr.ErrNoBuffer, size, len(in), len(out))
	}

	b, a, z := f.coeffs.B, f.coeffs.A, f.state.z
	b0 := b[0]

	for k := 0; k < size; k += channels {
		for c := range channels {
			x := in[k+c]
			y := b0*x + z[c]
			for n := 1; n <= order; n++ {
				z[(n-1)*channels+c] = b[n]*x - a[n]*y + z[n*channels+c]
			}
			out[k+c] = y
		}
	}

	return nil
}

// Reset zeroes the delay line. Coefficients are unchanged.
func (f *IIR) Reset() {
	f.state.Reset()
}

// Order returns the filter order.
func (f *IIR) Order() int {
	return f.state.order
}

// Channels returns the number of interleaved channels the filter expects.
func (f *IIR) Channels() int {
	return f.state.channels
}

// Coefficients returns a copy of the normalized coefficients.
func (f *IIR) Coefficients() Coefficients {
	return f.coeffs.Clone()
}

// State returns a copy of the current delay line.
func (f *IIR) State() []float32 {
	return f.state.Snapshot()
}
