package filter

import (
	"fmt"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// State is the per-channel delay line of an IIR filter: channels*(order+1)
// values laid out tap-major, so tap n of channel c lives at n*channels+c.
// The last tap is never written and stays zero; it terminates the
// transposed recurrence without a branch.
//
// The size is fixed at construction.
type State struct {
	order    int
	channels int
	z        []float32
}

// NewState returns a zeroed delay line for the given order and channel count.
func NewState(order, channels int) (*State, error) {
	if order < minOrder || channels < minChannels {
		return nil, fmt.Errorf("%w: filter order and channels must not be zero (order=%d, channels=%d)",
			dsperr.ErrInvalidConfiguration, order, channels)
	}

	return &State{
		order:    order,
		channels: channels,
		z:        make([]float32, channels*(order+1)),
	}, nil
}

// Reset zeroes the delay line.
func (s *State) Reset() {
	clear(s.z)
}

// Order returns the number of taps excluding the zero terminator.
func (s *State) Order() int {
	return s.order
}

// Channels returns the channel count.
func (s *State) Channels() int {
	return s.channels
}

// Len returns the delay line length, channels*(order+1).
func (s *State) Len() int {
	return len(s.z)
}

// Snapshot returns a copy of the flat delay line.
func (s *State) Snapshot() []float32 {
	return append([]float32(nil), s.z...)
}
