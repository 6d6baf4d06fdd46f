package filterplayer

import (
	"fmt"
	"io"

	"github.com/tphakala/go-audio-filterplayer/internal/device"
	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// SliceSource is a Source over interleaved samples held in memory.
type SliceSource struct {
	samples    []float32
	channels   int
	sampleRate int
	pos        int // frames
}

var _ Source = (*SliceSource)(nil)

// NewSliceSource wraps interleaved samples. A trailing partial frame is
// ignored.
func NewSliceSource(samples []float32, channels, sampleRate int) (*SliceSource, error) {
	if channels < monoChannels || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", dsperr.ErrInvalidConfiguration, channels, sampleRate)
	}
	return &SliceSource{samples: samples, channels: channels, sampleRate: sampleRate}, nil
}

// Read copies up to frames frames into buf. It returns io.EOF with the
// final short read.
func (s *SliceSource) Read(buf []float32, frames int) (int, error) {
	if len(buf) < frames*s.channels {
		return 0, fmt.Errorf("%w: need %d samples, got %d", dsperr.ErrNoBuffer, frames*s.channels, len(buf))
	}
	n := min(frames, s.Frames()-s.pos)
	copy(buf, s.samples[s.pos*s.channels:(s.pos+n)*s.channels])
	s.pos += n
	if n < frames {
		return n, io.EOF
	}
	return n, nil
}

// Rewind returns to the first frame.
func (s *SliceSource) Rewind() error {
	s.pos = 0
	return nil
}

// Channels returns the channel count.
func (s *SliceSource) Channels() int {
	return s.channels
}

// SampleRate returns the sample rate in Hz.
func (s *SliceSource) SampleRate() int {
	return s.sampleRate
}

// Frames returns the total number of frames.
func (s *SliceSource) Frames() int {
	return len(s.samples) / s.channels
}

// NewNullSink returns a sink that discards audio. With realtime set it
// paces playback to the sample rate.
func NewNullSink(realtime bool) *device.NullSink {
	return device.NewNullSink(realtime)
}
