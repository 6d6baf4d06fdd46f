package resample

import (
	"fmt"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
	"github.com/tphakala/go-audio-filterplayer/internal/playback"
)

// RateSink is an output sink that converts every block to a fixed device
// rate before handing it to the wrapped sink. Streams already at the device
// rate pass through untouched.
type RateSink struct {
	inner      playback.OutputSink
	deviceRate int
	method     Method

	conv     *Converter
	channels int
	out      []float32
}

var (
	_ playback.OutputSink  = (*RateSink)(nil)
	_ playback.Interrupter = (*RateSink)(nil)
)

// NewRateSink wraps inner so it always receives deviceRate audio.
func NewRateSink(inner playback.OutputSink, deviceRate int, method Method) (*RateSink, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: wrapped sink is required", dsperr.ErrInvalidConfiguration)
	}
	if deviceRate < 1 {
		return nil, fmt.Errorf("%w: device rate must be positive", dsperr.ErrInvalidConfiguration)
	}
	return &RateSink{inner: inner, deviceRate: deviceRate, method: method}, nil
}

// Open opens the wrapped sink at the device rate with a block size large
// enough for one converted input block.
func (s *RateSink) Open(channels, sampleRate, blockFrames int) error {
	s.channels = channels
	if sampleRate == s.deviceRate {
		s.conv = nil
		return s.inner.Open(channels, sampleRate, blockFrames)
	}

	conv, err := NewConverter(sampleRate, s.deviceRate, channels, s.method)
	if err != nil {
		return err
	}
	s.conv = conv
	outFrames := conv.MaxOutputFrames(blockFrames)
	s.out = make([]float32, 0, outFrames*channels)
	return s.inner.Open(channels, s.deviceRate, outFrames)
}

// Start starts the wrapped sink.
func (s *RateSink) Start() error {
	return s.inner.Start()
}

// Play converts and forwards frames. A block too short to produce output
// is absorbed into the interpolation history.
func (s *RateSink) Play(buf []float32, frames int) error {
	if s.conv == nil {
		return s.inner.Play(buf, frames)
	}

	out, err := s.conv.Process(buf, frames, s.out[:0])
	if err != nil {
		return err
	}
	s.out = out
	n := len(out) / s.channels
	if n == 0 {
		return nil
	}
	return s.inner.Play(out, n)
}

// Interrupt forwards to the wrapped sink if it can be interrupted.
func (s *RateSink) Interrupt() {
	if i, ok := s.inner.(playback.Interrupter); ok {
		i.Interrupt()
	}
}

// Stop stops the wrapped sink.
func (s *RateSink) Stop() error {
	return s.inner.Stop()
}

// Close closes the wrapped sink and drops the conversion state.
func (s *RateSink) Close() error {
	if s.conv != nil {
		s.conv.Reset()
	}
	return s.inner.Close()
}
