package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-filterplayer/internal/device"
	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// formatSink records the format it was opened with.
type formatSink struct {
	*device.NullSink
	rate, block int
}

func (s *formatSink) Open(channels, sampleRate, blockFrames int) error {
	s.rate, s.block = sampleRate, blockFrames
	return s.NullSink.Open(channels, sampleRate, blockFrames)
}

// interruptSink counts Interrupt calls.
type interruptSink struct {
	*device.NullSink
	interrupts int
}

func (s *interruptSink) Interrupt() { s.interrupts++ }

func TestRateSink_ForwardsInterrupt(t *testing.T) {
	inner := &interruptSink{NullSink: device.NewNullSink(false)}
	s, err := NewRateSink(inner, 48000, Cubic)
	require.NoError(t, err)
	s.Interrupt()
	assert.Equal(t, 1, inner.interrupts)

	plain, err := NewRateSink(device.NewNullSink(false), 48000, Cubic)
	require.NoError(t, err)
	plain.Interrupt()
}

func TestRateSink_Converts(t *testing.T) {
	inner := &formatSink{NullSink: device.NewNullSink(false)}
	s, err := NewRateSink(inner, 16000, Cubic)
	require.NoError(t, err)

	require.NoError(t, s.Open(2, 8000, 100))
	assert.Equal(t, 16000, inner.rate)
	assert.Equal(t, 202, inner.block)

	require.NoError(t, s.Start())
	block := make([]float32, 200)
	for range 3 {
		require.NoError(t, s.Play(block, 100))
	}
	require.NoError(t, s.Stop())
	require.NoError(t, s.Close())

	assert.Equal(t, int64(600), inner.Frames())
	assert.Equal(t, 3, inner.Blocks())
}

func TestRateSink_PassThrough(t *testing.T) {
	inner := &formatSink{NullSink: device.NewNullSink(false)}
	s, err := NewRateSink(inner, 44100, Linear)
	require.NoError(t, err)

	require.NoError(t, s.Open(1, 44100, 64))
	assert.Equal(t, 64, inner.block)
	require.NoError(t, s.Start())
	require.NoError(t, s.Play(make([]float32, 64), 64))
	assert.Equal(t, int64(64), inner.Frames())
}

func TestRateSink_Errors(t *testing.T) {
	_, err := NewRateSink(nil, 48000, Cubic)
	require.ErrorIs(t, err, dsperr.ErrInvalidConfiguration)

	_, err = NewRateSink(device.NewNullSink(false), 0, Cubic)
	require.ErrorIs(t, err, dsperr.ErrInvalidConfiguration)
}
