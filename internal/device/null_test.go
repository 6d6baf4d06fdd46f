package device

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

func TestNullSink_Lifecycle(t *testing.T) {
	s := NewNullSink(false)

	require.ErrorIs(t, s.Start(), dsperr.ErrDeviceWrite, "start before open")
	require.ErrorIs(t, s.Open(0, 44100, 512), dsperr.ErrInvalidConfiguration)

	require.NoError(t, s.Open(2, 44100, 4))
	require.ErrorIs(t, s.Play(make([]float32, 8), 4), dsperr.ErrDeviceWrite, "play before start")
	require.NoError(t, s.Start())

	require.NoError(t, s.Play([]float32{0.1, -0.7, 0.2, 0.3, 0, 0, 0, 0}, 4))
	require.NoError(t, s.Play([]float32{0.5, 0.5}, 1))
	require.ErrorIs(t, s.Play([]float32{1}, 1), dsperr.ErrNoBuffer)

	assert.Equal(t, int64(5), s.Frames())
	assert.Equal(t, 2, s.Blocks())
	assert.InDelta(t, 0.7, s.Peak(), 1e-7)

	require.NoError(t, s.Stop())
	require.NoError(t, s.Close())
	require.ErrorIs(t, s.Play([]float32{0, 0}, 1), dsperr.ErrDeviceWrite)
}

func TestNullSink_Realtime(t *testing.T) {
	s := NewNullSink(true)
	require.NoError(t, s.Open(1, 1000, 20))
	require.NoError(t, s.Start())

	start := time.Now()
	require.NoError(t, s.Play(make([]float32, 20), 20))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
