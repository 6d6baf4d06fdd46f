package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
	"github.com/tphakala/go-audio-filterplayer/internal/testutil"
)

func ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i)
	}
	return out
}

func TestConverter_UpsampleDC(t *testing.T) {
	c, err := NewConverter(8000, 16000, 1, Cubic)
	require.NoError(t, err)

	in := []float32{1, 1, 1, 1, 1, 1, 1, 1}
	out, err := c.Process(in, len(in), nil)
	require.NoError(t, err)

	require.Len(t, out, 16)
	// output is exact once the 4-point window is full
	for i, v := range out[6:] {
		assert.InDelta(t, 1.0, v, 1e-7, "sample %d", i+6)
	}
}

func TestConverter_CubicPreservesRamp(t *testing.T) {
	c, err := NewConverter(1000, 2000, 1, Cubic)
	require.NoError(t, err)

	out, err := c.Process(ramp(10), 10, nil)
	require.NoError(t, err)
	require.Len(t, out, 20)

	// two samples of latency: input k yields k-2 and k-1.5
	for k := 3; k < 10; k++ {
		assert.InDelta(t, float64(k-2), out[2*k], 1e-6)
		assert.InDelta(t, float64(k)-1.5, out[2*k+1], 1e-6)
	}
}

func TestConverter_LinearRamp(t *testing.T) {
	c, err := NewConverter(1000, 2000, 1, Linear)
	require.NoError(t, err)

	out, err := c.Process(ramp(6), 6, nil)
	require.NoError(t, err)

	for k := 1; k < 6; k++ {
		assert.InDelta(t, float64(k-1), out[2*k], 1e-6)
		assert.InDelta(t, float64(k)-0.5, out[2*k+1], 1e-6)
	}
}

func TestConverter_Downsample(t *testing.T) {
	c, err := NewConverter(48000, 16000, 2, Cubic)
	require.NoError(t, err)

	in := testutil.Sine(4800, 2, 100, 48000, 0.5)
	out, err := c.Process(in, 4800, nil)
	require.NoError(t, err)

	assert.InDelta(t, 1600, len(out)/2, 1)
	assert.LessOrEqual(t, len(out)/2, c.MaxOutputFrames(4800))
	testutil.AssertNoNaNOrInf(t, out)
}

func TestConverter_BlockSplitInvariance(t *testing.T) {
	in := testutil.Sine(1000, 2, 440, 44100, 0.9)

	whole, err := NewConverter(44100, 48000, 2, Cubic)
	require.NoError(t, err)
	want, err := whole.Process(in, 1000, nil)
	require.NoError(t, err)

	split, err := NewConverter(44100, 48000, 2, Cubic)
	require.NoError(t, err)
	var got []float32
	offset := 0
	for _, n := range []int{1, 299, 400, 300} {
		got, err = split.Process(in[offset*2:(offset+n)*2], n, got)
		require.NoError(t, err)
		offset += n
	}

	assert.Equal(t, want, got)
}

func TestConverter_ResetMatchesFresh(t *testing.T) {
	in := testutil.Sine(300, 1, 440, 44100, 0.9)

	c, err := NewConverter(44100, 48000, 1, Cubic)
	require.NoError(t, err)
	first, err := c.Process(in, 300, nil)
	require.NoError(t, err)

	c.Reset()
	again, err := c.Process(in, 300, nil)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestConverter_Errors(t *testing.T) {
	_, err := NewConverter(0, 48000, 1, Cubic)
	require.ErrorIs(t, err, dsperr.ErrInvalidConfiguration)
	_, err = NewConverter(44100, 48000, 0, Cubic)
	require.ErrorIs(t, err, dsperr.ErrInvalidConfiguration)
	_, err = NewConverter(44100, 48000, 1, Method(4))
	require.ErrorIs(t, err, dsperr.ErrInvalidConfiguration)

	c, err := NewConverter(44100, 48000, 2, Linear)
	require.NoError(t, err)
	_, err = c.Process(nil, 1, nil)
	require.ErrorIs(t, err, dsperr.ErrNoBuffer)
	_, err = c.Process([]float32{1}, 1, nil)
	require.ErrorIs(t, err, dsperr.ErrNoBuffer)

	assert.Equal(t, "cubic", Cubic.String())
	assert.Equal(t, "linear", Linear.String())
}
