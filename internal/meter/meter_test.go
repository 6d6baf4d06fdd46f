package meter

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
	"github.com/tphakala/go-audio-filterplayer/internal/testutil"
)

type recordingVisualizer struct {
	patterns []Pattern
	err      error
}

func (r *recordingVisualizer) WriteBarPattern(p Pattern) error {
	if r.err != nil {
		return r.err
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func logConfig(floor float64) Config {
	return Config{Mode: Logarithmic, InputMin: -1, InputMax: 1, LogFloorDB: floor}
}

func TestConfigure_LinearThresholds(t *testing.T) {
	m, err := New(Config{Mode: Linear, InputMin: -3, InputMax: 1.6}, nil)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, m.MaxInput(), 1e-7)
	th := m.Thresholds()
	for i, v := range th {
		assert.InDelta(t, 3.0/16*float64(i), v, 1e-6, "threshold %d", i)
	}
	assert.Zero(t, th[0])
	testutil.AssertMonotonic(t, th[:])
}

func TestConfigure_LogThresholdBoundaries(t *testing.T) {
	for _, floor := range []float64{-6, -30, -48, -96} {
		m, err := New(logConfig(floor), nil)
		require.NoError(t, err)

		th := m.Thresholds()
		assert.Equal(t, float32(1), th[Segments-1], "floor %v", floor)
		assert.InDelta(t, math.Pow(10, floor/10), th[0], 1e-6, "floor %v", floor)
		testutil.AssertMonotonic(t, th[:])
	}
}

func TestConfigure_PositiveFloorIsNegated(t *testing.T) {
	pos, err := New(logConfig(30), nil)
	require.NoError(t, err)
	neg, err := New(logConfig(-30), nil)
	require.NoError(t, err)

	assert.Equal(t, neg.Thresholds(), pos.Thresholds())
	assert.Equal(t, -30.0, pos.Config().LogFloorDB)
}

func TestConfigure_Invalid(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero range", Config{Mode: Linear}},
		{"NaN min", Config{Mode: Linear, InputMin: nan, InputMax: 1}},
		{"Inf max", Config{Mode: Linear, InputMin: -1, InputMax: inf}},
		{"unknown mode", Config{Mode: ScalingMode(9), InputMax: 1}},
		{"NaN floor", Config{Mode: Logarithmic, InputMax: 1, LogFloorDB: math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg, nil)
			require.ErrorIs(t, err, dsperr.ErrInvalidConfiguration)
		})
	}
}

func TestConfigure_FailureKeepsPreviousTable(t *testing.T) {
	m, err := New(DefaultConfig(), nil)
	require.NoError(t, err)
	before := m.Thresholds()

	require.Error(t, m.Configure(Config{Mode: Logarithmic}))
	assert.Equal(t, before, m.Thresholds())
	assert.Equal(t, Linear, m.Mode())
}

func TestConfigure_RebuildsWholeTable(t *testing.T) {
	m, err := New(DefaultConfig(), nil)
	require.NoError(t, err)

	require.NoError(t, m.Configure(logConfig(-30)))
	fresh, err := New(logConfig(-30), nil)
	require.NoError(t, err)

	assert.Equal(t, fresh.Thresholds(), m.Thresholds())
	assert.Equal(t, Logarithmic, m.Mode())
}

func TestQuantize_Linear(t *testing.T) {
	// ±2 input: thresholds step by 0.125
	m, err := New(DefaultConfig(), nil)
	require.NoError(t, err)

	tests := []struct {
		v    float32
		bars int
	}{
		{0, 1},
		{0.1, 1},
		{0.125, 2},
		{-0.5, 5},
		{1.0, 9},
		{1.875, 16},
		{5, 16},
	}
	for _, tt := range tests {
		p := m.Quantize(tt.v)
		testutil.AssertPrefixMask(t, uint16(p), tt.bars, "value %v", tt.v)
	}
}

func TestQuantize_LogPeakNormalizes(t *testing.T) {
	m, err := New(Config{Mode: Logarithmic, InputMin: -2, InputMax: 2, LogFloorDB: -30}, nil)
	require.NoError(t, err)

	assert.Equal(t, Pattern(0xFFFF), m.Quantize(2), "full scale reaches 0 dB")
	assert.Equal(t, Pattern(0xFFFF), m.Quantize(-2))
	assert.Equal(t, Pattern(0), m.Quantize(0), "silence is below the floor")

	// 0.2 of full scale is 10^(-0.7), between the -8 dB and -6 dB thresholds
	testutil.AssertPrefixMask(t, uint16(m.Quantize(0.4)), 12)
}

func TestQuantize_PrefixProperty(t *testing.T) {
	configs := []Config{
		DefaultConfig(),
		{Mode: Logarithmic, InputMin: -1, InputMax: 1, LogFloorDB: -60},
		{Mode: Linear, InputMin: 0, InputMax: 0.01},
	}
	for _, cfg := range configs {
		m, err := New(cfg, nil)
		require.NoError(t, err)
		th := m.Thresholds()

		for i := range 400 {
			v := float32(i-200) / 97
			mag := float32(math.Abs(float64(v)))
			if cfg.Mode == Logarithmic {
				mag /= m.MaxInput()
			}
			met := 0
			for _, x := range th {
				if mag >= x {
					met++
				}
			}
			testutil.AssertPrefixMask(t, uint16(m.Quantize(v)), met, "mode %v value %v", cfg.Mode, v)
		}
	}
}

func TestQuantize_NaN(t *testing.T) {
	m, err := New(DefaultConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, Pattern(0), m.Quantize(float32(math.NaN())))
}

func TestQuantizeBlock_UsesPeak(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig(), logConfig(-30)} {
		m, err := New(cfg, nil)
		require.NoError(t, err)

		p, err := m.QuantizeBlock([]float32{0.1, -0.9, 0.3})
		require.NoError(t, err)
		assert.Equal(t, m.Quantize(0.9), p, "mode %v", cfg.Mode)
	}
}

func TestQuantizeBlock_NilBuffer(t *testing.T) {
	m, err := New(DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = m.QuantizeBlock(nil)
	require.ErrorIs(t, err, dsperr.ErrNoBuffer)

	p, err := m.QuantizeBlock([]float32{})
	require.NoError(t, err)
	assert.Equal(t, m.Quantize(0), p)
}

func TestPeak(t *testing.T) {
	assert.InDelta(t, 0.9, Peak([]float32{0.1, -0.9, 0.3}), 1e-7)
	assert.Zero(t, Peak(nil))
	assert.InDelta(t, 0.5, Peak([]float32{float32(math.NaN()), 0.5}), 1e-7)
}

func TestWrite_Visualizer(t *testing.T) {
	m, err := New(DefaultConfig(), nil)
	require.NoError(t, err)

	require.ErrorIs(t, m.Write(1), dsperr.ErrNoVisualizer)
	require.ErrorIs(t, m.WriteBlock([]float32{1}), dsperr.ErrNoVisualizer)

	vis := &recordingVisualizer{}
	m.Attach(vis)
	require.NoError(t, m.Write(1))
	require.NoError(t, m.WriteBlock([]float32{0.2, -2}))
	require.ErrorIs(t, m.WriteBlock(nil), dsperr.ErrNoBuffer)

	assert.Equal(t, []Pattern{m.Quantize(1), 0xFFFF}, vis.patterns)

	m.Attach(nil)
	require.ErrorIs(t, m.Write(0), dsperr.ErrNoVisualizer)
}

func TestWrite_PropagatesSinkError(t *testing.T) {
	sinkErr := errors.New("display unplugged")
	m, err := New(DefaultConfig(), &recordingVisualizer{err: sinkErr})
	require.NoError(t, err)

	require.ErrorIs(t, m.Write(1), sinkErr)
}

func TestParseScalingMode(t *testing.T) {
	for in, want := range map[string]ScalingMode{
		"lin": Linear, "Linear": Linear, "log": Logarithmic, " logarithmic ": Logarithmic,
	} {
		got, err := ParseScalingMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseScalingMode("db")
	require.ErrorIs(t, err, dsperr.ErrInvalidConfiguration)
	assert.Equal(t, "lin", Linear.String())
	assert.Equal(t, "log", Logarithmic.String())
}
