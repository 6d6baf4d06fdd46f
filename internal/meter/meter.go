package meter

import (
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
	"github.com/tphakala/go-audio-filterplayer/internal/mathutil"
)

// ScalingMode selects how thresholds are spaced across the input range.
type ScalingMode int

const (
	// Linear spaces thresholds evenly from 0 to the maximum input.
	Linear ScalingMode = iota

	// Logarithmic spaces thresholds geometrically from the log floor to 0 dB.
	Logarithmic
)

// String returns the short mode name used on the command line.
func (m ScalingMode) String() string {
	switch m {
	case Linear:
		return "lin"
	case Logarithmic:
		return "log"
	default:
		return fmt.Sprintf("ScalingMode(%d)", int(m))
	}
}

// ParseScalingMode accepts "lin", "linear", "log" or "logarithmic".
func ParseScalingMode(s string) (ScalingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lin", "linear":
		return Linear, nil
	case "log", "logarithmic":
		return Logarithmic, nil
	default:
		return 0, fmt.Errorf("%w: unknown scaling mode %q", dsperr.ErrInvalidConfiguration, s)
	}
}

// Config holds meter configuration.
type Config struct {
	Mode ScalingMode

	// InputMin and InputMax bound the expected sample values. Only the
	// larger magnitude of the two matters.
	InputMin float32
	InputMax float32

	// LogFloorDB is the level of the lowest bar in logarithmic mode. A
	// positive value is treated as its negation.
	LogFloorDB float64
}

// DefaultConfig returns a linear meter for a ±2 input with a -30 dB floor.
func DefaultConfig() Config {
	return Config{
		Mode:       Linear,
		InputMin:   DefaultInputMin,
		InputMax:   DefaultInputMax,
		LogFloorDB: DefaultLogFloorDB,
	}
}

// MaxInput returns max(|InputMin|, |InputMax|).
func (c Config) MaxInput() float32 {
	return max(abs32(c.InputMin), abs32(c.InputMax))
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Mode != Linear && c.Mode != Logarithmic {
		return fmt.Errorf("%w: unknown scaling mode %v", dsperr.ErrInvalidConfiguration, c.Mode)
	}
	if !finite32(c.InputMin) || !finite32(c.InputMax) {
		return fmt.Errorf("%w: input range [%v, %v] must be finite",
			dsperr.ErrInvalidConfiguration, c.InputMin, c.InputMax)
	}
	if c.MaxInput() == 0 {
		return fmt.Errorf("%w: input range must not be zero", dsperr.ErrInvalidConfiguration)
	}
	if math.IsNaN(c.LogFloorDB) || math.IsInf(c.LogFloorDB, 0) {
		return fmt.Errorf("%w: log floor must be finite", dsperr.ErrInvalidConfiguration)
	}
	return nil
}

// Visualizer receives bar patterns.
type Visualizer interface {
	WriteBarPattern(p Pattern) error
}

// Meter converts sample magnitudes into bar patterns.
type Meter struct {
	cfg        Config
	maxInput   float32
	thresholds [Segments]float32
	vis        Visualizer
}

// New creates a meter. vis may be nil; quantization works without one and
// only the Write methods require it.
func New(cfg Config, vis Visualizer) (*Meter, error) {
	m := &Meter{vis: vis}
	if err := m.Configure(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// Configure rebuilds the threshold table. On error the meter keeps its
// previous configuration.
func (m *Meter) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.LogFloorDB = mathutil.NegativeDB(cfg.LogFloorDB)

	maxInput := cfg.MaxInput()
	var table [Segments]float32
	switch cfg.Mode {
	case Linear:
		step := maxInput / Segments
		for i := range table {
			table[i] = step * float32(i)
		}
	case Logarithmic:
		stepDB := cfg.LogFloorDB / logSteps
		for i := range table {
			table[i] = float32(mathutil.DBToPowerRatio(stepDB * float64(logSteps-i)))
		}
	}

	m.cfg = cfg
	m.maxInput = maxInput
	m.thresholds = table
	return nil
}

// Attach sets the visual sink. nil detaches it.
func (m *Meter) Attach(vis Visualizer) {
	m.vis = vis
}

// Config returns the active configuration with the log floor sign-corrected.
func (m *Meter) Config() Config {
	return m.cfg
}

// Thresholds returns a copy of the threshold table.
func (m *Meter) Thresholds() [Segments]float32 {
	return m.thresholds
}

// MaxInput returns the peak-normalization reference.
func (m *Meter) MaxInput() float32 {
	return m.maxInput
}

// Mode returns the scaling mode.
func (m *Meter) Mode() ScalingMode {
	return m.cfg.Mode
}

// Quantize returns the bar pattern for a single sample value.
func (m *Meter) Quantize(v float32) Pattern {
	mag := abs32(v)
	if math.IsNaN(float64(mag)) {
		return 0
	}
	if m.cfg.Mode == Logarithmic {
		mag /= m.maxInput
	}

	n := 0
	for _, th := range m.thresholds {
		if mag < th {
			break
		}
		n++
	}
	return patternFor(n)
}

// Peak returns the largest magnitude in buf. NaN samples are ignored.
func Peak(buf []float32) float32 {
	var peak float32
	for _, v := range buf {
		if a := abs32(v); a > peak {
			peak = a
		}
	}
	return peak
}

// QuantizeBlock returns the pattern for the peak magnitude of buf, which may
// hold any number of interleaved channels.
func (m *Meter) QuantizeBlock(buf []float32) (Pattern, error) {
	if buf == nil {
		return 0, fmt.Errorf("%w: meter block", dsperr.ErrNoBuffer)
	}
	return m.Quantize(Peak(buf)), nil
}

// Write quantizes v and sends the pattern to the visual sink.
func (m *Meter) Write(v float32) error {
	return m.emit(m.Quantize(v))
}

// WriteBlock quantizes the peak of buf and sends the pattern to the visual sink.
func (m *Meter) WriteBlock(buf []float32) error {
	p, err := m.QuantizeBlock(buf)
	if err != nil {
		return err
	}
	return m.emit(p)
}

func (m *Meter) emit(p Pattern) error {
	if m.vis == nil {
		return dsperr.ErrNoVisualizer
	}
	return m.vis.WriteBarPattern(p)
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func finite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
