package filterplayer

import (
	"github.com/tphakala/go-audio-filterplayer/internal/coeffile"
	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
	"github.com/tphakala/go-audio-filterplayer/internal/filter"
	"github.com/tphakala/go-audio-filterplayer/internal/meter"
	"github.com/tphakala/go-audio-filterplayer/internal/playback"
)

// Filter types.
type (
	// Filter is an IIR or comb delay filter applied block by block.
	Filter = filter.Filter

	// FilterKind identifies the variant held by a Filter.
	FilterKind = filter.Kind

	// Coefficients holds normalized b and a terms.
	Coefficients = filter.Coefficients

	// DelayParams configures a comb delay filter.
	DelayParams = filter.DelayParams

	// ResponsePoint is one frequency response sample.
	ResponsePoint = filter.ResponsePoint
)

// Filter kinds.
const (
	KindIIR   = filter.KindIIR
	KindDelay = filter.KindDelay
)

// Meter types.
type (
	// Meter quantizes sample magnitudes into bar patterns.
	Meter = meter.Meter

	// MeterConfig holds meter scaling parameters.
	MeterConfig = meter.Config

	// ScalingMode selects linear or logarithmic threshold spacing.
	ScalingMode = meter.ScalingMode

	// Pattern is a 16-bit bar pattern.
	Pattern = meter.Pattern

	// Visualizer receives bar patterns.
	Visualizer = meter.Visualizer
)

// Scaling modes.
const (
	Linear      = meter.Linear
	Logarithmic = meter.Logarithmic
)

// Playback types.
type (
	// Session plays a source through a filter and meter to a sink.
	Session = playback.Session

	// SessionConfig holds session parameters.
	SessionConfig = playback.Config

	// Stats summarizes a finished session.
	Stats = playback.Stats

	// State is a session lifecycle state.
	State = playback.State

	// PauseMode selects source handling while paused.
	PauseMode = playback.PauseMode

	// Source delivers interleaved float32 frames.
	Source = playback.Source

	// OutputSink is an audio output.
	OutputSink = playback.OutputSink

	// Toggle is an edge-triggered user signal.
	Toggle = playback.Toggle

	// Observer is notified of session state changes.
	Observer = playback.Observer
)

// Pause modes.
const (
	PauseHold = playback.PauseHold
	PauseSkip = playback.PauseSkip
)

// Errors returned by the library. Test for them with errors.Is.
var (
	ErrInvalidConfiguration = dsperr.ErrInvalidConfiguration
	ErrNoBuffer             = dsperr.ErrNoBuffer
	ErrNoVisualizer         = dsperr.ErrNoVisualizer
	ErrDeviceWrite          = dsperr.ErrDeviceWrite
	ErrBlockTooShort        = dsperr.ErrBlockTooShort
	ErrNoSource             = dsperr.ErrNoSource
	ErrSessionActive        = dsperr.ErrSessionActive
)

// NewIIRFilter creates an IIR filter of the given order for interleaved
// audio with channels channels. b and a need at least order+1 terms.
func NewIIRFilter(order, channels int, b, a []float32, label string) (*Filter, error) {
	return filter.NewIIRFilter(order, channels, b, a, label)
}

// NewDelayFilter creates a feedback comb delay filter.
func NewDelayFilter(p DelayParams) (*Filter, error) {
	return filter.NewDelayFilter(p)
}

// LoadFilter reads a coefficient file and builds a filter from the set
// matching sampleRate.
func LoadFilter(path string, sampleRate, channels int) (*Filter, error) {
	f, err := coeffile.Load(path)
	if err != nil {
		return nil, err
	}
	return f.Filter(sampleRate, channels)
}

// Response evaluates the magnitude and phase response of c at points
// frequencies from DC to Nyquist.
func Response(c Coefficients, points int, sampleRate float64) ([]ResponsePoint, error) {
	return filter.Response(c, points, sampleRate)
}

// NewMeter creates a meter. vis may be nil and attached later.
func NewMeter(cfg MeterConfig, vis Visualizer) (*Meter, error) {
	return meter.New(cfg, vis)
}

// DefaultMeterConfig returns linear scaling over [-2, 2] with a -30 dB
// logarithmic floor.
func DefaultMeterConfig() MeterConfig {
	return meter.DefaultConfig()
}

// NewSession creates a playback session.
func NewSession(cfg SessionConfig, src Source, sink OutputSink) (*Session, error) {
	return playback.New(cfg, src, sink)
}

// DefaultSessionConfig returns the default session configuration.
func DefaultSessionConfig() SessionConfig {
	return playback.DefaultConfig()
}
