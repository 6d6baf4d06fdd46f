package filterplayer

import (
	"context"
	"fmt"
	"log"

	"github.com/tphakala/go-audio-filterplayer/internal/device"
	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
	"github.com/tphakala/go-audio-filterplayer/internal/playback"
	"github.com/tphakala/go-audio-filterplayer/internal/resample"
	"github.com/tphakala/go-audio-filterplayer/internal/simdops"
	"github.com/tphakala/go-audio-filterplayer/internal/wavio"
)

// Options configures PlayFile and RenderFile.
type Options struct {
	// Filter is applied to every block. nil plays the source unfiltered.
	// Its channel count must match the file.
	Filter *Filter

	// Meter receives every emitted block. nil disables metering.
	Meter *Meter

	// Toggle starts, pauses and resumes playback. nil starts immediately
	// and never pauses.
	Toggle Toggle

	// Observer is notified of state changes.
	Observer Observer

	// PauseMode selects source handling while paused.
	PauseMode PauseMode

	// FramesPerBlock overrides the default of an eighth of a second.
	FramesPerBlock int

	// DeviceRate resamples playback to a fixed device rate. Zero plays at
	// the file rate. Ignored by RenderFile.
	DeviceRate int

	// BitDepth of the rendered file. Zero uses the source bit depth when
	// it can be written, else 16. Ignored by PlayFile.
	BitDepth int

	// Logger receives session progress messages.
	Logger *log.Logger
}

func (o Options) sessionConfig() playback.Config {
	cfg := playback.DefaultConfig()
	cfg.FramesPerBlock = o.FramesPerBlock
	cfg.PauseMode = o.PauseMode
	cfg.Logger = o.Logger
	return cfg
}

// PlayFile plays a WAV file on the system audio device and returns when
// the file has been played, the toggle quits or ctx is cancelled.
func PlayFile(ctx context.Context, path string, opts Options) (Stats, error) {
	src, err := wavio.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = src.Close() }()

	var sink OutputSink = device.NewOtoSink()
	if opts.DeviceRate > 0 {
		sink, err = resample.NewRateSink(sink, opts.DeviceRate, resample.Cubic)
		if err != nil {
			return Stats{}, err
		}
	}
	return run(ctx, src, sink, opts)
}

// RenderFile filters a WAV file into a new WAV file without playing it.
// The toggle, if any, still controls when rendering starts and pauses.
func RenderFile(ctx context.Context, inPath, outPath string, opts Options) (Stats, error) {
	src, err := wavio.Open(inPath)
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = src.Close() }()

	bitDepth := opts.BitDepth
	if bitDepth == 0 {
		bitDepth = wavio.RenderBitDepth(src.Info().BitDepth)
	}
	sink, err := wavio.NewRenderFile(outPath, bitDepth)
	if err != nil {
		return Stats{}, err
	}
	return run(ctx, src, sink, opts)
}

func run(ctx context.Context, src Source, sink OutputSink, opts Options) (Stats, error) {
	s, err := playback.New(opts.sessionConfig(), src, sink)
	if err != nil {
		return Stats{}, err
	}
	if opts.Filter != nil {
		s.SetFilter(opts.Filter)
	}
	if opts.Meter != nil {
		s.SetMeter(opts.Meter)
	}
	if opts.Toggle != nil {
		s.SetToggle(opts.Toggle)
	}
	if opts.Observer != nil {
		s.SetObserver(opts.Observer)
	}
	return s.Run(ctx)
}

// FilterSamples filters interleaved samples in one pass from a reset
// state and returns a new slice.
func FilterSamples(f *Filter, interleaved []float32) ([]float32, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: filter is nil", dsperr.ErrInvalidConfiguration)
	}
	channels := f.Channels()
	if len(interleaved)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples is not a whole number of %d-channel frames",
			dsperr.ErrNoBuffer, len(interleaved), channels)
	}

	f.Reset()
	out := make([]float32, len(interleaved))
	if len(out) == 0 {
		return out, nil
	}
	if err := f.ApplyBlock(interleaved, out, len(interleaved)/channels); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterMono is a convenience function for one-shot mono IIR filtering.
func FilterMono(input []float32, order int, b, a []float32) ([]float32, error) {
	f, err := NewIIRFilter(order, monoChannels, b, a, "")
	if err != nil {
		return nil, err
	}
	return FilterSamples(f, input)
}

// FilterStereo is a convenience function for one-shot stereo IIR filtering.
// Both channels use the same coefficients and independent state.
func FilterStereo(left, right []float32, order int, b, a []float32) (leftOut, rightOut []float32, err error) {
	if len(left) != len(right) {
		return nil, nil, fmt.Errorf("%w: channel lengths differ (%d vs %d)",
			dsperr.ErrNoBuffer, len(left), len(right))
	}
	f, err := NewIIRFilter(order, stereoChannels, b, a, "")
	if err != nil {
		return nil, nil, err
	}
	out, err := FilterSamples(f, InterleaveToStereo(left, right))
	if err != nil {
		return nil, nil, err
	}
	leftOut, rightOut = DeinterleaveFromStereo(out)
	return leftOut, rightOut, nil
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float32) []float32 {
	n := min(len(left), len(right))
	out := make([]float32, n*stereoChannels)
	simdops.Float32Ops().Interleave2(out, left[:n], right[:n])
	return out
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float32) (left, right []float32) {
	n := len(interleaved) / stereoChannels
	left = make([]float32, n)
	right = make([]float32, n)
	for i := range n {
		left[i] = interleaved[i*stereoChannels]
		right[i] = interleaved[i*stereoChannels+1]
	}
	return left, right
}
