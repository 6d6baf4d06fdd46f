package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// DelayParams configures a comb delay filter.
type DelayParams struct {
	DelayMs    int     // delay in milliseconds
	SampleRate int     // sample rate of the filtered signal in Hz
	GainFF     float32 // feedforward gain applied to x[n-D]
	GainFB     float32 // feedback gain applied to y[n-D], 0 <= GainFB < 1
	Channels   int     // interleaved channel count
}

// DelayFrames returns the delay D in frames, DelayMs*SampleRate/1000.
func (p DelayParams) DelayFrames() int {
	return int(int64(p.DelayMs) * int64(p.SampleRate) / msPerSecond)
}

// Validate checks that the parameters describe a stable, non-empty delay.
func (p DelayParams) Validate() error {
	if p.Channels < minChannels {
		return fmt.Errorf("%w: channels must be >= %d", dsperr.ErrInvalidConfiguration, minChannels)
	}
	if p.DelayMs <= 0 || p.SampleRate <= 0 {
		return fmt.Errorf("%w: delay and sample rate must be positive", dsperr.ErrInvalidConfiguration)
	}
	if p.DelayMs > MaxDelayMs || p.SampleRate > MaxSampleRate {
		return fmt.Errorf("%w: %d ms at %d Hz exceeds %d ms at %d Hz",
			dsperr.ErrInvalidConfiguration, p.DelayMs, p.SampleRate, MaxDelayMs, MaxSampleRate)
	}
	if p.DelayFrames() < minOrder {
		return fmt.Errorf("%w: %d ms at %d Hz is shorter than one frame",
			dsperr.ErrInvalidConfiguration, p.DelayMs, p.SampleRate)
	}
	if math.IsNaN(float64(p.GainFF)) || math.IsInf(float64(p.GainFF), 0) {
		return fmt.Errorf("%w: feedforward gain must be finite", dsperr.ErrInvalidConfiguration)
	}
	if p.GainFB < 0 || p.GainFB >= maxFeedbackGain || math.IsNaN(float64(p.GainFB)) {
		return fmt.Errorf("%w: feedback gain must be in [0, 1), got %v",
			dsperr.ErrInvalidConfiguration, p.GainFB)
	}
	return nil
}

// Delay is a comb filter combining a feedforward and a feedback path:
//
//	y[n] = x[n] + gFF*x[n-D] + gFB*y[n-D]
//
// Input and output histories are kept in per-channel circular buffers of
// D frames, interleaved like the audio itself.
type Delay struct {
	params DelayParams
	frames int
	xHist  []float32
	yHist  []float32
	pos    int
}

// NewDelay creates a delay filter.
func NewDelay(p DelayParams) (*Delay, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	d := p.DelayFrames()
	return &Delay{
		params: p,
		frames: d,
		xHist:  make([]float32, d*p.Channels),
		yHist:  make([]float32, d*p.Channels),
	}, nil
}

// Process filters frames frames of interleaved audio from in into out.
// in may alias out. Unlike the IIR filter, blocks shorter than the delay
// are allowed.
func (d *Delay) Process(in, out []float32, frames int) error {
	if in == nil || out == nil {
		return fmt.Errorf("%w: input and output buffers are required", dsperr.ErrNoBuffer)
	}

	channels := d.params.Channels
	size := frames * channels
	if len(in) < size || len(out) < size {
		return fmt.Errorf("%w: need %d samples, got in=%d out=%d",
			dsperr.ErrNoBuffer, size, len(in), len(out))
	}

	gff, gfb := d.params.GainFF, d.params.GainFB
	for k := 0; k < size; k += channels {
		base := d.pos * channels
		for c := range channels {
			x := in[k+c]
			y := x + gff*d.xHist[base+c] + gfb*d.yHist[base+c]
			d.xHist[base+c] = x
			d.yHist[base+c] = y
			out[k+c] = y
		}
		d.pos++
		if d.pos >= d.frames {
			d.pos = 0
		}
	}

	return nil
}

// Reset clears both histories.
func (d *Delay) Reset() {
	clear(d.xHist)
	clear(d.yHist)
	d.pos = 0
}

// Order returns the delay length in frames.
func (d *Delay) Order() int {
	return d.frames
}

// Channels returns the interleaved channel count.
func (d *Delay) Channels() int {
	return d.params.Channels
}

// DelayMs returns the configured delay in milliseconds.
func (d *Delay) DelayMs() int {
	return d.params.DelayMs
}

// GainFF returns the feedforward gain.
func (d *Delay) GainFF() float32 {
	return d.params.GainFF
}

// GainFB returns the feedback gain.
func (d *Delay) GainFB() float32 {
	return d.params.GainFB
}

// Params returns the construction parameters.
func (d *Delay) Params() DelayParams {
	return d.params
}
