// Package resample converts interleaved float32 audio between sample rates
// with low-latency polynomial interpolation, so a session can play files
// whose rate the output device does not support.
package resample

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// Method selects the interpolation polynomial.
type Method int

const (
	// Cubic uses 4-point, 3rd order Hermite interpolation.
	Cubic Method = iota

	// Linear uses 2-point interpolation. Cheaper, with more aliasing.
	Linear
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case Cubic:
		return "cubic"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Converter resamples interleaved frames. All channels share one time base
// and keep their own interpolation history across calls.
type Converter struct {
	method   Method
	ratio    float64 // output rate / input rate
	step     float64 // input frames advanced per output frame
	channels int
	phase    float64
	history  [][cubicInterpolationPoints]float64 // newest sample first
}

// NewConverter creates a converter from inRate to outRate.
func NewConverter(inRate, outRate, channels int, method Method) (*Converter, error) {
	if inRate < 1 || outRate < 1 {
		return nil, fmt.Errorf("%w: rates must be positive, got %d -> %d",
			dsperr.ErrInvalidConfiguration, inRate, outRate)
	}
	if channels < 1 {
		return nil, fmt.Errorf("%w: channels must be >= 1", dsperr.ErrInvalidConfiguration)
	}
	if method != Cubic && method != Linear {
		return nil, fmt.Errorf("%w: unknown method %v", dsperr.ErrInvalidConfiguration, method)
	}

	ratio := float64(outRate) / float64(inRate)
	return &Converter{
		method:   method,
		ratio:    ratio,
		step:     1 / ratio,
		channels: channels,
		history:  make([][cubicInterpolationPoints]float64, channels),
	}, nil
}

// Ratio returns the output/input rate ratio.
func (c *Converter) Ratio() float64 {
	return c.ratio
}

// MaxOutputFrames returns an upper bound on the frames produced from
// inFrames input frames.
func (c *Converter) MaxOutputFrames(inFrames int) int {
	return int(math.Ceil(float64(inFrames)*c.ratio)) + outputMargin
}

// Process resamples frames frames of in and appends the result to out.
func (c *Converter) Process(in []float32, frames int, out []float32) ([]float32, error) {
	if in == nil {
		return out, fmt.Errorf("%w: resample input", dsperr.ErrNoBuffer)
	}
	if len(in) < frames*c.channels {
		return out, fmt.Errorf("%w: need %d samples, got %d",
			dsperr.ErrNoBuffer, frames*c.channels, len(in))
	}

	for k := range frames {
		base := k * c.channels
		// Shift history window
		for ch := range c.channels {
			h := &c.history[ch]
			h[3], h[2], h[1], h[0] = h[2], h[1], h[0], float64(in[base+ch])
		}

		// Generate output frames
		for c.phase < 1.0 {
			for ch := range c.channels {
				out = append(out, float32(c.interpolate(&c.history[ch], c.phase)))
			}
			c.phase += c.step
		}

		// Wrap phase
		c.phase -= 1.0
	}

	return out, nil
}

// interpolate evaluates the polynomial at fractional position x.
func (c *Converter) interpolate(h *[cubicInterpolationPoints]float64, x float64) float64 {
	if c.method == Linear {
		// between the previous and current sample
		return (1-x)*h[1] + x*h[0]
	}

	y0 := h[3] // oldest
	y1 := h[2]
	y2 := h[1]
	y3 := h[0] // newest

	coefA := -hermiteCoeff0_5*y0 + hermiteCoeff1_5*y1 - hermiteCoeff1_5*y2 + hermiteCoeff0_5*y3
	coefB := y0 - hermiteCoeff2_5*y1 + 2*y2 - hermiteCoeff0_5*y3
	coefC := -hermiteCoeff0_5*y0 + hermiteCoeff0_5*y2
	coefD := y1

	return ((coefA*x+coefB)*x+coefC)*x + coefD
}

// Reset clears the interpolation history and phase.
func (c *Converter) Reset() {
	c.phase = 0
	clear(c.history)
}
