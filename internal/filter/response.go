package filter

import (
	"fmt"
	"math/cmplx"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
	"github.com/tphakala/go-audio-filterplayer/internal/mathutil"
	"github.com/tphakala/go-audio-filterplayer/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
)

// ResponsePoint is the filter response at one frequency.
type ResponsePoint struct {
	Frequency   float64 // Hz
	Magnitude   float64 // |H|
	MagnitudeDB float64 // 20*log10|H|, floored at -200 dB
	Phase       float64 // radians
}

// Response evaluates H(e^jw) = B(e^jw)/A(e^jw) at points equally spaced
// frequencies from 0 to sampleRate/2 inclusive. Both polynomials are
// zero-padded to an FFT of 2*(points-1) bins, so the result is exact at
// each bin rather than an impulse-response approximation.
func Response(c Coefficients, points int, sampleRate float64) ([]ResponsePoint, error) {
	if points < minResponsePoints {
		return nil, fmt.Errorf("%w: need at least %d response points",
			dsperr.ErrInvalidConfiguration, minResponsePoints)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive", dsperr.ErrInvalidConfiguration)
	}

	n := responseDoubling * (points - 1)
	if n < len(c.B) || n < len(c.A) {
		return nil, fmt.Errorf("%w: %d points cannot resolve order %d",
			dsperr.ErrInvalidConfiguration, points, c.Order())
	}

	fft := fourier.NewFFT(n)
	num := fft.Coefficients(nil, padded(c.B, n))
	den := fft.Coefficients(nil, padded(c.A, n))

	out := make([]ResponsePoint, points)
	binWidth := sampleRate / float64(n)
	for k := range out {
		var h complex128
		if den[k] != 0 {
			h = num[k] / den[k]
		} else {
			h = cmplx.Inf()
		}
		mag := cmplx.Abs(h)
		out[k] = ResponsePoint{
			Frequency:   float64(k) * binWidth,
			Magnitude:   mag,
			MagnitudeDB: mathutil.AmplitudeToDB(mag, responseFloorDB),
			Phase:       cmplx.Phase(h),
		}
	}

	return out, nil
}

// DCGain returns H(1) = sum(b)/sum(a).
func DCGain(c Coefficients) (float64, error) {
	ops := simdops.Float64Ops()
	den := ops.Sum(widen(c.A))
	if den == 0 {
		return 0, fmt.Errorf("%w: filter has a pole at DC", dsperr.ErrInvalidConfiguration)
	}
	return ops.Sum(widen(c.B)) / den, nil
}

func padded(coeffs []float32, n int) []float64 {
	out := make([]float64, n)
	for i, v := range coeffs {
		out[i] = float64(v)
	}
	return out
}

func widen(coeffs []float32) []float64 {
	out := make([]float64, len(coeffs))
	for i, v := range coeffs {
		out[i] = float64(v)
	}
	return out
}
