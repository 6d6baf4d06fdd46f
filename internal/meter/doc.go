// Package meter quantizes audio amplitude into a 16-segment bar pattern.
//
// A Meter holds a table of 16 non-decreasing thresholds built from a
// scaling mode and an expected input range. Quantizing a value counts how
// many thresholds its magnitude meets, walking from the lowest threshold up
// and stopping at the first miss, and lights that many bits starting at the
// most significant bit:
//
//	m, _ := meter.New(meter.DefaultConfig(), nil)
//	p := m.Quantize(0.5)     // 0xFF00 with the default linear range of ±2
//	p = m.QuantizeBlock(buf) // pattern of the block's peak magnitude
//
// In logarithmic mode the magnitude is first divided by the maximum expected
// input, so the loudest expected sample sits at 0 dB and lights all 16 bars.
package meter
