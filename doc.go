// Package filterplayer plays PCM audio through a per-channel IIR filter
// while driving a 16-segment amplitude bar display.
//
// The library is built from three parts:
//
//   - A Direct Form II Transposed IIR filter with an explicit per-channel
//     delay line that persists across blocks, plus a feedback comb delay
//     filter. Both are wrapped in a tagged [Filter].
//   - An amplitude [Meter] that quantizes a sample magnitude against 16
//     thresholds, spaced linearly or logarithmically, and emits a bar
//     [Pattern] to a visual sink.
//   - A playback [Session] that reads fixed-size blocks from a source,
//     filters and meters them, and writes them to an output sink, pausing
//     and resuming on an edge-triggered user toggle.
//
// # Quick Start
//
// To filter a WAV file offline:
//
//	f, err := filterplayer.LoadFilter("lowpass.txt", 44100, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stats, err := filterplayer.RenderFile(ctx, "in.wav", "out.wav", filterplayer.Options{
//	    Filter: f,
//	})
//
// To filter samples already in memory:
//
//	out, err := filterplayer.FilterSamples(f, interleaved)
//
// For interactive playback build a [Session] with [NewSession], attach a
// filter, meter and toggle, and call [Session.Run].
//
// # Filter Coefficients
//
// Coefficient files start with a "type;order;info" header followed by one
// group of three lines per sample rate: the rate, the b (numerator) terms
// and the a (denominator) terms. Values are separated by commas,
// semicolons, tabs or spaces. Coefficients are normalized by a[0].
//
// # Pause Semantics
//
// With [PauseHold], the default, a paused session stops reading and resumes
// where it left off. With [PauseSkip] a paused session keeps reading and
// discarding blocks, so playback resumes further into the source.
//
// # Thread Safety
//
// A [Filter] and a [Meter] must not be used from more than one goroutine
// at a time. A [Session] runs on the caller's goroutine; its toggle is
// polled from that goroutine and may be fed from any other.
package filterplayer
