package playback

import (
	"context"

	"github.com/tphakala/go-audio-filterplayer/internal/filter"
	"github.com/tphakala/go-audio-filterplayer/internal/meter"
)

// Source delivers interleaved float32 frames.
//
// Read fills buf with up to frames frames and returns how many were read.
// A count below frames marks the end of the source; io.EOF may accompany it.
// Any other error aborts the session.
type Source interface {
	Read(buf []float32, frames int) (int, error)
	Rewind() error
	Channels() int
	SampleRate() int
}

// OutputSink is an audio output. Play blocks until the sink has accepted
// the frames.
type OutputSink interface {
	Open(channels, sampleRate, blockFrames int) error
	Start() error
	Play(buf []float32, frames int) error
	Stop() error
	Close() error
}

// Toggle is an edge-triggered user signal. Toggled reports whether the
// signal fired since the previous call and must not block.
type Toggle interface {
	Toggled() bool
}

// Waiter is implemented by toggles that can block until the first event.
// Sessions use it to wait for the start signal instead of polling.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Interrupter is implemented by sinks whose Play can block on a device.
// Interrupt makes a blocked Play return; the session calls it when its
// context ends.
type Interrupter interface {
	Interrupt()
}

// Processor filters a block of interleaved frames. in may alias out.
// Channels must match the source.
type Processor interface {
	ApplyBlock(in, out []float32, frames int) error
	Reset()
	Channels() int
}

// BlockMeter visualizes a block of samples.
type BlockMeter interface {
	WriteBlock(buf []float32) error
}

// Observer is notified of session state changes. It is called from the
// goroutine running the session.
type Observer interface {
	StateChanged(s State)
}

var (
	_ Processor  = (*filter.Filter)(nil)
	_ BlockMeter = (*meter.Meter)(nil)
)
