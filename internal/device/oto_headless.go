//go:build headless

package device

import (
	"fmt"
	"time"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// OtoSink is unavailable in headless builds; Open always fails.
type OtoSink struct {
	BufferBlocks int
	DrainTimeout time.Duration
}

// NewOtoSink creates a sink that cannot be opened.
func NewOtoSink() *OtoSink {
	return &OtoSink{}
}

// Open reports that no audio device is compiled in.
func (s *OtoSink) Open(channels, sampleRate, blockFrames int) error {
	return fmt.Errorf("%w: built without audio output (headless)", dsperr.ErrDeviceWrite)
}

func (s *OtoSink) Start() error { return nil }
func (s *OtoSink) Play(buf []float32, frames int) error { return dsperr.ErrDeviceWrite }
func (s *OtoSink) Interrupt() {}
func (s *OtoSink) Stop() error { return nil }
func (s *OtoSink) Close() error { return nil }
