package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// NullSink discards audio. With Realtime set, Play sleeps for the duration
// of the frames so a session runs at playback speed without hardware.
type NullSink struct {
	Realtime bool

	mu       sync.Mutex
	open     bool
	started  bool
	channels int
	rate     int
	frames   int64
	blocks   int
	peak     float32
}

// NewNullSink creates a sink that discards audio.
func NewNullSink(realtime bool) *NullSink {
	return &NullSink{Realtime: realtime}
}

// Open records the stream format.
func (s *NullSink) Open(channels, sampleRate, blockFrames int) error {
	if channels < 1 || sampleRate < 1 || blockFrames < 1 {
		return fmt.Errorf("%w: %d ch, %d Hz, %d frames/block",
			dsperr.ErrInvalidConfiguration, channels, sampleRate, blockFrames)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.channels = channels
	s.rate = sampleRate
	return nil
}

// Start marks the sink as started.
func (s *NullSink) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return fmt.Errorf("%w: sink is not open", dsperr.ErrDeviceWrite)
	}
	s.started = true
	return nil
}

// Play counts and discards frames.
func (s *NullSink) Play(buf []float32, frames int) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return fmt.Errorf("%w: sink is not started", dsperr.ErrDeviceWrite)
	}
	n := frames * s.channels
	if n > len(buf) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d frames exceed buffer", dsperr.ErrNoBuffer, frames)
	}
	for _, v := range buf[:n] {
		s.peak = max(s.peak, abs32(v))
	}
	s.frames += int64(frames)
	s.blocks++
	rate := s.rate
	s.mu.Unlock()

	if s.Realtime {
		time.Sleep(time.Duration(frames) * time.Second / time.Duration(rate))
	}
	return nil
}

// Stop marks the sink as stopped.
func (s *NullSink) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	return nil
}

// Close marks the sink as closed.
func (s *NullSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.started = false
	return nil
}

// Frames returns the total number of frames played.
func (s *NullSink) Frames() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Blocks returns the number of Play calls that succeeded.
func (s *NullSink) Blocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocks
}

// Peak returns the largest magnitude played.
func (s *NullSink) Peak() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peak
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
