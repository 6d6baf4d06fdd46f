//go:build !headless

package device

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
	"github.com/tphakala/go-audio-filterplayer/internal/pipeline"
)

const bytesPerSample = 4

// oto allows a single context per process, fixed to the first format used.
var (
	sharedMu       sync.Mutex
	sharedCtx      *oto.Context
	sharedRate     int
	sharedChannels int
)

func otoContext(sampleRate, channels int) (*oto.Context, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedCtx != nil {
		if sampleRate != sharedRate || channels != sharedChannels {
			return nil, fmt.Errorf("%w: audio device already running at %d Hz, %d ch",
				dsperr.ErrInvalidConfiguration, sharedRate, sharedChannels)
		}
		return sharedCtx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	sharedCtx = ctx
	sharedRate = sampleRate
	sharedChannels = channels
	return ctx, nil
}

// OtoSink plays through the system audio device. Play pushes samples into
// a ring that the device pulls from, blocking while the ring is full, so the
// caller is paced by the hardware.
type OtoSink struct {
	// BufferBlocks is the ring size in blocks. Zero uses DefaultBufferBlocks.
	BufferBlocks int

	// DrainTimeout bounds how long Stop waits for buffered audio to play.
	// Zero uses DefaultDrainTimeout.
	DrainTimeout time.Duration

	mu       sync.Mutex
	ring     *pipeline.Ring
	player   *oto.Player
	channels int
}

// NewOtoSink creates a sink for the system audio device.
func NewOtoSink() *OtoSink {
	return &OtoSink{}
}

// Open creates the player. The first Open in a process fixes the device
// sample rate and channel count.
func (s *OtoSink) Open(channels, sampleRate, blockFrames int) error {
	if channels < 1 || sampleRate < 1 || blockFrames < 1 {
		return fmt.Errorf("%w: %d ch, %d Hz, %d frames/block",
			dsperr.ErrInvalidConfiguration, channels, sampleRate, blockFrames)
	}

	ctx, err := otoContext(sampleRate, channels)
	if err != nil {
		return err
	}

	blocks := s.BufferBlocks
	if blocks <= 0 {
		blocks = DefaultBufferBlocks
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = channels
	if size := blocks * blockFrames * channels; s.ring != nil && s.ring.Capacity() == size {
		s.ring.Reopen()
	} else {
		s.ring = pipeline.NewRing(size)
	}
	s.player = ctx.NewPlayer(&ringReader{ring: s.ring})
	return nil
}

// Start begins pulling audio.
func (s *OtoSink) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return fmt.Errorf("%w: sink is not open", dsperr.ErrDeviceWrite)
	}
	s.player.Play()
	return nil
}

// Play queues frames for output.
func (s *OtoSink) Play(buf []float32, frames int) error {
	s.mu.Lock()
	ring, channels, open := s.ring, s.channels, s.player != nil
	s.mu.Unlock()

	if !open {
		return fmt.Errorf("%w: sink is not open", dsperr.ErrDeviceWrite)
	}
	n := frames * channels
	if n > len(buf) {
		return fmt.Errorf("%w: %d frames exceed buffer", dsperr.ErrNoBuffer, frames)
	}
	return ring.Write(context.Background(), buf[:n])
}

// Interrupt discards queued audio and makes a blocked or later Play fail
// until the next Open.
func (s *OtoSink) Interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ring == nil {
		return
	}
	s.ring.Close()
	s.ring.Clear()
}

// Stop waits for queued audio to play out, then pauses the player.
func (s *OtoSink) Stop() error {
	s.mu.Lock()
	ring, player := s.ring, s.player
	s.mu.Unlock()
	if player == nil {
		return nil
	}

	timeout := s.DrainTimeout
	if timeout <= 0 {
		timeout = DefaultDrainTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	// a timed out drain only cuts the tail short
	_ = ring.Drain(ctx)

	player.Pause()
	return nil
}

// Close releases the player. The shared device context stays open and the
// ring is reused by the next Open of the same size.
func (s *OtoSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return nil
	}

	s.ring.Close()
	err := s.player.Close()
	s.player = nil
	return err
}

// ringReader adapts a Ring to the io.Reader oto pulls float32 LE bytes
// from. Underruns are filled with silence.
type ringReader struct {
	ring    *pipeline.Ring
	scratch []float32
}

var _ io.Reader = (*ringReader)(nil)

func (r *ringReader) Read(p []byte) (int, error) {
	samples := len(p) / bytesPerSample
	if cap(r.scratch) < samples {
		r.scratch = make([]float32, samples)
	}
	buf := r.scratch[:samples]

	n := r.ring.Read(buf)
	clear(buf[n:])
	for i, v := range buf {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	return samples * bytesPerSample, nil
}
