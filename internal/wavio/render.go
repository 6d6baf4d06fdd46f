package wavio

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// RenderSink is an output sink that encodes everything played into a PCM
// WAV file. The file is created on Open and finalized on Close.
type RenderSink struct {
	path     string
	ws       io.WriteSeeker
	bitDepth int

	file     *os.File
	encoder  *wav.Encoder
	channels int
	buf      *audio.IntBuffer
	frames   int64
}

// NewRenderFile creates a sink writing to path at the given bit depth
// (16, 24 or 32; zero selects DefaultBitDepth).
func NewRenderFile(path string, bitDepth int) (*RenderSink, error) {
	bd, err := checkBitDepth(bitDepth)
	if err != nil {
		return nil, err
	}
	return &RenderSink{path: path, bitDepth: bd}, nil
}

// NewRenderSink creates a sink writing to ws.
func NewRenderSink(ws io.WriteSeeker, bitDepth int) (*RenderSink, error) {
	bd, err := checkBitDepth(bitDepth)
	if err != nil {
		return nil, err
	}
	return &RenderSink{ws: ws, bitDepth: bd}, nil
}

func checkBitDepth(bitDepth int) (int, error) {
	switch bitDepth {
	case 0:
		return DefaultBitDepth, nil
	case bitsPerSample16, bitsPerSample24, bitsPerSample32:
		return bitDepth, nil
	default:
		return 0, fmt.Errorf("%w: unsupported bit depth %d", dsperr.ErrInvalidConfiguration, bitDepth)
	}
}

// RenderBitDepth returns sourceBits if RenderSink can write it, else
// DefaultBitDepth.
func RenderBitDepth(sourceBits int) int {
	if bd, err := checkBitDepth(sourceBits); err == nil {
		return bd
	}
	return DefaultBitDepth
}

// Open creates the output file and writes the WAV header.
func (s *RenderSink) Open(channels, sampleRate, blockFrames int) error {
	if channels < 1 || sampleRate < 1 {
		return fmt.Errorf("%w: %d ch, %d Hz", dsperr.ErrInvalidConfiguration, channels, sampleRate)
	}

	ws := s.ws
	if s.path != "" {
		f, err := os.Create(s.path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		s.file = f
		ws = f
	}

	s.channels = channels
	s.frames = 0
	s.encoder = wav.NewEncoder(ws, sampleRate, s.bitDepth, channels, pcmFormat)
	s.buf = &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           make([]int, blockFrames*channels),
		SourceBitDepth: s.bitDepth,
	}
	return nil
}

// Start is a no-op; rendering has no device to start.
func (s *RenderSink) Start() error {
	return nil
}

// Play encodes frames frames from buf.
func (s *RenderSink) Play(buf []float32, frames int) error {
	if s.encoder == nil {
		return fmt.Errorf("%w: render sink is not open", dsperr.ErrDeviceWrite)
	}
	n := frames * s.channels
	if n > len(buf) {
		return fmt.Errorf("%w: %d frames exceed buffer", dsperr.ErrNoBuffer, frames)
	}
	if cap(s.buf.Data) < n {
		s.buf.Data = make([]int, n)
	}
	s.buf.Data = s.buf.Data[:n]

	floatsToInts(s.buf.Data, buf[:n], s.bitDepth)
	if err := s.encoder.Write(s.buf); err != nil {
		return fmt.Errorf("failed to write audio data: %w", err)
	}
	s.frames += int64(frames)
	return nil
}

// Stop is a no-op.
func (s *RenderSink) Stop() error {
	return nil
}

// Close finalizes the WAV header and closes the file if the sink created it.
func (s *RenderSink) Close() error {
	if s.encoder == nil {
		return nil
	}
	err := s.encoder.Close()
	s.encoder = nil
	if s.file != nil {
		if closeErr := s.file.Close(); err == nil {
			err = closeErr
		}
		s.file = nil
	}
	if err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return nil
}

// Frames returns the number of frames written since Open.
func (s *RenderSink) Frames() int64 {
	return s.frames
}
