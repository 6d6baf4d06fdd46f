package wavio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// Info describes a WAV stream.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Duration   time.Duration
	Frames     int64
}

// Source reads a WAV stream as interleaved float32 frames in [-1, 1].
type Source struct {
	closer  io.Closer
	decoder *wav.Decoder
	info    Info
	ints    *audio.IntBuffer
}

// Open opens a WAV file. The caller must Close it.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	s, err := NewSource(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.closer = f
	return s, nil
}

// NewSource reads a WAV stream from rs.
func NewSource(rs io.ReadSeeker) (*Source, error) {
	decoder := wav.NewDecoder(rs)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV file", dsperr.ErrInvalidConfiguration)
	}
	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("failed to locate audio data: %w", err)
	}

	format := decoder.Format()
	info := Info{
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
		BitDepth:   int(decoder.BitDepth),
	}
	if info.Channels < 1 || info.SampleRate < 1 {
		return nil, fmt.Errorf("%w: WAV reports %d channels at %d Hz",
			dsperr.ErrInvalidConfiguration, info.Channels, info.SampleRate)
	}
	if decoder.PCMChunk != nil {
		frameBytes := int64(info.Channels * info.BitDepth / 8)
		if frameBytes > 0 {
			info.Frames = int64(decoder.PCMChunk.Size) / frameBytes
			info.Duration = time.Duration(info.Frames) * time.Second / time.Duration(info.SampleRate)
		}
	}

	return &Source{
		decoder: decoder,
		info:    info,
		ints:    &audio.IntBuffer{Format: format, SourceBitDepth: info.BitDepth},
	}, nil
}

// Info returns the stream format.
func (s *Source) Info() Info {
	return s.info
}

// Channels returns the channel count.
func (s *Source) Channels() int {
	return s.info.Channels
}

// SampleRate returns the sample rate in Hz.
func (s *Source) SampleRate() int {
	return s.info.SampleRate
}

// Read decodes up to frames frames into buf. It returns io.EOF with the
// final, possibly empty, short read.
func (s *Source) Read(buf []float32, frames int) (int, error) {
	want := frames * s.info.Channels
	if len(buf) < want {
		return 0, fmt.Errorf("%w: need %d samples, got %d", dsperr.ErrNoBuffer, want, len(buf))
	}
	if cap(s.ints.Data) < want {
		s.ints.Data = make([]int, want)
	}
	s.ints.Data = s.ints.Data[:want]

	total := 0
	for total < want {
		chunk := &audio.IntBuffer{Format: s.ints.Format, Data: s.ints.Data[total:want]}
		n, err := s.decoder.PCMBuffer(chunk)
		total += n
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, fmt.Errorf("failed to read audio data: %w", err)
		}
		if n == 0 || err != nil {
			break
		}
	}

	// drop a trailing partial frame
	got := total / s.info.Channels
	intsToFloats(buf[:got*s.info.Channels], s.ints.Data[:got*s.info.Channels], s.info.BitDepth)
	if got < frames {
		return got, io.EOF
	}
	return got, nil
}

// Rewind seeks back to the first frame.
func (s *Source) Rewind() error {
	if err := s.decoder.Rewind(); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	return nil
}

// Close closes the underlying file if the source opened it.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// ReadInfo returns the format of a WAV file without keeping it open.
func ReadInfo(path string) (Info, error) {
	s, err := Open(path)
	if err != nil {
		return Info{}, err
	}
	defer func() { _ = s.Close() }()
	return s.Info(), nil
}
