package playback

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// PauseMode selects what a paused session does with the source.
type PauseMode int

const (
	// PauseHold stops reading while paused. Playback resumes where it
	// stopped.
	PauseHold PauseMode = iota

	// PauseSkip keeps reading and discarding blocks while paused, one per
	// block duration, so the source advances in real time and playback
	// resumes further on.
	PauseSkip
)

// String returns the mode name used on the command line.
func (m PauseMode) String() string {
	switch m {
	case PauseHold:
		return "hold"
	case PauseSkip:
		return "skip"
	default:
		return fmt.Sprintf("PauseMode(%d)", int(m))
	}
}

// ParsePauseMode accepts "hold" or "skip".
func ParsePauseMode(s string) (PauseMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hold":
		return PauseHold, nil
	case "skip":
		return PauseSkip, nil
	default:
		return 0, fmt.Errorf("%w: unknown pause mode %q", dsperr.ErrInvalidConfiguration, s)
	}
}

// Config holds session configuration.
type Config struct {
	// FramesPerBlock is the block size. Zero selects SampleRate/8, an
	// eighth of a second per block.
	FramesPerBlock int

	// PauseMode selects source handling while paused.
	PauseMode PauseMode

	// IdleInterval is how long a paused session, or one waiting for its
	// start signal, sleeps between toggle polls. Zero polls continuously.
	IdleInterval time.Duration

	// AutoStart begins streaming without waiting for a toggle event.
	AutoStart bool

	// Logger receives session progress messages. nil disables logging.
	Logger *log.Logger
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		PauseMode:    PauseHold,
		IdleInterval: DefaultIdleInterval,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.FramesPerBlock < 0 {
		return fmt.Errorf("%w: frames per block must not be negative", dsperr.ErrInvalidConfiguration)
	}
	if c.PauseMode != PauseHold && c.PauseMode != PauseSkip {
		return fmt.Errorf("%w: unknown pause mode %v", dsperr.ErrInvalidConfiguration, c.PauseMode)
	}
	if c.IdleInterval < 0 {
		return fmt.Errorf("%w: idle interval must not be negative", dsperr.ErrInvalidConfiguration)
	}
	return nil
}

// BlockFrames resolves the block size for a source sample rate.
func (c Config) BlockFrames(sampleRate int) int {
	if c.FramesPerBlock > 0 {
		return c.FramesPerBlock
	}
	return max(sampleRate/blocksPerSecond, 1)
}
