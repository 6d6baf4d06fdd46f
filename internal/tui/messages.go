package tui

import (
	"github.com/tphakala/go-audio-filterplayer/internal/meter"
	"github.com/tphakala/go-audio-filterplayer/internal/playback"
)

// PatternMsg carries a new meter pattern
type PatternMsg struct {
	Pattern meter.Pattern
}

// StateMsg reports a session state change
type StateMsg struct {
	State playback.State
}

// DoneMsg indicates the session has finished
type DoneMsg struct {
	Stats playback.Stats
	Err   error
}
