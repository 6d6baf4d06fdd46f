package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tphakala/go-audio-filterplayer/internal/console"
	"github.com/tphakala/go-audio-filterplayer/internal/meter"
	"github.com/tphakala/go-audio-filterplayer/internal/playback"
)

// Sender delivers messages to a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge connects a playback session to the UI. The session polls it as its
// toggle and writes meter patterns and state changes to it; the model fires
// toggle events on key presses.
type Bridge struct {
	*console.Events

	mu     sync.Mutex
	sender Sender
}

var (
	_ playback.Toggle   = (*Bridge)(nil)
	_ playback.Waiter   = (*Bridge)(nil)
	_ playback.Observer = (*Bridge)(nil)
	_ meter.Visualizer  = (*Bridge)(nil)
)

// NewBridge creates a bridge with no program attached. Messages sent before
// Attach are dropped.
func NewBridge() *Bridge {
	return &Bridge{Events: console.NewEvents()}
}

// Attach sets the program receiving session messages.
func (b *Bridge) Attach(s Sender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sender = s
}

// WriteBarPattern forwards p to the UI.
func (b *Bridge) WriteBarPattern(p meter.Pattern) error {
	b.send(PatternMsg{Pattern: p})
	return nil
}

// StateChanged forwards s to the UI.
func (b *Bridge) StateChanged(s playback.State) {
	b.send(StateMsg{State: s})
}

// Done reports the session result to the UI.
func (b *Bridge) Done(stats playback.Stats, err error) {
	b.send(DoneMsg{Stats: stats, Err: err})
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.Lock()
	s := b.sender
	b.mu.Unlock()
	if s != nil {
		s.Send(msg)
	}
}
