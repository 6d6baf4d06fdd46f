package tui

import (
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-filterplayer/internal/meter"
	"github.com/tphakala/go-audio-filterplayer/internal/playback"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestBridge_ForwardsMessages(t *testing.T) {
	b := NewBridge()

	// Dropped while detached.
	require.NoError(t, b.WriteBarPattern(0xF000))

	rec := &recordingSender{}
	b.Attach(rec)
	require.NoError(t, b.WriteBarPattern(0xFF00))
	b.StateChanged(playback.Paused)
	b.Done(playback.Stats{BlocksEmitted: 3}, nil)

	require.Len(t, rec.msgs, 3)
	assert.Equal(t, PatternMsg{Pattern: 0xFF00}, rec.msgs[0])
	assert.Equal(t, StateMsg{State: playback.Paused}, rec.msgs[1])
	assert.Equal(t, DoneMsg{Stats: playback.Stats{BlocksEmitted: 3}}, rec.msgs[2])
}

func TestModel_KeysFireToggles(t *testing.T) {
	b := NewBridge()
	m := NewModel("song.wav", "44100 Hz, 2 ch", "lowpass", b)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Nil(t, cmd)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.Toggles)

	assert.True(t, b.Toggled())
	assert.True(t, b.Toggled())
	assert.False(t, b.Toggled())
}

func TestModel_QuitClosesBridge(t *testing.T) {
	b := NewBridge()
	m := NewModel("song.wav", "", "", b)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	select {
	case <-b.Quit():
	default:
		t.Fatal("bridge not closed")
	}
}

func TestModel_SessionMessages(t *testing.T) {
	m := NewModel("song.wav", "", "", NewBridge())
	assert.Equal(t, playback.Idle, m.State)
	assert.Contains(t, m.View(), "space: start")

	m, _ = update(t, m, StateMsg{State: playback.Streaming})
	m, _ = update(t, m, PatternMsg{Pattern: meter.Pattern(0xFFF0)})
	assert.Equal(t, 12, m.Pattern.Bars())
	assert.Contains(t, m.View(), "playing")

	m, _ = update(t, m, StateMsg{State: playback.Paused})
	assert.Zero(t, m.Pattern, "pattern clears when not streaming")
	assert.Contains(t, m.View(), "space: resume")

	m, cmd := update(t, m, DoneMsg{Stats: playback.Stats{BlocksEmitted: 7, BlocksSkipped: 3}, Err: errors.New("unplugged")})
	require.NotNil(t, cmd)
	assert.True(t, m.Done)
	view := m.View()
	assert.Contains(t, view, "7 blocks played, 3 skipped")
	assert.Contains(t, view, "unplugged")
}

func TestModel_IgnoresTogglesAfterDone(t *testing.T) {
	b := NewBridge()
	m := NewModel("song.wav", "", "", b)
	m, _ = update(t, m, DoneMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Zero(t, m.Toggles)
	assert.False(t, b.Toggled())
}
