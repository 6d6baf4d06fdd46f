// Package tui provides the Bubbletea terminal user interface for playback
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tphakala/go-audio-filterplayer/internal/meter"
	"github.com/tphakala/go-audio-filterplayer/internal/playback"
)

// Model is the Bubbletea model for the player UI
type Model struct {
	// Source description
	File   string
	Detail string
	Filter string

	// Session state
	State     playback.State
	Pattern   meter.Pattern
	Toggles   int
	StartTime time.Time

	// Completion results
	Done  bool
	Stats playback.Stats
	Err   error

	// Terminal dimensions
	Width  int
	Height int

	bridge *Bridge
}

// NewModel creates a model that fires toggle events on bridge
func NewModel(file, detail, filterLabel string, bridge *Bridge) Model {
	return Model{
		File:      file,
		Detail:    detail,
		Filter:    filterLabel,
		State:     playback.Idle,
		StartTime: time.Now(),
		bridge:    bridge,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "space", "enter":
			if !m.Done {
				m.Toggles++
				m.bridge.Fire()
			}
		case "q", "ctrl+c":
			m.bridge.Close()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case PatternMsg:
		m.Pattern = msg.Pattern

	case StateMsg:
		m.State = msg.State
		if msg.State != playback.Streaming {
			m.Pattern = 0
		}

	case DoneMsg:
		m.Done = true
		m.Stats = msg.Stats
		m.Err = msg.Err
		m.Pattern = 0
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderSummary(m)
	}
	return renderPlayerView(m)
}
