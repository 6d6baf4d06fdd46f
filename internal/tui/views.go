package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tphakala/go-audio-filterplayer/internal/console"
	"github.com/tphakala/go-audio-filterplayer/internal/playback"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00C853"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A40000")).
			Bold(true)
)

// renderPlayerView renders the header, state line and meter
func renderPlayerView(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(filepath.Base(m.File)))
	b.WriteString("\n")
	if m.Detail != "" {
		b.WriteString(detailStyle.Render(m.Detail))
		b.WriteString("\n")
	}
	if m.Filter != "" {
		b.WriteString(detailStyle.Render("filter: " + m.Filter))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(renderState(m.State))
	b.WriteString("  ")
	b.WriteString(console.RenderBar(m.Pattern))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render(renderHelp(m.State)))
	b.WriteString("\n")

	return b.String()
}

// renderState renders the session state with a status icon
func renderState(s playback.State) string {
	switch s {
	case playback.Streaming:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("▶ playing")
	case playback.Paused:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("⏸ paused ")
	case playback.Stopped:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("■ stopped")
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("· ready  ")
	}
}

func renderHelp(s playback.State) string {
	switch s {
	case playback.Idle:
		return "space: start  q: quit"
	case playback.Paused:
		return "space: resume  q: quit"
	default:
		return "space: pause  q: quit"
	}
}

// renderSummary renders the final statistics
func renderSummary(m Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(filepath.Base(m.File)))
	b.WriteString("\n")
	if m.Err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", m.Err)))
		b.WriteString("\n")
	}

	elapsed := time.Since(m.StartTime).Round(time.Second)
	fmt.Fprintf(&b, "%d blocks played, %d skipped, %d toggles in %s\n",
		m.Stats.BlocksEmitted, m.Stats.BlocksSkipped, m.Stats.Toggles, elapsed)

	return b.String()
}
