package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/tphakala/go-audio-filterplayer/internal/meter"
)

// Bar segment zones, counted from the lowest bar.
const (
	greenBars  = 10
	yellowBars = 14
)

var (
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00C853"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD600"))
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D50000"))
	offStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

const (
	litGlyph = "█"
	offGlyph = "·"
)

// Bar is a meter.Visualizer that redraws one line on w for each pattern.
// In plain mode it prints the pattern as '1'/'0' digits in LED order; in
// styled mode it draws colored segments.
type Bar struct {
	mu     sync.Mutex
	w      io.Writer
	plain  bool
	prefix string
}

var _ meter.Visualizer = (*Bar)(nil)

// NewBar creates a bar display writing to w.
func NewBar(w io.Writer, plain bool) *Bar {
	return &Bar{w: w, plain: plain}
}

// SetPrefix sets text drawn before the bar, such as a paused marker.
func (b *Bar) SetPrefix(prefix string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prefix = prefix
}

// WriteBarPattern redraws the line.
func (b *Bar) WriteBarPattern(p meter.Pattern) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var line string
	if b.plain {
		line = p.String()
	} else {
		line = RenderBar(p)
	}
	_, err := fmt.Fprintf(b.w, "\r%s%s", b.prefix, line)
	return err
}

// RenderBar draws p as colored segments, lowest bar first.
func RenderBar(p meter.Pattern) string {
	var sb strings.Builder
	lit := p.Bars()
	for i := range meter.Segments {
		if i >= lit {
			sb.WriteString(offStyle.Render(offGlyph))
			continue
		}
		switch {
		case i < greenBars:
			sb.WriteString(greenStyle.Render(litGlyph))
		case i < yellowBars:
			sb.WriteString(yellowStyle.Render(litGlyph))
		default:
			sb.WriteString(redStyle.Render(litGlyph))
		}
	}
	return sb.String()
}
