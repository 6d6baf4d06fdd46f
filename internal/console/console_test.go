package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-audio-filterplayer/internal/meter"
)

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestReaderToggle_CountsEvents(t *testing.T) {
	tg := NewReaderToggle(strings.NewReader(" \nx\r"))
	waitClosed(t, tg.Quit())

	assert.True(t, tg.Toggled())
	assert.True(t, tg.Toggled())
	assert.True(t, tg.Toggled())
	assert.False(t, tg.Toggled(), "other keys do not toggle")
}

func TestReaderToggle_QuitKey(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	tg := NewReaderToggle(pr)

	_, err := pw.Write([]byte("q"))
	require.NoError(t, err)
	waitClosed(t, tg.Quit())
	assert.False(t, tg.Toggled())
}

func TestReaderToggle_Wait(t *testing.T) {
	pr, pw := io.Pipe()
	tg := NewReaderToggle(pr)

	done := make(chan error, 1)
	go func() { done <- tg.Wait(context.Background()) }()

	_, err := pw.Write([]byte("\n"))
	require.NoError(t, err)
	require.NoError(t, <-done)
	assert.False(t, tg.Toggled(), "Wait consumes the start event")

	require.NoError(t, pw.Close())
	waitClosed(t, tg.Quit())
	require.ErrorIs(t, tg.Wait(context.Background()), ErrQuit)
}

func TestReaderToggle_WaitCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	tg := NewReaderToggle(pr)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, tg.Wait(ctx), context.Canceled)
}

func TestBar_Plain(t *testing.T) {
	m, err := meter.New(meter.DefaultConfig(), nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	bar := NewBar(&buf, true)
	m.Attach(bar)

	require.NoError(t, m.Write(0.3))
	assert.Equal(t, "\r1110000000000000", buf.String())

	buf.Reset()
	bar.SetPrefix("[paused] ")
	require.NoError(t, bar.WriteBarPattern(0xFFFF))
	assert.Equal(t, "\r[paused] 1111111111111111", buf.String())
}

func TestRenderBar_Segments(t *testing.T) {
	out := RenderBar(meter.Pattern(0xFFC0)) // 10 bars
	assert.Equal(t, 10, strings.Count(out, litGlyph))
	assert.Equal(t, 6, strings.Count(out, offGlyph))
}

func TestEvents_FireAndClose(t *testing.T) {
	e := NewEvents()
	assert.False(t, e.Toggled())

	e.Fire()
	e.Fire()
	require.NoError(t, e.Wait(context.Background()))
	assert.True(t, e.Toggled())
	assert.False(t, e.Toggled())

	e.Close()
	e.Close()
	waitClosed(t, e.Quit())
	require.ErrorIs(t, e.Wait(context.Background()), ErrQuit)
}
