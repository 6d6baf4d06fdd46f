package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tphakala/go-audio-filterplayer/internal/console"
	"github.com/tphakala/go-audio-filterplayer/internal/device"
	"github.com/tphakala/go-audio-filterplayer/internal/meter"
	"github.com/tphakala/go-audio-filterplayer/internal/playback"
	"github.com/tphakala/go-audio-filterplayer/internal/resample"
	"github.com/tphakala/go-audio-filterplayer/internal/tui"
	"github.com/tphakala/go-audio-filterplayer/internal/wavio"
)

// PlayCmd plays a file on the audio device.
type PlayCmd struct {
	File string `arg:"" type:"existingfile" help:"WAV file to play"`

	FilterFlags  `embed:""`
	MeterFlags   `embed:""`
	SessionFlags `embed:""`

	Output       string `enum:"oto,null" default:"oto" help:"Output device (oto, null)"`
	DeviceRate   int    `name:"device-rate" help:"Resample to this device rate in Hz"`
	Interp       string `enum:"cubic,linear" default:"cubic" help:"Resampling interpolation (cubic, linear)"`
	BufferBlocks int    `name:"buffer-blocks" default:"2" help:"Device buffer size in blocks"`
	TUI          bool   `name:"tui" help:"Full-screen terminal interface"`
	Plain        bool   `help:"Print the meter as 1/0 digits"`
}

// Run plays the file until it ends or the user quits
func (c *PlayCmd) Run(g *Globals) error {
	src, err := wavio.Open(c.File)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()
	info := src.Info()

	flt, err := c.FilterFlags.build(info.SampleRate, info.Channels)
	if err != nil {
		return err
	}
	meterCfg, err := c.MeterFlags.config()
	if err != nil {
		return err
	}
	cfg, err := c.SessionFlags.config(g)
	if err != nil {
		return err
	}
	if c.TUI {
		// log output would tear the full-screen view
		cfg.Logger = nil
	}
	sink, err := c.sink()
	if err != nil {
		return err
	}

	sess, err := playback.New(cfg, src, sink)
	if err != nil {
		return err
	}
	if flt != nil {
		sess.SetFilter(flt)
	}
	g.logf("Playing %s: %s, %d ch, filter %s", c.File, formatRate(info.SampleRate), info.Channels, describeFilter(flt))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var stats playback.Stats
	if c.TUI {
		detail := fmt.Sprintf("%s, %d ch, %d-bit, %s", formatRate(info.SampleRate), info.Channels, info.BitDepth, info.Duration)
		stats, err = runTUI(ctx, sess, meterCfg, c.File, detail, describeFilter(flt))
	} else {
		stats, err = c.runConsole(ctx, g, sess, meterCfg)
		printStats(g.Stdout, stats)
	}
	if isQuit(err) {
		return nil
	}
	return err
}

// sink builds the output chain
func (c *PlayCmd) sink() (playback.OutputSink, error) {
	var sink playback.OutputSink
	switch c.Output {
	case outputNull:
		sink = device.NewNullSink(true)
	case outputOto:
		oto := device.NewOtoSink()
		oto.BufferBlocks = c.BufferBlocks
		sink = oto
	default:
		return nil, fmt.Errorf("unknown output %q", c.Output)
	}

	if c.DeviceRate <= 0 {
		return sink, nil
	}
	method := resample.Cubic
	if c.Interp == "linear" {
		method = resample.Linear
	}
	return resample.NewRateSink(sink, c.DeviceRate, method)
}

// runConsole plays with raw key input and a one-line meter
func (c *PlayCmd) runConsole(ctx context.Context, g *Globals, sess *playback.Session, meterCfg meter.Config) (playback.Stats, error) {
	bar := console.NewBar(g.Stdout, c.Plain)
	m, err := meter.New(meterCfg, bar)
	if err != nil {
		return playback.Stats{}, err
	}
	sess.SetMeter(m)
	sess.SetObserver(barObserver{bar: bar})

	if c.AutoStart {
		fmt.Fprintln(g.Stdout, "Enter or space pauses, q quits")
	} else {
		fmt.Fprintln(g.Stdout, "Enter or space starts and pauses, q quits")
	}

	keys, err := console.NewKeyToggle(os.Stdin)
	if err != nil {
		return playback.Stats{}, err
	}
	defer func() { _ = keys.Close() }()
	sess.SetToggle(keys)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-keys.Quit():
			cancel()
		case <-ctx.Done():
		}
	}()

	stats, err := sess.Run(ctx)
	_ = keys.Close()
	fmt.Fprintln(g.Stdout)
	return stats, err
}

// runTUI plays under the bubbletea interface
func runTUI(ctx context.Context, sess *playback.Session, meterCfg meter.Config, file, detail, filterLabel string) (playback.Stats, error) {
	bridge := tui.NewBridge()
	m, err := meter.New(meterCfg, bridge)
	if err != nil {
		return playback.Stats{}, err
	}
	sess.SetMeter(m)
	sess.SetToggle(bridge)
	sess.SetObserver(bridge)

	p := tea.NewProgram(tui.NewModel(file, detail, filterLabel, bridge))
	bridge.Attach(p)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		stats playback.Stats
		err   error
	}
	done := make(chan result, 1)
	go func() {
		stats, err := sess.Run(ctx)
		bridge.Done(stats, err)
		done <- result{stats, err}
	}()

	_, uiErr := p.Run()
	cancel()
	bridge.Close()
	res := <-done
	if uiErr != nil {
		return res.stats, fmt.Errorf("UI error: %w", uiErr)
	}
	return res.stats, res.err
}

// barObserver shows the session state in front of the meter
type barObserver struct {
	bar *console.Bar
}

func (o barObserver) StateChanged(s playback.State) {
	switch s {
	case playback.Idle:
		o.bar.SetPrefix("[ready]  ")
	case playback.Paused:
		o.bar.SetPrefix("[paused] ")
	case playback.Streaming:
		o.bar.SetPrefix("")
		return
	default:
		o.bar.SetPrefix("[done]   ")
	}
	_ = o.bar.WriteBarPattern(0)
}

func isQuit(err error) bool {
	return errors.Is(err, console.ErrQuit) || errors.Is(err, context.Canceled)
}

func printStats(w io.Writer, s playback.Stats) {
	printKV(w, "Blocks", fmt.Sprintf("%d played, %d skipped", s.BlocksEmitted, s.BlocksSkipped))
	printKV(w, "Frames", s.FramesEmitted)
	printKV(w, "Toggles", s.Toggles)
	if s.MeterErrors > 0 {
		printKV(w, "Meter errors", s.MeterErrors)
	}
}
