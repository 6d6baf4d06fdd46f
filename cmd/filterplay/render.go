package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/tphakala/go-audio-filterplayer/internal/playback"
	"github.com/tphakala/go-audio-filterplayer/internal/wavio"
)

// RenderCmd filters a file to a new WAV file.
type RenderCmd struct {
	File string `arg:"" type:"existingfile" help:"WAV file to filter"`
	Out  string `arg:"" type:"path" help:"Output WAV file"`

	FilterFlags `embed:""`

	Block      int    `help:"Frames per block (default: an eighth of a second)"`
	BitDepth   int    `name:"bit-depth" help:"Output bit depth: 16, 24 or 32 (default: the source depth)"`
	CPUProfile string `name:"cpuprofile" type:"path" help:"Write CPU profile to file"`
}

// Run renders the file
func (c *RenderCmd) Run(g *Globals) error {
	if c.CPUProfile != "" {
		f, err := os.Create(c.CPUProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	stats, err := c.render(ctx, g)
	if err != nil {
		return err
	}

	printKV(g.Stdout, "Output", c.Out)
	printKV(g.Stdout, "Frames", stats.FramesEmitted)
	printKV(g.Stdout, "Blocks", stats.BlocksEmitted)
	printKV(g.Stdout, "Elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *RenderCmd) render(ctx context.Context, g *Globals) (playback.Stats, error) {
	src, err := wavio.Open(c.File)
	if err != nil {
		return playback.Stats{}, err
	}
	defer func() { _ = src.Close() }()
	info := src.Info()

	flt, err := c.FilterFlags.build(info.SampleRate, info.Channels)
	if err != nil {
		return playback.Stats{}, err
	}

	bitDepth := c.BitDepth
	if bitDepth == 0 {
		bitDepth = wavio.RenderBitDepth(info.BitDepth)
	}
	out, err := wavio.NewRenderFile(c.Out, bitDepth)
	if err != nil {
		return playback.Stats{}, err
	}

	cfg := playback.DefaultConfig()
	cfg.FramesPerBlock = c.Block
	cfg.AutoStart = true
	cfg.Logger = g.Logger

	sess, err := playback.New(cfg, src, &progressSink{
		OutputSink: out,
		tracker:    newProgressTracker(info.Frames, g),
	})
	if err != nil {
		return playback.Stats{}, err
	}
	if flt != nil {
		sess.SetFilter(flt)
	}
	g.logf("Rendering %s -> %s, filter %s", c.File, c.Out, describeFilter(flt))
	return sess.Run(ctx)
}

// progressSink reports render progress as frames are written.
type progressSink struct {
	playback.OutputSink
	tracker *progressTracker
	frames  int64
}

func (s *progressSink) Play(buf []float32, frames int) error {
	if err := s.OutputSink.Play(buf, frames); err != nil {
		return err
	}
	s.frames += int64(frames)
	s.tracker.reportIfNeeded(s.frames)
	return nil
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	g            *Globals
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalFrames int64, g *Globals) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		g:           g,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if p.g.Logger == nil || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		p.g.logf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}
