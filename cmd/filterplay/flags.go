package main

import (
	"fmt"

	"github.com/tphakala/go-audio-filterplayer/internal/coeffile"
	"github.com/tphakala/go-audio-filterplayer/internal/filter"
	"github.com/tphakala/go-audio-filterplayer/internal/meter"
	"github.com/tphakala/go-audio-filterplayer/internal/playback"
)

// FilterFlags selects the filter applied to the source.
type FilterFlags struct {
	Filter  string  `short:"f" type:"existingfile" help:"Coefficient file" xor:"filter"`
	DelayMs int     `name:"delay-ms" help:"Comb delay in milliseconds instead of a coefficient file" xor:"filter"`
	GainFF  float32 `name:"gff" default:"0.5" help:"Comb delay feedforward gain"`
	GainFB  float32 `name:"gfb" default:"0.3" help:"Comb delay feedback gain, below 1"`
}

// build returns the selected filter for the source format, or nil when no
// filter was requested.
func (f FilterFlags) build(sampleRate, channels int) (*filter.Filter, error) {
	switch {
	case f.Filter != "":
		file, err := coeffile.Load(f.Filter)
		if err != nil {
			return nil, err
		}
		return file.Filter(sampleRate, channels)
	case f.DelayMs > 0:
		return filter.NewDelayFilter(filter.DelayParams{
			DelayMs:    f.DelayMs,
			SampleRate: sampleRate,
			GainFF:     f.GainFF,
			GainFB:     f.GainFB,
			Channels:   channels,
		})
	default:
		return nil, nil
	}
}

// MeterFlags configures the level meter.
type MeterFlags struct {
	Scale    string  `enum:"lin,log" default:"lin" help:"Meter scaling (lin, log)"`
	LogFloor float64 `name:"log-floor" default:"-30" help:"Lowest threshold in dB for log scaling"`
	InputMin float32 `name:"input-min" default:"-2" help:"Lower input bound"`
	InputMax float32 `name:"input-max" default:"2" help:"Upper input bound"`
}

func (m MeterFlags) config() (meter.Config, error) {
	mode, err := meter.ParseScalingMode(m.Scale)
	if err != nil {
		return meter.Config{}, err
	}
	cfg := meter.Config{
		Mode:       mode,
		InputMin:   m.InputMin,
		InputMax:   m.InputMax,
		LogFloorDB: m.LogFloor,
	}
	return cfg, cfg.Validate()
}

// SessionFlags configures block size and pausing.
type SessionFlags struct {
	Block     int    `help:"Frames per block (default: an eighth of a second)"`
	PauseMode string `name:"pause-mode" enum:"hold,skip" default:"hold" help:"Paused behaviour: hold position or skip ahead"`
	AutoStart bool   `name:"autostart" help:"Start without waiting for a key press"`
}

func (s SessionFlags) config(g *Globals) (playback.Config, error) {
	mode, err := playback.ParsePauseMode(s.PauseMode)
	if err != nil {
		return playback.Config{}, err
	}
	cfg := playback.DefaultConfig()
	cfg.FramesPerBlock = s.Block
	cfg.PauseMode = mode
	cfg.AutoStart = s.AutoStart
	cfg.Logger = g.Logger
	return cfg, cfg.Validate()
}

func describeFilter(f *filter.Filter) string {
	if f == nil {
		return "none"
	}
	return fmt.Sprintf("%s (%s, order %d)", f.Label(), f.Kind(), f.Order())
}
