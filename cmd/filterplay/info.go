package main

import (
	"fmt"

	"github.com/tphakala/go-audio-filterplayer/internal/playback"
	"github.com/tphakala/go-audio-filterplayer/internal/wavio"
	"github.com/tphakala/simd/cpu"
)

// InfoCmd prints file metadata.
type InfoCmd struct {
	File string `arg:"" type:"existingfile" help:"WAV file"`
}

// Run prints the WAV header fields, the default block size and SIMD support
func (c *InfoCmd) Run(g *Globals) error {
	info, err := wavio.ReadInfo(c.File)
	if err != nil {
		return err
	}

	w := g.Stdout
	printKV(w, "File", c.File)
	printKV(w, "Sample rate", formatRate(info.SampleRate))
	printKV(w, "Channels", info.Channels)
	printKV(w, "Bit depth", info.BitDepth)
	printKV(w, "Frames", info.Frames)
	printKV(w, "Duration", info.Duration)
	printKV(w, "Block", fmt.Sprintf("%d frames", playback.DefaultConfig().BlockFrames(info.SampleRate)))
	printKV(w, "SIMD", cpu.Info())
	return nil
}
