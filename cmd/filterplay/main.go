// Command filterplay plays WAV files through an IIR or comb delay filter
// while drawing a 16-segment level meter.
//
// Usage:
//
//	filterplay play -f lowpass.txt music.wav          # Enter/space to start and pause
//	filterplay play --delay-ms 250 --tui music.wav    # comb delay, full-screen view
//	filterplay render -f lowpass.txt in.wav out.wav   # filter to a file
//	filterplay analyze --rate 44100 lowpass.txt       # frequency response
//	filterplay info music.wav
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/kong"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Verbose bool `short:"v" help:"Verbose output"`

	Play    PlayCmd    `cmd:"" help:"Play a WAV file through a filter"`
	Render  RenderCmd  `cmd:"" help:"Filter a WAV file into a new WAV file"`
	Analyze AnalyzeCmd `cmd:"" help:"Print the frequency response of a coefficient file"`
	Info    InfoCmd    `cmd:"" help:"Show WAV file and CPU information"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// Globals is passed to every command.
type Globals struct {
	Stdout io.Writer
	Logger *log.Logger
}

func (g *Globals) logf(format string, args ...any) {
	if g.Logger != nil {
		g.Logger.Printf(format, args...)
	}
}

func newGlobals(verbose bool, stdout, stderr io.Writer) *Globals {
	g := &Globals{Stdout: stdout}
	if verbose {
		g.Logger = log.New(stderr, "", log.LstdFlags)
	}
	return g
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("filterplay"),
		kong.Description("Filtered WAV player with a 16-segment level meter"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
	)

	if err := ctx.Run(newGlobals(cliArgs.Verbose, os.Stdout, os.Stderr)); err != nil {
		PrintError(err.Error())
		os.Exit(1)
	}
}

// VersionCmd prints the version.
type VersionCmd struct{}

// Run prints version information
func (c *VersionCmd) Run(g *Globals) error {
	PrintVersion(g.Stdout, version)
	return nil
}

func formatRate(hz int) string {
	return fmt.Sprintf("%d Hz", hz)
}
