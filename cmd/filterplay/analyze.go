package main

import (
	"fmt"
	"strings"

	"github.com/tphakala/go-audio-filterplayer/internal/coeffile"
	"github.com/tphakala/go-audio-filterplayer/internal/filter"
)

// AnalyzeCmd prints the response of a coefficient file.
type AnalyzeCmd struct {
	File   string `arg:"" type:"existingfile" help:"Coefficient file"`
	Rate   int    `help:"Sample rate of the coefficient set (default: first in file)"`
	Points int    `default:"17" help:"Frequencies from DC to Nyquist"`
}

// Run prints the coefficient header, DC gain and frequency response
func (c *AnalyzeCmd) Run(g *Globals) error {
	file, err := coeffile.Load(c.File)
	if err != nil {
		return err
	}

	rate := c.Rate
	if rate == 0 {
		rate = file.Rates()[0]
	}
	coeffs, err := file.Coefficients(rate)
	if err != nil {
		return err
	}

	rates := make([]string, 0, len(file.Sets))
	for _, r := range file.Rates() {
		rates = append(rates, fmt.Sprint(r))
	}

	w := g.Stdout
	fmt.Fprintln(w, TitleStyle.Render(c.File))
	printKV(w, "Type", file.Type)
	printKV(w, "Order", file.Order)
	if file.Info != "" {
		printKV(w, "Info", file.Info)
	}
	printKV(w, "Rates", strings.Join(rates, ", "))
	printKV(w, "Analyzed", formatRate(rate))

	dc, err := filter.DCGain(coeffs)
	if err != nil {
		printKV(w, "DC gain", err)
	} else {
		printKV(w, "DC gain", fmt.Sprintf("%.6f", dc))
	}

	// High orders need enough bins to hold every coefficient.
	points := max(c.Points, (coeffs.Order()+1)/2+2)
	resp, err := filter.Response(coeffs, points, float64(rate))
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %12s  %10s  %9s\n", "Frequency", "Magnitude", "Phase")
	for _, p := range resp {
		fmt.Fprintf(w, "  %9.1f Hz  %7.2f dB  %8.1f°\n", p.Frequency, p.MagnitudeDB, p.Phase*radiansToDegrees)
	}
	return nil
}
