// Package coeffile reads filter coefficient files.
//
// A file starts with a header line "type;order;info" followed by one group
// of three lines per supported sample rate:
//
//	lowpass;2;Butterworth 1 kHz
//	44100
//	0.00460,0.00920,0.00460
//	1,-1.79909,0.81751
//	48000
//	...
//
// Coefficients may be separated by commas, semicolons, tabs or spaces.
package coeffile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
	"github.com/tphakala/go-audio-filterplayer/internal/filter"
)

const (
	headerFields = 3

	// Each coefficient line can hold thousands of values.
	initialLineBuffer = 64 * 1024
	maxLineLength     = 1 << 20
)

// Set is the coefficient pair for one sample rate.
type Set struct {
	SampleRate int
	B          []float32
	A          []float32
}

// File is a parsed coefficient file.
type File struct {
	Path  string
	Type  string
	Order int
	Info  string
	Sets  []Set
}

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open filter file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cf, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cf.Path = path
	return cf, nil
}

// Parse reads a coefficient file from r. Every coefficient line must hold
// at least order+1 values.
func Parse(r io.Reader) (*File, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, initialLineBuffer), maxLineLength)
	lineNo := 0
	next := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			if line := strings.TrimSpace(sc.Text()); line != "" {
				return line, true
			}
		}
		return "", false
	}

	header, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: empty filter file", dsperr.ErrInvalidConfiguration)
	}
	parts := strings.SplitN(header, ";", headerFields)
	if len(parts) < headerFields-1 {
		return nil, fmt.Errorf("%w: line %d: header must be type;order;info",
			dsperr.ErrInvalidConfiguration, lineNo)
	}
	order, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || order < 1 {
		return nil, fmt.Errorf("%w: line %d: invalid order %q",
			dsperr.ErrInvalidConfiguration, lineNo, parts[1])
	}

	cf := &File{Type: strings.TrimSpace(parts[0]), Order: order}
	if len(parts) == headerFields {
		cf.Info = strings.TrimSpace(parts[2])
	}

	for {
		rateLine, ok := next()
		if !ok {
			break
		}
		rate, err := strconv.Atoi(rateLine)
		if err != nil || rate < 1 {
			return nil, fmt.Errorf("%w: line %d: invalid sample rate %q",
				dsperr.ErrInvalidConfiguration, lineNo, rateLine)
		}

		set := Set{SampleRate: rate}
		for _, dst := range []*[]float32{&set.B, &set.A} {
			line, ok := next()
			if !ok {
				return nil, fmt.Errorf("%w: %d Hz: missing coefficient line",
					dsperr.ErrInvalidConfiguration, rate)
			}
			values, err := parseValues(line)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", dsperr.ErrInvalidConfiguration, lineNo, err)
			}
			if len(values) < order+1 {
				return nil, fmt.Errorf("%w: line %d: %d coefficients for order %d",
					dsperr.ErrInvalidConfiguration, lineNo, len(values), order)
			}
			*dst = values
		}
		cf.Sets = append(cf.Sets, set)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return cf, nil
}

func parseValues(line string) ([]float32, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	values := make([]float32, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, fmt.Errorf("bad coefficient %q", f)
		}
		values = append(values, float32(v))
	}
	return values, nil
}

// Rates returns the sample rates the file has coefficients for, ascending.
func (f *File) Rates() []int {
	rates := make([]int, 0, len(f.Sets))
	for _, s := range f.Sets {
		rates = append(rates, s.SampleRate)
	}
	slices.Sort(rates)
	return slices.Compact(rates)
}

// For returns the coefficient set for sampleRate. The first matching group
// wins.
func (f *File) For(sampleRate int) (Set, error) {
	for _, s := range f.Sets {
		if s.SampleRate == sampleRate {
			return s, nil
		}
	}
	return Set{}, fmt.Errorf("%w: no coefficients for %d Hz (have %v)",
		dsperr.ErrInvalidConfiguration, sampleRate, f.Rates())
}

// Filter builds an IIR filter for a source with the given rate and channel
// count.
func (f *File) Filter(sampleRate, channels int) (*filter.Filter, error) {
	set, err := f.For(sampleRate)
	if err != nil {
		return nil, err
	}
	label := f.Path
	if label == "" {
		label = f.Type
	}
	return filter.NewIIRFilter(f.Order, channels, set.B, set.A, label)
}

// Coefficients returns the normalized coefficients for sampleRate.
func (f *File) Coefficients(sampleRate int) (filter.Coefficients, error) {
	set, err := f.For(sampleRate)
	if err != nil {
		return filter.Coefficients{}, err
	}
	return filter.NewCoefficients(f.Order, set.B, set.A)
}

