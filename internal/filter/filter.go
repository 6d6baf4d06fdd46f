package filter

import (
	"fmt"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// Kind identifies the filter variant held by a Filter.
type Kind int

const (
	// KindIIR is a direct form II transposed IIR filter.
	KindIIR Kind = iota

	// KindDelay is a feedforward/feedback comb delay.
	KindDelay
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIIR:
		return "iir"
	case KindDelay:
		return "delay"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Filter is a tagged variant over the supported filter kinds. Exactly one of
// the kind-specific engines is set; ApplyBlock dispatches on the tag.
type Filter struct {
	kind  Kind
	iir   *IIR
	delay *Delay
	label string
}

// NewIIRFilter builds an IIR filter variant. label is a free-form origin
// description such as the coefficient file path.
func NewIIRFilter(order, channels int, b, a []float32, label string) (*Filter, error) {
	iir, err := NewIIR(order, channels, b, a)
	if err != nil {
		return nil, err
	}
	return &Filter{kind: KindIIR, iir: iir, label: label}, nil
}

// NewDelayFilter builds a delay filter variant.
func NewDelayFilter(p DelayParams) (*Filter, error) {
	d, err := NewDelay(p)
	if err != nil {
		return nil, err
	}
	label := fmt.Sprintf("delay %d ms, gFF=%g, gFB=%g", p.DelayMs, p.GainFF, p.GainFB)
	return &Filter{kind: KindDelay, delay: d, label: label}, nil
}

// FromIIR wraps an existing IIR engine.
func FromIIR(iir *IIR, label string) (*Filter, error) {
	if iir == nil {
		return nil, fmt.Errorf("%w: nil IIR engine", dsperr.ErrInvalidConfiguration)
	}
	return &Filter{kind: KindIIR, iir: iir, label: label}, nil
}

// FromDelay wraps an existing delay engine.
func FromDelay(d *Delay, label string) (*Filter, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil delay engine", dsperr.ErrInvalidConfiguration)
	}
	return &Filter{kind: KindDelay, delay: d, label: label}, nil
}

// ApplyBlock filters frames frames of interleaved audio from in into out.
func (f *Filter) ApplyBlock(in, out []float32, frames int) error {
	switch f.kind {
	case KindIIR:
		return f.iir.Process(in, out, frames)
	case KindDelay:
		return f.delay.Process(in, out, frames)
	default:
		return fmt.Errorf("%w: unknown filter kind %v", dsperr.ErrInvalidConfiguration, f.kind)
	}
}

// Reset clears the filter state of the active variant.
func (f *Filter) Reset() {
	switch f.kind {
	case KindIIR:
		f.iir.Reset()
	case KindDelay:
		f.delay.Reset()
	}
}

// Order returns the IIR order or the delay length in frames.
func (f *Filter) Order() int {
	switch f.kind {
	case KindIIR:
		return f.iir.Order()
	case KindDelay:
		return f.delay.Order()
	default:
		return 0
	}
}

// Channels returns the interleaved channel count the filter expects.
func (f *Filter) Channels() int {
	switch f.kind {
	case KindIIR:
		return f.iir.Channels()
	case KindDelay:
		return f.delay.Channels()
	default:
		return 0
	}
}

// Kind returns the variant tag.
func (f *Filter) Kind() Kind {
	return f.kind
}

// IIR returns the IIR engine and true if the variant is KindIIR.
func (f *Filter) IIR() (*IIR, bool) {
	return f.iir, f.kind == KindIIR
}

// Delay returns the delay engine and true if the variant is KindDelay.
func (f *Filter) Delay() (*Delay, bool) {
	return f.delay, f.kind == KindDelay
}

// Label returns the origin description given at construction.
func (f *Filter) Label() string {
	return f.label
}

// String describes the filter for logs and UI.
func (f *Filter) String() string {
	return fmt.Sprintf("%s order=%d channels=%d (%s)", f.kind, f.Order(), f.Channels(), f.label)
}
