package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tphakala/go-audio-filterplayer/internal/dsperr"
)

// State is the session lifecycle state.
type State int

const (
	// Idle means the sink is open and the session awaits its start signal.
	Idle State = iota

	// Streaming means blocks are being read and emitted.
	Streaming

	// Paused means the session is polling for the resume signal.
	Paused

	// Stopped means the sink has been closed and the source rewound.
	Stopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Streaming:
		return "streaming"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats summarizes a finished session.
type Stats struct {
	BlockFrames   int // frames per block
	BlocksRead    int // source reads, including short and discarded ones
	BlocksEmitted int // blocks written to the sink
	BlocksSkipped int // blocks read and discarded while paused (PauseSkip)
	FramesEmitted int64
	PausedPolls   int // paused iterations without a read (PauseHold)
	Toggles       int // pause/resume events after the start signal
	MeterErrors   int // meter writes that failed; these are not fatal
}

// Session plays one source through an optional filter and meter to a sink.
// A Session may be run again after it finishes; each Run starts from the
// rewound source with a reset filter.
type Session struct {
	cfg    Config
	source Source
	sink   OutputSink

	mu       sync.Mutex
	filter   Processor
	meter    BlockMeter
	toggle   Toggle
	observer Observer
	state    State

	running atomic.Bool
	sleep   func(ctx context.Context, d time.Duration) error
}

// New creates a session. A nil source fails with dsperr.ErrNoSource.
func New(cfg Config, src Source, sink OutputSink) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, dsperr.ErrNoSource
	}
	if sink == nil {
		return nil, fmt.Errorf("%w: output sink is required", dsperr.ErrInvalidConfiguration)
	}
	return &Session{cfg: cfg, source: src, sink: sink, sleep: sleepContext}, nil
}

// SetFilter attaches a filter. nil plays the source unfiltered.
func (s *Session) SetFilter(p Processor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = p
}

// SetMeter attaches a meter. nil disables visualization.
func (s *Session) SetMeter(m BlockMeter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meter = m
}

// SetToggle attaches the user signal. Without one the session starts
// immediately and never pauses.
func (s *Session) SetToggle(t Toggle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggle = t
}

// SetObserver attaches a state change observer.
func (s *Session) SetObserver(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = o
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	obs := s.observer
	s.mu.Unlock()

	if obs != nil {
		obs.StateChanged(st)
	}
}

func (s *Session) logf(format string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Printf(format, args...)
	}
}

// stages are the optional collaborators captured when a run starts.
type stages struct {
	filter Processor
	meter  BlockMeter
	toggle Toggle
}

// run holds the per-invocation state of a session.
type run struct {
	*Session
	stages stages
	stats  Stats
}

// Run plays the source until it is exhausted, a fatal error occurs or ctx
// is cancelled. Run opens the sink, waits for the start signal, streams,
// and always finishes by stopping and closing the sink and rewinding the
// source. A sink write failure is returned wrapped in dsperr.ErrDeviceWrite.
func (s *Session) Run(ctx context.Context) (Stats, error) {
	if !s.running.CompareAndSwap(false, true) {
		return Stats{}, dsperr.ErrSessionActive
	}
	defer s.running.Store(false)

	s.mu.Lock()
	st := stages{filter: s.filter, meter: s.meter, toggle: s.toggle}
	s.mu.Unlock()

	r := &run{Session: s, stages: st}
	err := r.play(ctx)
	return r.stats, err
}

func (r *run) play(ctx context.Context) error {
	channels := r.source.Channels()
	rate := r.source.SampleRate()
	if channels < 1 || rate < 1 {
		return fmt.Errorf("%w: source reports %d channels at %d Hz",
			dsperr.ErrInvalidConfiguration, channels, rate)
	}
	if f := r.stages.filter; f != nil && f.Channels() != channels {
		return fmt.Errorf("%w: filter has %d channels, source has %d",
			dsperr.ErrInvalidConfiguration, f.Channels(), channels)
	}
	frames := r.cfg.BlockFrames(rate)
	r.stats.BlockFrames = frames

	if err := r.sink.Open(channels, rate, frames); err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	r.setState(Idle)
	r.logf("session: opened output %d ch, %d Hz, %d frames/block", channels, rate, frames)

	if err := r.awaitStart(ctx); err != nil {
		return r.abort(err, false)
	}
	if err := r.sink.Start(); err != nil {
		return r.abort(fmt.Errorf("start output: %w", err), false)
	}
	if r.stages.filter != nil {
		r.stages.filter.Reset()
	}
	r.setState(Streaming)
	r.logf("session: streaming")

	if i, ok := r.sink.(Interrupter); ok {
		stop := context.AfterFunc(ctx, i.Interrupt)
		defer stop()
	}
	if err := r.stream(ctx, channels, frames, rate); err != nil {
		return r.abort(err, true)
	}
	return r.finish()
}

// awaitStart blocks until the start signal. Without a toggle, or with
// AutoStart, it returns immediately.
func (r *run) awaitStart(ctx context.Context) error {
	t := r.stages.toggle
	if r.cfg.AutoStart || t == nil {
		return nil
	}
	if w, ok := t.(Waiter); ok {
		return w.Wait(ctx)
	}
	for !t.Toggled() {
		if err := r.idle(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) stream(ctx context.Context, channels, frames, rate int) error {
	// skipped blocks still take their playing time
	blockTime := time.Duration(frames) * time.Second / time.Duration(rate)

	in := make([]float32, frames*channels)
	out := in
	if r.stages.filter != nil {
		out = make([]float32, len(in))
	}

	emitting := true
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if emitting || r.cfg.PauseMode == PauseSkip {
			n, err := r.source.Read(in, frames)
			r.stats.BlocksRead++
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read source: %w", err)
			}
			n = min(max(n, 0), frames)

			switch {
			case !emitting:
				r.stats.BlocksSkipped++
			case n > 0:
				if err := r.emit(in, out, n, channels, frames); err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					return err
				}
			}

			if n < frames || errors.Is(err, io.EOF) {
				r.logf("session: source exhausted after %d blocks", r.stats.BlocksRead)
				return nil
			}
			if !emitting {
				if err := r.sleep(ctx, blockTime); err != nil {
					return err
				}
			}
		} else {
			r.stats.PausedPolls++
			if err := r.idle(ctx); err != nil {
				return err
			}
		}

		if r.stages.toggle != nil && r.stages.toggle.Toggled() {
			emitting = !emitting
			r.stats.Toggles++
			if emitting {
				r.setState(Streaming)
				r.logf("session: resumed")
			} else {
				r.setState(Paused)
				r.logf("session: paused")
			}
		}
	}
}

// emit filters, meters and plays the first n frames of a block. A partial
// block has its tail zeroed so the filter always sees a full block.
func (r *run) emit(in, out []float32, n, channels, frames int) error {
	if n < frames {
		clear(in[n*channels:])
	}

	buf := in
	if r.stages.filter != nil {
		if err := r.stages.filter.ApplyBlock(in, out, frames); err != nil {
			return fmt.Errorf("filter block: %w", err)
		}
		buf = out
	}
	block := buf[:n*channels]

	if r.stages.meter != nil {
		if err := r.stages.meter.WriteBlock(block); err != nil {
			r.stats.MeterErrors++
			if r.stats.MeterErrors == 1 {
				r.logf("session: meter write failed: %v", err)
			}
		}
	}

	if err := r.sink.Play(block, n); err != nil {
		return fmt.Errorf("%w: %w", dsperr.ErrDeviceWrite, err)
	}
	r.stats.BlocksEmitted++
	r.stats.FramesEmitted += int64(n)
	return nil
}

// idle waits one poll interval or until ctx is done.
func (r *run) idle(ctx context.Context) error {
	if r.cfg.IdleInterval <= 0 {
		return ctx.Err()
	}
	return r.sleep(ctx, r.cfg.IdleInterval)
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// finish ends a session that ran to completion.
func (r *run) finish() error {
	err := errors.Join(r.sink.Stop(), r.sink.Close(), r.rewind())
	r.setState(Stopped)
	r.logf("session: stopped after %d blocks (%d frames)", r.stats.BlocksEmitted, r.stats.FramesEmitted)
	return err
}

// abort ends a session on a fatal error. Cleanup is best effort; its
// failures are logged and cause is returned.
func (r *run) abort(cause error, started bool) error {
	if started {
		if err := r.sink.Stop(); err != nil {
			r.logf("session: stop output: %v", err)
		}
	}
	if err := r.sink.Close(); err != nil {
		r.logf("session: close output: %v", err)
	}
	if err := r.rewind(); err != nil {
		r.logf("session: rewind source: %v", err)
	}
	r.setState(Stopped)
	r.logf("session: aborted: %v", cause)
	return cause
}

func (r *run) rewind() error {
	if err := r.source.Rewind(); err != nil {
		return fmt.Errorf("rewind source: %w", err)
	}
	return nil
}
