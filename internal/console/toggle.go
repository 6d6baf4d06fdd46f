package console

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
)

// Events is an edge-triggered toggle fed by Fire. It implements the
// non-blocking Toggled poll and a blocking Wait for the first event.
type Events struct {
	pending atomic.Int64
	signal  chan struct{}
	quit    chan struct{}
	once    sync.Once
}

// NewEvents creates an empty event source.
func NewEvents() *Events {
	return &Events{
		signal: make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
}

// Fire records one toggle event.
func (e *Events) Fire() {
	e.pending.Add(1)
	select {
	case e.signal <- struct{}{}:
	default:
	}
}

// Close signals quit. It is safe to call more than once.
func (e *Events) Close() {
	e.once.Do(func() { close(e.quit) })
}

// Toggled reports and consumes one pending toggle event.
func (e *Events) Toggled() bool {
	for {
		n := e.pending.Load()
		if n == 0 {
			return false
		}
		if e.pending.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

// Wait blocks until a toggle event arrives and consumes it. It returns
// ErrQuit if Close is called first.
func (e *Events) Wait(ctx context.Context) error {
	for {
		if e.Toggled() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quit:
			if e.Toggled() {
				return nil
			}
			return ErrQuit
		case <-e.signal:
		}
	}
}

// Quit is closed when the user quits.
func (e *Events) Quit() <-chan struct{} {
	return e.quit
}

// ReaderToggle turns bytes read from an io.Reader into toggle events.
// Enter and space toggle; q, Ctrl-C or end of input quits.
type ReaderToggle struct {
	*Events
}

// NewReaderToggle starts reading r in a goroutine. The goroutine exits when
// r returns an error or a quit key is read.
func NewReaderToggle(r io.Reader) *ReaderToggle {
	t := &ReaderToggle{Events: NewEvents()}
	go t.readLoop(r)
	return t
}

func (t *ReaderToggle) readLoop(r io.Reader) {
	defer t.Close()
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			switch buf[0] {
			case '\r', '\n', ' ':
				t.Fire()
			case 'q', 'Q', ctrlC:
				return
			}
		}
		if err != nil {
			return
		}
	}
}
