package playback

import (
	"context"
	"errors"
	"sync"
)

// blockSource serves blocks whose samples all equal the 1-based block number.
type blockSource struct {
	channels int
	rate     int
	data     []float32
	cursor   int // in frames
	reads    int
	rewinds  int
	readErr  error
	failAt   int // 1-based read that returns readErr
}

func newBlockSource(channels, framesPerBlock int, blocks float64) *blockSource {
	total := int(blocks * float64(framesPerBlock))
	data := make([]float32, total*channels)
	for f := range total {
		for c := range channels {
			data[f*channels+c] = float32(f/framesPerBlock + 1)
		}
	}
	return &blockSource{channels: channels, rate: 8000, data: data}
}

func (s *blockSource) Read(buf []float32, frames int) (int, error) {
	s.reads++
	if s.failAt > 0 && s.reads == s.failAt {
		return 0, s.readErr
	}
	avail := len(s.data)/s.channels - s.cursor
	n := min(frames, avail)
	copy(buf, s.data[s.cursor*s.channels:(s.cursor+n)*s.channels])
	s.cursor += n
	return n, nil
}

func (s *blockSource) Rewind() error {
	s.rewinds++
	s.cursor = 0
	return nil
}

func (s *blockSource) Channels() int   { return s.channels }
func (s *blockSource) SampleRate() int { return s.rate }

// recordingSink records every call and a copy of every played block.
type recordingSink struct {
	mu      sync.Mutex
	calls   []string
	blocks  [][]float32
	frames  []int
	openErr error
	playErr error
	failAt  int // 1-based Play call that returns playErr

	blockOn chan struct{} // if set, Play waits for it
	playing chan struct{} // if set, signalled on the first Play
}

func (s *recordingSink) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}

func (s *recordingSink) Open(channels, sampleRate, blockFrames int) error {
	s.record("open")
	return s.openErr
}

func (s *recordingSink) Start() error {
	s.record("start")
	return nil
}

func (s *recordingSink) Play(buf []float32, frames int) error {
	if s.playing != nil {
		select {
		case s.playing <- struct{}{}:
		default:
		}
	}
	if s.blockOn != nil {
		<-s.blockOn
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAt > 0 && len(s.frames)+1 == s.failAt {
		return s.playErr
	}
	s.calls = append(s.calls, "play")
	s.blocks = append(s.blocks, append([]float32(nil), buf...))
	s.frames = append(s.frames, frames)
	return nil
}

func (s *recordingSink) Stop() error {
	s.record("stop")
	return nil
}

func (s *recordingSink) Close() error {
	s.record("close")
	return nil
}

// firstSamples returns the first sample of each played block.
func (s *recordingSink) firstSamples() []float32 {
	out := make([]float32, len(s.blocks))
	for i, b := range s.blocks {
		out[i] = b[0]
	}
	return out
}

func (s *recordingSink) lifecycle() []string {
	var out []string
	for _, c := range s.calls {
		if c != "play" {
			out = append(out, c)
		}
	}
	return out
}

// scriptedToggle fires on the listed poll numbers. Poll 0 is the first call.
type scriptedToggle struct {
	fires map[int]bool
	polls int
}

func toggleOn(polls ...int) *scriptedToggle {
	t := &scriptedToggle{fires: make(map[int]bool)}
	for _, p := range polls {
		t.fires[p] = true
	}
	return t
}

func (t *scriptedToggle) Toggled() bool {
	fired := t.fires[t.polls]
	t.polls++
	return fired
}

// waitingToggle implements Waiter and never fires afterwards.
type waitingToggle struct {
	waitErr error
	waited  bool
}

func (t *waitingToggle) Toggled() bool { return false }

func (t *waitingToggle) Wait(ctx context.Context) error {
	t.waited = true
	return t.waitErr
}

// recordingMeter keeps the peak of each metered block.
type recordingMeter struct {
	lens []int
	err  error
}

func (m *recordingMeter) WriteBlock(buf []float32) error {
	m.lens = append(m.lens, len(buf))
	return m.err
}

// interruptibleSink blocks in Play until Interrupt is called.
type interruptibleSink struct {
	*recordingSink
	once        sync.Once
	interrupted bool
}

func newInterruptibleSink() *interruptibleSink {
	return &interruptibleSink{recordingSink: &recordingSink{
		blockOn: make(chan struct{}),
		playing: make(chan struct{}, 1),
	}}
}

func (s *interruptibleSink) Interrupt() {
	s.once.Do(func() {
		s.mu.Lock()
		s.interrupted = true
		s.mu.Unlock()
		close(s.blockOn)
	})
}

// spyProcessor doubles its input and records the frame counts it sees.
type spyProcessor struct {
	channels int
	frames   []int
	inputs [][]float32
	resets int
}

func (p *spyProcessor) ApplyBlock(in, out []float32, frames int) error {
	p.frames = append(p.frames, frames)
	p.inputs = append(p.inputs, append([]float32(nil), in...))
	for i, v := range in {
		out[i] = 2 * v
	}
	return nil
}

func (p *spyProcessor) Reset()        { p.resets++ }
func (p *spyProcessor) Channels() int { return p.channels }

// stateLog records observed states and can react to one of them.
type stateLog struct {
	states []State
	on     State
	fn     func()
}

func (l *stateLog) StateChanged(s State) {
	l.states = append(l.states, s)
	if l.fn != nil && s == l.on {
		l.fn()
	}
}

var errUnplugged = errors.New("device unplugged")
