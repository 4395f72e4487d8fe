package particles

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrRunning is returned by Start when the loop is already active.
var ErrRunning = errors.New("particles: runner already started")

// Frame is an immutable snapshot published after every tick.
type Frame struct {
	Number     uint64     `json:"frame"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Pointer    Point      `json:"pointer"`
	HasPointer bool       `json:"hasPointer"`
	Particles  []Particle `json:"particles"`
}

type eventKind uint8

const (
	eventPointer eventKind = iota
	eventResize
)

type event struct {
	kind eventKind
	x, y float64
}

// Runner drives a Simulator from its own goroutine. The loop goroutine is the
// only writer of the field; pointer and resize events are staged and applied
// at the start of the next tick. Readers see published Frames.
type Runner struct {
	sim     *Simulator
	surface *Headless
	limiter *rate.Limiter
	events  chan event
	frame   atomic.Pointer[Frame]
	logger  *zap.Logger

	number     uint64
	hasPointer bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger attaches a logger for lifecycle events.
func WithLogger(l *zap.Logger) RunnerOption {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEventBuffer sets how many events may be staged between ticks.
func WithEventBuffer(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.events = make(chan event, n)
		}
	}
}

// NewRunner builds a headless simulator of the given size ticking at fps.
func NewRunner(width, height float64, fps int, params Params, rng *rand.Rand, opts ...RunnerOption) *Runner {
	if fps <= 0 {
		fps = 60
	}
	surface := &Headless{Width: width, Height: height}
	r := &Runner{
		sim:     New(surface, params, rng),
		surface: surface,
		// A burst of one means a stalled loop resumes at the normal cadence
		// instead of replaying missed frames.
		limiter: rate.NewLimiter(rate.Limit(fps), 1),
		events:  make(chan event, 64),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.publish()
	return r
}

// Start launches the frame loop. It runs until Stop is called or ctx ends.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		return ErrRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done

	w, h := r.sim.Bounds()
	r.logger.Debug("particle loop started",
		zap.Float64("width", w),
		zap.Float64("height", h),
		zap.Int("particles", r.sim.Count()))

	go r.loop(ctx, done)
	return nil
}

// Stop cancels the loop and waits for it to exit. It is safe to call more
// than once.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	r.logger.Debug("particle loop stopped", zap.Uint64("frame", r.Snapshot().Number))
}

// Running reports whether the loop goroutine is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// PointerMove stages a pointer update. It reports false if the event buffer
// is full and the update was dropped.
func (r *Runner) PointerMove(x, y float64) bool {
	return r.stage(event{kind: eventPointer, x: x, y: y})
}

// Resize stages a surface size change. The field is regenerated on the next
// tick.
func (r *Runner) Resize(width, height float64) bool {
	return r.stage(event{kind: eventResize, x: width, y: height})
}

func (r *Runner) stage(ev event) bool {
	select {
	case r.events <- ev:
		return true
	default:
		r.logger.Warn("particle event dropped", zap.Uint8("kind", uint8(ev.kind)))
		return false
	}
}

// Snapshot returns the most recently published frame.
func (r *Runner) Snapshot() Frame {
	return *r.frame.Load()
}

// Params returns the simulator tuning.
func (r *Runner) Params() Params { return r.sim.Params() }

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		if err := r.limiter.Wait(ctx); err != nil {
			return
		}
		r.tick()
	}
}

// tick applies staged events in arrival order, steps the field and publishes.
func (r *Runner) tick() {
	for drained := false; !drained; {
		select {
		case ev := <-r.events:
			r.apply(ev)
		default:
			drained = true
		}
	}
	r.sim.Step()
	r.number++
	r.publish()
}

func (r *Runner) apply(ev event) {
	switch ev.kind {
	case eventPointer:
		r.sim.PointerMove(ev.x, ev.y)
		r.hasPointer = true
	case eventResize:
		r.surface.Width, r.surface.Height = ev.x, ev.y
		r.sim.Resize()
		r.logger.Debug("particle field regenerated",
			zap.Float64("width", ev.x),
			zap.Float64("height", ev.y),
			zap.Int("particles", r.sim.Count()))
	}
}

func (r *Runner) publish() {
	w, h := r.sim.Bounds()
	r.frame.Store(&Frame{
		Number:     r.number,
		Width:      w,
		Height:     h,
		Pointer:    r.sim.Pointer(),
		HasPointer: r.hasPointer,
		Particles:  r.sim.Particles(),
	})
}
