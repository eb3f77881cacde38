package paginate

import (
	"context"
	"sync"
	"time"
)

// State of one preview pagination session.
type State int

const (
	// StateIdle: nothing scheduled, no measurement running.
	StateIdle State = iota
	// StateScheduled: a change arrived; measurement is pending.
	StateScheduled
	// StateMeasuring: a measurement is in flight.
	StateMeasuring
	// StateSettled: the latest scheduled measurement completed.
	StateSettled
)

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateMeasuring:
		return "measuring"
	case StateSettled:
		return "settled"
	default:
		return "idle"
	}
}

// Measurement timing. One frame lets the DOM lay out after a content
// swap; the settle delay coalesces edit bursts into one measurement.
const (
	DefaultFrameDelay  = 16 * time.Millisecond
	DefaultSettleDelay = 120 * time.Millisecond
)

// Outcome is one pagination result. Breaks carries drawable
// page-boundary offsets in content pixels regardless of mode; Pages and
// Warnings are filled when the section packer ran.
type Outcome struct {
	Breaks   []float64
	Pages    []Page
	Warnings []Warning
}

// MeasureFunc computes an Outcome. The context is canceled when a newer
// schedule supersedes the call; implementations should abort early.
type MeasureFunc func(ctx context.Context) (*Outcome, error)

// Scheduler drives the Idle → Scheduled → Measuring → Settled cycle.
// Every Schedule call bumps a generation counter; in-flight results
// from older generations are discarded, so the latest schedule always
// wins and stale measurements can never overwrite fresher ones.
type Scheduler struct {
	measure     MeasureFunc
	onSettled   func(*Outcome)
	frameDelay  time.Duration
	settleDelay time.Duration

	mu     sync.Mutex
	state  State
	gen    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	latest *Outcome
	closed bool
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithDelays overrides the frame and settle delays. Tests use tiny
// values; zero keeps the corresponding default.
func WithDelays(frame, settle time.Duration) SchedulerOption {
	return func(s *Scheduler) {
		if frame > 0 {
			s.frameDelay = frame
		}
		if settle > 0 {
			s.settleDelay = settle
		}
	}
}

// WithOnSettled registers a callback invoked after each settle, outside
// the scheduler lock. Under rapid rescheduling callbacks may overlap;
// Latest is the authoritative newest outcome.
func WithOnSettled(fn func(*Outcome)) SchedulerOption {
	return func(s *Scheduler) { s.onSettled = fn }
}

// NewScheduler builds an idle scheduler around a measure function.
func NewScheduler(measure MeasureFunc, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		measure:     measure,
		frameDelay:  DefaultFrameDelay,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule records a change event: content, style tokens, zoom, or
// marker visibility. Calls coalesce; only the last one's measurement
// survives.
func (s *Scheduler) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.state = StateScheduled
	s.timer = time.AfterFunc(s.frameDelay+s.settleDelay, func() { s.fire(gen) })
}

// fire runs the measurement for one generation, discarding the result
// if a newer generation was scheduled meanwhile.
func (s *Scheduler) fire(gen uint64) {
	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.state = StateMeasuring
	measure := s.measure
	s.mu.Unlock()

	out, err := measure(ctx)

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.cancel = nil
	if err != nil || out == nil {
		s.state = StateIdle
		s.mu.Unlock()
		return
	}
	s.latest = out
	s.state = StateSettled
	cb := s.onSettled
	s.mu.Unlock()

	if cb != nil {
		cb(out)
	}
}

// State returns the current lifecycle state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Latest returns the newest settled outcome, or nil before the first
// settle.
func (s *Scheduler) Latest() *Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// Close stops pending timers and cancels any in-flight measurement.
// The scheduler ignores Schedule calls afterwards.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
