package paginate

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// Notes:
// - Delays shrink to a few milliseconds so the full lifecycle runs in
//   well under a second; waitState polls rather than sleeping a fixed
//   amount to keep the tests stable on slow machines.
// - Last-scheduled-wins is the core invariant: a stale in-flight
//   measurement must never overwrite a fresher settled outcome.

func fastScheduler(measure MeasureFunc, opts ...SchedulerOption) *Scheduler {
	opts = append([]SchedulerOption{WithDelays(time.Millisecond, time.Millisecond)}, opts...)
	return NewScheduler(measure, opts...)
}

func waitState(t *testing.T, s *Scheduler, want State) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if s.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("state = %v, want %v", s.State(), want)
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func TestSchedulerLifecycle(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	s := fastScheduler(func(context.Context) (*Outcome, error) {
		calls.Add(1)
		return &Outcome{Breaks: []float64{1000}}, nil
	})
	defer s.Close()

	if got := s.State(); got != StateIdle {
		t.Fatalf("initial state = %v, want idle", got)
	}
	if s.Latest() != nil {
		t.Fatal("Latest before first settle must be nil")
	}

	s.Schedule()
	waitState(t, s, StateSettled)

	out := s.Latest()
	if out == nil || len(out.Breaks) != 1 || out.Breaks[0] != 1000 {
		t.Fatalf("Latest = %+v, want one break at 1000", out)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("measure calls = %d, want 1", got)
	}
}

func TestSchedulerCoalescesBursts(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	s := fastScheduler(func(context.Context) (*Outcome, error) {
		calls.Add(1)
		return &Outcome{}, nil
	})
	defer s.Close()

	// An edit burst: every keystroke schedules, one measurement runs.
	for i := 0; i < 10; i++ {
		s.Schedule()
	}
	waitState(t, s, StateSettled)

	if got := calls.Load(); got != 1 {
		t.Errorf("measure calls = %d, want 1 (burst must coalesce)", got)
	}
}

func TestSchedulerResettlesAfterChange(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	s := fastScheduler(func(context.Context) (*Outcome, error) {
		return &Outcome{Breaks: []float64{float64(calls.Add(1))}}, nil
	})
	defer s.Close()

	s.Schedule()
	waitState(t, s, StateSettled)
	s.Schedule()
	waitState(t, s, StateSettled)

	if got := s.Latest().Breaks[0]; got != 2 {
		t.Errorf("Latest after second settle = %v, want 2", got)
	}
}

// ---------------------------------------------------------------------------
// Last-scheduled-wins
// ---------------------------------------------------------------------------

func TestSchedulerStaleResultDiscarded(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	var seq atomic.Int32
	s := fastScheduler(func(context.Context) (*Outcome, error) {
		if seq.Add(1) == 1 {
			<-release // first measurement hangs until superseded
			return &Outcome{Breaks: []float64{1}}, nil
		}
		return &Outcome{Breaks: []float64{2}}, nil
	})
	defer s.Close()

	s.Schedule()
	waitState(t, s, StateMeasuring)

	// Supersede while the first measurement is in flight.
	s.Schedule()
	waitState(t, s, StateSettled)

	if got := s.Latest().Breaks[0]; got != 2 {
		t.Fatalf("Latest = %v, want the superseding result 2", got)
	}

	// Let the stale measurement finish; it must not overwrite.
	close(release)
	time.Sleep(20 * time.Millisecond)
	if got := s.Latest().Breaks[0]; got != 2 {
		t.Errorf("stale result overwrote fresher outcome: %v", got)
	}
	if got := s.State(); got != StateSettled {
		t.Errorf("state after stale return = %v, want settled", got)
	}
}

func TestSchedulerCancelsSupersededContext(t *testing.T) {
	t.Parallel()

	canceled := make(chan struct{})
	var seq atomic.Int32
	s := fastScheduler(func(ctx context.Context) (*Outcome, error) {
		if seq.Add(1) == 1 {
			<-ctx.Done()
			close(canceled)
			return nil, ctx.Err()
		}
		return &Outcome{}, nil
	})
	defer s.Close()

	s.Schedule()
	waitState(t, s, StateMeasuring)
	s.Schedule()

	select {
	case <-canceled:
	case <-time.After(5 * time.Second):
		t.Fatal("superseded measurement context was never canceled")
	}
	waitState(t, s, StateSettled)
}

// ---------------------------------------------------------------------------
// Errors and shutdown
// ---------------------------------------------------------------------------

func TestSchedulerMeasureError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	s := fastScheduler(func(context.Context) (*Outcome, error) {
		if calls.Add(1) == 1 {
			return nil, errors.New("measurement failed")
		}
		return &Outcome{Breaks: []float64{7}}, nil
	})
	defer s.Close()

	s.Schedule()
	waitState(t, s, StateIdle)
	if s.Latest() != nil {
		t.Error("failed measurement must not settle an outcome")
	}

	s.Schedule()
	waitState(t, s, StateSettled)
	if got := s.Latest().Breaks[0]; got != 7 {
		t.Errorf("recovery settle = %v, want 7", got)
	}
}

func TestSchedulerOnSettled(t *testing.T) {
	t.Parallel()

	settled := make(chan *Outcome, 1)
	s := fastScheduler(
		func(context.Context) (*Outcome, error) { return &Outcome{Breaks: []float64{3}}, nil },
		WithOnSettled(func(o *Outcome) { settled <- o }),
	)
	defer s.Close()

	s.Schedule()
	select {
	case out := <-settled:
		if out.Breaks[0] != 3 {
			t.Errorf("callback outcome = %v, want 3", out.Breaks[0])
		}
	case <-time.After(5 * time.Second):
		t.Fatal("OnSettled was never called")
	}
}

func TestSchedulerCloseStopsWork(t *testing.T) {
	t.Parallel()

	// Generous delays so Close always lands before the timer fires.
	var calls atomic.Int32
	s := NewScheduler(func(context.Context) (*Outcome, error) {
		calls.Add(1)
		return &Outcome{}, nil
	}, WithDelays(100*time.Millisecond, 100*time.Millisecond))

	s.Schedule()
	s.Close()
	time.Sleep(250 * time.Millisecond)

	if got := calls.Load(); got != 0 {
		t.Errorf("measure ran %d times after Close", got)
	}

	s.Schedule() // no-op after Close
	if got := s.State(); got == StateScheduled || got == StateMeasuring {
		t.Errorf("Schedule after Close must be ignored, state = %v", got)
	}
}
