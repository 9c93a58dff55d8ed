package daemon

import (
	"context"
	"dirmirror/internal/logger"
	"dirmirror/internal/model"
	"dirmirror/internal/syncer"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

var ErrAlreadyStarted = errors.New("scheduler already started")

// Ticker delivers the periodic firings. It is satisfied by a wrapped
// time.Ticker in production and by a hand-driven channel in tests.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

type timeTicker struct {
	t *time.Ticker
}

func (t timeTicker) C() <-chan time.Time { return t.t.C }

func (t timeTicker) Stop() { t.t.Stop() }

func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{t: time.NewTicker(d)}
}

// Recorder observes every finished cycle.
type Recorder func(model.CycleSummary)

type Option func(*Scheduler)

func WithTicker(newTicker func(time.Duration) Ticker) Option {
	return func(s *Scheduler) {
		s.newTicker = newTicker
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Scheduler) {
		s.recorders = append(s.recorders, r)
	}
}

// Scheduler runs a cycle right away and then once per interval until
// stopped. A firing that arrives while a cycle is still running is
// skipped, so at most one cycle executes at a time.
type Scheduler struct {
	cycle     syncer.Cycle
	interval  time.Duration
	state     *State
	newTicker func(time.Duration) Ticker
	recorders []Recorder

	running  atomic.Bool
	inFlight sync.WaitGroup

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	doneCh  chan struct{}
}

func NewScheduler(cycle syncer.Cycle, interval time.Duration, state *State, opts ...Option) (*Scheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("interval must be positive, got %s", interval)
	}

	s := &Scheduler{
		cycle:     cycle,
		interval:  interval,
		state:     state,
		newTicker: NewTimeTicker,
		doneCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	ticker := s.newTicker(s.interval)
	s.state.MarkStarted()

	go s.loop(ctx, ticker)

	logger.Log.Info("scheduler started",
		zap.Duration("interval", s.interval))
	return nil
}

// Stop cancels the schedule and waits for an in-flight cycle to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-s.doneCh
}

// Done is closed once the scheduler has fully stopped.
func (s *Scheduler) Done() <-chan struct{} {
	return s.doneCh
}

func (s *Scheduler) loop(ctx context.Context, ticker Ticker) {
	defer close(s.doneCh)
	defer ticker.Stop()

	s.fire(ctx)

	for {
		select {
		case <-ctx.Done():
			s.inFlight.Wait()
			s.state.SetStatus(model.StatusIdle)
			logger.Log.Info("scheduler stopped")
			return

		case <-ticker.C():
			s.fire(ctx)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.state.RecordSkip()
		logger.Log.Warn("previous cycle still running, skipping firing")
		return
	}

	s.inFlight.Add(1)
	go func() {
		defer s.inFlight.Done()

		s.state.SetStatus(model.StatusRunning)
		summary := s.cycle.Run(ctx)
		s.state.RecordCycle(summary)
		s.state.SetStatus(model.StatusWaiting)
		s.running.Store(false)

		for _, r := range s.recorders {
			r(summary)
		}
	}()
}
