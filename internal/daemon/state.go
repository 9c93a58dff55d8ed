package daemon

import (
	"dirmirror/internal/model"
	"sync"
	"time"
)

type State struct {
	mu        sync.RWMutex
	src       string
	dst       string
	interval  time.Duration
	status    model.SchedulerStatus
	startedAt time.Time
	cycles    int
	copied    int
	failed    int
	skipped   int
	lastCycle *time.Time
}

func NewState(src, dst string, interval time.Duration) *State {
	return &State{
		src:      src,
		dst:      dst,
		interval: interval,
		status:   model.StatusIdle,
	}
}

func (s *State) MarkStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startedAt = time.Now()
}

func (s *State) SetStatus(status model.SchedulerStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *State) RecordCycle(summary model.CycleSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cycles++
	s.copied += summary.Copied()
	s.failed += summary.Failed()
	finishedAt := summary.FinishedAt
	s.lastCycle = &finishedAt
}

func (s *State) RecordSkip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipped++
}

func (s *State) Snapshot() model.SchedulerSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return model.SchedulerSnapshot{
		Src:       s.src,
		Dst:       s.dst,
		Interval:  s.interval,
		Status:    s.status,
		StartedAt: s.startedAt,
		Cycles:    s.cycles,
		Copied:    s.copied,
		Failed:    s.failed,
		Skipped:   s.skipped,
		LastCycle: s.lastCycle,
	}
}
