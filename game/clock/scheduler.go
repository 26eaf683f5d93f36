package clock

import (
	"context"
	"sync"
	"time"
)

// Target is what the scheduler drives. Gravity reports whether gravity applies
// right now (running and not paused) and the current interval between drops.
type Target interface {
	Gravity() (active bool, interval time.Duration)
	Tick()
}

// Scheduler issues gravity ticks from display frames. At most one tick fires per
// frame, and only once strictly more than the interval has passed since the last
// drop. The drop reference restarts whenever gravity becomes active again, so a
// resume never drops immediately.
type Scheduler struct {
	target   Target
	clock    TimeProvider
	lastDrop time.Time
	active   bool
	mu       sync.Mutex
}

// NewScheduler creates a scheduler for target. A nil clock uses real time.
func NewScheduler(target Target, clock TimeProvider) *Scheduler {
	if clock == nil {
		clock = NewRealTimeProvider()
	}
	return &Scheduler{
		target: target,
		clock:  clock,
	}
}

// Frame advances the scheduler to now and reports whether a tick fired
func (s *Scheduler) Frame(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, interval := s.target.Gravity()
	if !active {
		s.active = false
		return false
	}

	if !s.active {
		s.active = true
		s.lastDrop = now
		return false
	}

	if now.Sub(s.lastDrop) <= interval {
		return false
	}

	s.target.Tick()
	s.lastDrop = now
	return true
}

// Reset restarts the drop reference at now, e.g. after a restart
func (s *Scheduler) Reset(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastDrop = now
}

// Run calls Frame on every frame interval until ctx is done
func (s *Scheduler) Run(ctx context.Context, frame time.Duration) error {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Frame(s.clock.Now())
		}
	}
}
