package game

import (
	"sync"
	"time"
)

// Scheduler runs delayed announcements tied to a round generation.
// Bump starts a new generation and cancels everything pending; a callback
// whose generation is no longer current is dropped instead of run.
type Scheduler struct {
	mu      sync.Mutex
	gen     uint64
	pending map[*time.Timer]struct{}
}

// NewScheduler creates a scheduler at generation 0.
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[*time.Timer]struct{})}
}

// Generation returns the current generation.
func (s *Scheduler) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Bump advances the generation, stops pending timers and returns the new
// generation.
func (s *Scheduler) Bump() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	for t := range s.pending {
		t.Stop()
	}
	s.pending = make(map[*time.Timer]struct{})
	return s.gen
}

// After runs fn after delay if gen is still current at that point.
// It returns false, and schedules nothing, when gen is already stale.
func (s *Scheduler) After(delay time.Duration, gen uint64, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return false
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.pending, t)
		stale := s.gen != gen
		s.mu.Unlock()

		if !stale {
			fn()
		}
	})
	s.pending[t] = struct{}{}
	return true
}

// Pending returns the number of timers not yet fired or stopped.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
