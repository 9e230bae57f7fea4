package cycle

import (
	"context"
	"log"
	"sync"
	"time"
)

// #region scheduler

// Scheduler ticks every registered runner on its period, one goroutine
// per instrument. Cycles for different instruments interleave freely;
// cycles for one instrument never overlap.
type Scheduler struct {
	mu      sync.Mutex
	runners []*Runner
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add registers a runner. Must be called before Run.
func (s *Scheduler) Add(r *Runner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runners = append(s.runners, r)
}

// Run blocks until ctx is cancelled, driving every runner on its own
// ticker. A failed cycle is logged and the loop continues; only
// cancellation stops an instrument.
func (s *Scheduler) Run(ctx context.Context) {
	s.mu.Lock()
	runners := make([]*Runner, len(s.runners))
	copy(runners, s.runners)
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, r := range runners {
		wg.Add(1)
		go func(r *Runner) {
			defer wg.Done()
			s.loop(ctx, r)
		}(r)
	}
	wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, r *Runner) {
	ticker := time.NewTicker(r.config.Period)
	defer ticker.Stop()

	log.Printf("[CYCLE] %s: loop started, period %s", r.instrument, r.config.Period)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[CYCLE] %s: loop stopped", r.instrument)
			return
		case <-ticker.C:
			if _, err := r.RunCycle(ctx, time.Now().UTC()); err != nil {
				log.Printf("[CYCLE] %s: %v", r.instrument, err)
			}
		}
	}
}

// #endregion scheduler
