package host

import (
	"sync/atomic"
	"time"

	"github.com/zeusync/interact/internal/core/integrator"
)

// Scheduler implements integrator.Scheduler with one time.Ticker per run.
// Ticks are posted onto the loop, so callbacks run on the loop goroutine and
// receive the time measured there since the previous tick.
type Scheduler struct {
	loop *Loop
}

var _ integrator.Scheduler = (*Scheduler)(nil)

func NewScheduler(loop *Loop) *Scheduler {
	return &Scheduler{loop: loop}
}

func (s *Scheduler) Every(interval time.Duration, fn func(elapsed time.Duration)) integrator.Handle {
	stop := make(chan struct{})
	var cancelled atomic.Bool
	last := time.Now()

	tick := func() {
		if cancelled.Load() {
			return
		}
		now := time.Now()
		elapsed := now.Sub(last)
		last = now
		fn(elapsed)
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-s.loop.Done():
				return
			case <-ticker.C:
				if err := s.loop.Post(tick); err != nil {
					return
				}
			}
		}
	}()

	return integrator.HandleFunc(func() {
		cancelled.Store(true)
		close(stop)
	})
}
