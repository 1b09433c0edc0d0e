package integrator

import (
	"sync"
	"time"
)

// Handle identifies a registered repeating callback.
type Handle interface {
	// Cancel stops future callbacks. Multiple calls are safe.
	Cancel()
}

// Scheduler registers repeating callbacks with the host's event loop.
// Callbacks must run on the goroutine that owns the interaction state.
type Scheduler interface {
	// Every invokes fn roughly once per interval until the returned handle is
	// cancelled. elapsed is the measured time since the previous call, or zero
	// when the scheduler cannot measure it.
	Every(interval time.Duration, fn func(elapsed time.Duration)) Handle
}

// FrameScheduler is a Scheduler for hosts that already own a frame loop:
// nothing fires until Advance is called. It is not safe for concurrent use.
type FrameScheduler struct {
	nextID  uint64
	entries map[uint64]*frameEntry
	order   []uint64
}

type frameEntry struct {
	fn        func(elapsed time.Duration)
	cancelled bool
}

type frameHandle struct {
	s  *FrameScheduler
	id uint64
}

func (h frameHandle) Cancel() {
	if e, ok := h.s.entries[h.id]; ok {
		e.cancelled = true
		delete(h.s.entries, h.id)
	}
}

// NewFrameScheduler creates an empty FrameScheduler.
func NewFrameScheduler() *FrameScheduler {
	return &FrameScheduler{entries: make(map[uint64]*frameEntry)}
}

func (s *FrameScheduler) Every(_ time.Duration, fn func(elapsed time.Duration)) Handle {
	s.nextID++
	id := s.nextID
	s.entries[id] = &frameEntry{fn: fn}
	s.order = append(s.order, id)
	return frameHandle{s: s, id: id}
}

// Advance fires every live callback once with the given elapsed time, in
// registration order. Callbacks registered during Advance wait for the next call.
func (s *FrameScheduler) Advance(elapsed time.Duration) {
	ids := s.order
	live := ids[:0:0]
	for _, id := range ids {
		if _, ok := s.entries[id]; ok {
			live = append(live, id)
		}
	}
	s.order = live
	for _, id := range live {
		e, ok := s.entries[id]
		if !ok || e.cancelled {
			continue
		}
		e.fn(elapsed)
	}
}

// Len returns the number of live callbacks.
func (s *FrameScheduler) Len() int { return len(s.entries) }

// funcHandle adapts a cancel func into a Handle that runs it at most once.
type funcHandle struct {
	once   sync.Once
	cancel func()
}

// HandleFunc wraps cancel so that it runs at most once.
func HandleFunc(cancel func()) Handle {
	return &funcHandle{cancel: cancel}
}

func (h *funcHandle) Cancel() {
	h.once.Do(func() {
		if h.cancel != nil {
			h.cancel()
		}
	})
}
