package integrator

import (
	"errors"
	"math"
	"time"

	"github.com/zeusync/interact/internal/core/observability/log"
)

var (
	ErrAlreadyRunning = errors.New("integrator is already running")
	ErrNoScheduler    = errors.New("integrator has no scheduler")
)

const (
	// DefaultThrowInterval is the nominal step of a thrown view.
	DefaultThrowInterval = time.Millisecond
	// DefaultSpinInterval is the nominal step of a spinning view.
	DefaultSpinInterval = 20 * time.Millisecond
)

// StepFunc advances the simulated quantity by dt seconds.
type StepFunc func(dt float64)

// Integrator runs a StepFunc at a fixed nominal interval until stopped.
// There is no termination condition: a model whose velocity never decays
// keeps the integrator running forever.
//
// Integrator is not safe for concurrent use; the scheduler is expected to
// deliver ticks on the goroutine that calls Start and Stop.
type Integrator struct {
	scheduler Scheduler
	interval  time.Duration
	step      StepFunc
	logger    log.Log

	current *run
	steps   uint64
}

type run struct {
	handle Handle
}

// New creates a stopped Integrator.
func New(scheduler Scheduler, interval time.Duration, step StepFunc, logger log.Log) *Integrator {
	if interval <= 0 {
		interval = DefaultThrowInterval
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Integrator{
		scheduler: scheduler,
		interval:  interval,
		step:      step,
		logger:    logger,
	}
}

// Start registers the step with the scheduler and returns the run's handle.
// Starting a running integrator is a caller bug and returns ErrAlreadyRunning;
// call Stop first.
func (i *Integrator) Start() (Handle, error) {
	if i.scheduler == nil {
		return nil, ErrNoScheduler
	}
	if i.current != nil {
		i.logger.Warn("Integrator started twice without stop",
			log.Duration("interval", i.interval))
		return nil, ErrAlreadyRunning
	}
	r := &run{}
	i.current = r
	r.handle = i.scheduler.Every(i.interval, func(elapsed time.Duration) {
		// ticks already queued by the host when the run was stopped
		if i.current != r {
			return
		}
		i.steps++
		i.step(i.dt(elapsed))
	})
	i.logger.Debug("Integrator started", log.Duration("interval", i.interval))
	return r.handle, nil
}

// Stop cancels the current run. It is a no-op when nothing is running.
func (i *Integrator) Stop() {
	if i.current == nil {
		return
	}
	r := i.current
	i.current = nil
	if r.handle != nil {
		r.handle.Cancel()
	}
	i.logger.Debug("Integrator stopped", log.Uint64("steps", i.steps))
}

// Running reports whether a run is registered.
func (i *Integrator) Running() bool { return i.current != nil }

// Interval returns the nominal step.
func (i *Integrator) Interval() time.Duration { return i.interval }

// Steps returns the number of steps taken since creation.
func (i *Integrator) Steps() uint64 { return i.steps }

// dt prefers the measured interval and falls back to the nominal one.
func (i *Integrator) dt(elapsed time.Duration) float64 {
	s := elapsed.Seconds()
	if elapsed <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return i.interval.Seconds()
	}
	return s
}
