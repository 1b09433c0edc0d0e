package host

import (
	"context"
	"errors"

	"github.com/zeusync/interact/internal/core/observability/log"
)

var ErrLoopClosed = errors.New("host loop is closed")

// Loop runs posted functions one at a time on the goroutine that called Run.
// Interaction state is only ever touched from that goroutine.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	logger log.Log
}

// NewLoop creates a loop whose queue holds up to buffer pending tasks.
func NewLoop(buffer int, logger log.Log) *Loop {
	if buffer <= 0 {
		buffer = 64
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Loop{
		tasks:  make(chan func(), buffer),
		done:   make(chan struct{}),
		logger: logger.With(log.String("component", "host_loop")),
	}
}

// Run executes tasks until ctx is done. It must be called once.
func (l *Loop) Run(ctx context.Context) error {
	l.logger.Debug("Host loop started")
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("Host loop stopped")
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Post queues fn. It blocks while the queue is full and fails once the loop
// has stopped.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.done:
		return ErrLoopClosed
	default:
	}
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Do runs fn on the loop and waits for its result.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	if err := l.Post(func() { result <- fn() }); err != nil {
		return err
	}
	select {
	case err := <-result:
		return err
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }
