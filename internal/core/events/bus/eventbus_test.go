package bus

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testObserver struct {
	mu        sync.Mutex
	published int
	delivered int
	lastErr   error
}

func (o *testObserver) OnPublish(_, _ string, _ Event) {
	o.mu.Lock()
	o.published++
	o.mu.Unlock()
}

func (o *testObserver) OnDelivered(_, _ string, handlers int, err error, _ time.Duration) {
	o.mu.Lock()
	o.delivered += handlers
	o.lastErr = err
	o.mu.Unlock()
}

func TestEventBus(t *testing.T) {
	t.Run("Publish reaches subscribers synchronously", func(t *testing.T) {
		b := New()
		var got []any
		sub, err := b.Subscribe("state", func(e Event) error {
			got = append(got, e.Data())
			return nil
		})
		require.NoError(t, err)
		require.NotEmpty(t, sub.ID())
		require.True(t, sub.IsActive())

		require.NoError(t, b.Publish(NewEvent("state", "test", 1)))
		require.NoError(t, b.Publish(NewEvent("other", "test", 2)))
		require.Equal(t, []any{1}, got)
	})

	t.Run("Handler errors are joined", func(t *testing.T) {
		b := New()
		errA := errors.New("a")
		errB := errors.New("b")
		_, _ = b.Subscribe("x", func(Event) error { return errA })
		_, _ = b.Subscribe("x", func(Event) error { return errB })

		err := b.Publish(NewEvent("x", "test", nil))
		require.ErrorIs(t, err, errA)
		require.ErrorIs(t, err, errB)
	})

	t.Run("Cancel stops delivery and is repeatable", func(t *testing.T) {
		b := New()
		calls := 0
		sub, _ := b.Subscribe("x", func(Event) error { calls++; return nil })
		require.NoError(t, b.Unsubscribe(sub))
		require.NoError(t, sub.Cancel())
		require.NoError(t, b.Unsubscribe(nil))
		require.False(t, sub.IsActive())

		require.NoError(t, b.Publish(NewEvent("x", "test", nil)))
		require.Equal(t, 0, calls)
	})

	t.Run("Topics are isolated but default subscribers see everything", func(t *testing.T) {
		b := New()
		var one, two, all int
		_, _ = b.SubscribeTopic("view-1", "ev", func(Event) error { one++; return nil })
		_, _ = b.SubscribeTopic("view-2", "ev", func(Event) error { two++; return nil })
		_, _ = b.Subscribe("ev", func(Event) error { all++; return nil })

		require.NoError(t, b.PublishToTopic("view-1", NewEvent("ev", "test", nil)))
		require.Equal(t, 1, one)
		require.Equal(t, 0, two)
		require.Equal(t, 1, all)
	})

	t.Run("Empty topics are dropped", func(t *testing.T) {
		b := New()
		sub, _ := b.SubscribeTopic("view-1", "ev", func(Event) error { return nil })
		require.Len(t, b.GetTopics(), 2)
		require.NoError(t, sub.Cancel())
		require.Len(t, b.GetTopics(), 1)
	})

	t.Run("Nil handler", func(t *testing.T) {
		_, err := New().Subscribe("x", nil)
		require.ErrorIs(t, err, ErrNilHandler)
	})

	t.Run("Metrics only with observers", func(t *testing.T) {
		b := New()
		_, _ = b.Subscribe("e", func(Event) error { return nil })
		require.NoError(t, b.Publish(NewEvent("e", "test", nil)))
		require.Zero(t, b.GetMetrics().Published)

		obs := &testObserver{}
		b.AddObserver(obs)
		require.NoError(t, b.Publish(NewEvent("e", "test", nil)))
		m := b.GetMetrics()
		require.Equal(t, uint64(1), m.Published)
		require.Equal(t, uint64(1), m.DeliveredHandlers)
		require.Equal(t, uint64(1), m.SubscribersActive)
		require.Equal(t, 1, obs.published)
		require.Equal(t, 1, obs.delivered)

		b.RemoveObserver(obs)
		require.NoError(t, b.Publish(NewEvent("e", "test", nil)))
		require.Equal(t, 1, obs.published)
	})

	t.Run("Concurrent subscribe and publish", func(t *testing.T) {
		b := New()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				sub, err := b.Subscribe("c", func(Event) error { return nil })
				if err == nil {
					_ = sub.Cancel()
				}
			}()
			go func() {
				defer wg.Done()
				_ = b.Publish(NewEvent("c", "test", nil))
			}()
		}
		wg.Wait()
	})
}
