package server

import (
	"time"

	"github.com/zeusync/interact/internal/core/events/bus"
	"github.com/zeusync/interact/internal/core/observability/log"
)

// busObserver logs failed deliveries. Registering it also turns on the bus
// metrics reported by GetStats.
type busObserver struct {
	logger log.Log
}

var _ bus.EventBusObserver = (*busObserver)(nil)

func (o *busObserver) OnPublish(string, string, bus.Event) {}

func (o *busObserver) OnDelivered(topic, eventType string, handlers int, err error, duration time.Duration) {
	if err == nil {
		return
	}
	o.logger.Warn("Event delivery failed",
		log.String("topic", topic),
		log.String("event_type", eventType),
		log.Int("handlers", handlers),
		log.Duration("duration", duration),
		log.Error(err))
}
