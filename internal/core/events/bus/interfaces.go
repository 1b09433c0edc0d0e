package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus for interaction state.
//
//   - Handlers subscribe by Event.Type(), optionally within a topic. Interactive
//     views publish on a topic named after their ID so a host can follow one view.
//   - Publish delivers synchronously in the caller goroutine and joins handler
//     errors.
//   - Metrics are collected only while at least one observer is registered.
type EventBus interface {
	// Publish delivers the event to the default topic ("").
	Publish(event Event) error
	// PublishToTopic delivers the event to subscribers of topic and to
	// subscribers of the default topic.
	PublishToTopic(topic string, event Event) error

	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	SubscribeTopic(topic, eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels sub. A nil sub is ignored.
	Unsubscribe(sub Subscription) error

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	GetMetrics() EventBusMetrics
	GetTopics() []TopicInfo
}

// Event is an immutable message transported by the bus.
type Event interface {
	Type() string
	Source() string
	Timestamp() time.Time
	Data() any
}

// EventHandler is invoked per delivered event. Returned errors are joined
// and returned from Publish.
type EventHandler func(event Event) error

type Subscription interface {
	ID() string
	Topic() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified about deliveries. Observers should return quickly.
type EventBusObserver interface {
	OnPublish(topic, eventType string, event Event)
	OnDelivered(topic, eventType string, handlers int, err error, duration time.Duration)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
	Topics            uint64
}

type TopicInfo struct {
	Name       string
	EventTypes int
	Subs       int
}
