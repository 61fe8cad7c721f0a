package notify

import (
	"log/slog"
	"sync"

	"github.com/sobande/taskrr/internal/models"
)

// Event is anything published on the Bus. Concrete event types replace the
// browser custom events the original client used as its pub/sub channel.
type Event interface {
	Topic() string
}

// NotificationDelivered fires when a bridge has normalized an incoming push
// or local notification.
type NotificationDelivered struct {
	Payload models.NotificationPayload
}

// NotificationAction fires when the user acts on a notification (tap,
// dismiss).
type NotificationAction struct {
	NotificationID string
	Action         string
}

// PushTokenChanged fires when the push bridge hands out a new device token.
type PushTokenChanged struct {
	Token string
}

// DefaultAddressChanged fires when the user's default delivery address
// changes.
type DefaultAddressChanged struct {
	AddressID string
}

// AddressSelected fires when an address is picked for the current order.
type AddressSelected struct {
	AddressID string
}

func (NotificationDelivered) Topic() string { return "local-notification" }
func (NotificationAction) Topic() string    { return "notification-action" }
func (PushTokenChanged) Topic() string      { return "push-token" }
func (DefaultAddressChanged) Topic() string { return "addressDefaultChanged" }
func (AddressSelected) Topic() string       { return "addressSelected" }

type Handler func(Event)

// Bus is a fire-and-forget in-process pub/sub with independent listeners.
// Handlers for one event run to completion before the next event from the
// same publisher is dispatched; a panicking handler is isolated so the other
// listeners still run.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *slog.Logger
}

func NewBus(log *slog.Logger) *Bus {
	return &Bus{handlers: make(map[string][]Handler), log: log}
}

func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[e.Topic()]))
	copy(handlers, b.handlers[e.Topic()])
	b.mu.RUnlock()

	for _, h := range handlers {
		b.dispatch(e, h)
	}
}

func (b *Bus) dispatch(e Event, h Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panicked", slog.String("topic", e.Topic()), slog.Any("panic", r))
		}
	}()
	h(e)
}
