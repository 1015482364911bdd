// Package events carries the engine's notification stream toward the UI
// layer: transient toast messages and the navigate-back signal after a
// successful save.
package events

import (
	"sync"
	"time"
)

// Type discriminates notifications.
type Type string

const (
	TypeToast        Type = "toast"
	TypeNavigateBack Type = "navigate_back"
)

// Event is a single notification. Message is set for toasts.
type Event struct {
	Type      Type
	Message   string
	CreatedAt time.Time
}

// Handler reacts to an event.
type Handler func(event Event)

// Bus provides in-process pub/sub for notifications.
type Bus struct {
	subscribers map[Type][]Handler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[Type][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(t Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[t] = append(b.subscribers[t], handler)
}

// Publish notifies subscribers of the event type.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		handler(event)
	}
}

// Toast publishes a toast message.
func (b *Bus) Toast(message string) {
	b.Publish(Event{Type: TypeToast, Message: message})
}

// NavigateBack publishes the navigate-back signal.
func (b *Bus) NavigateBack() {
	b.Publish(Event{Type: TypeNavigateBack})
}
