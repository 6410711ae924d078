package model

import "sync"

// Handler is invoked when an event fires.
type Handler func()

// Subscription identifies a handler registered with an Event.
type Subscription uint64

// Event is a list of handlers that are invoked in subscription order.
type Event struct {
	mu       sync.Mutex
	next     Subscription
	handlers []subscriber
}

type subscriber struct {
	id      Subscription
	handler Handler
}

// Subscribe registers handler and returns a handle for Unsubscribe.
func (e *Event) Subscribe(handler Handler) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.next++
	e.handlers = append(e.handlers, subscriber{id: e.next, handler: handler})
	return e.next
}

// Unsubscribe removes a handler. Unknown handles are ignored.
func (e *Event) Unsubscribe(id Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, s := range e.handlers {
		if s.id == id {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			return
		}
	}
}

// Fire invokes every handler subscribed at the time of the call.
func (e *Event) Fire() {
	e.mu.Lock()
	snapshot := make([]subscriber, len(e.handlers))
	copy(snapshot, e.handlers)
	e.mu.Unlock()

	for _, s := range snapshot {
		s.handler()
	}
}

// Len reports the number of subscribed handlers.
func (e *Event) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}
