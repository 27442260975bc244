package auth

import (
	"reflect"
	"sync"
)

// Event identifies a token lifecycle notification.
type Event string

const (
	// EventTokenInvalid fires when a token is absent from the configured
	// source or cannot be decoded. Carries the causing error.
	EventTokenInvalid Event = "token:invalid"
	// EventRefreshStart fires right before the refresh operation is
	// invoked. Carries no payload.
	EventRefreshStart Event = "refreshToken:start"
	// EventRefreshSuccess fires after the refresh operation resolved with a
	// complete token pair. Carries the new pair.
	EventRefreshSuccess Event = "refreshToken:success"
	// EventRefreshError fires when the refresh operation failed or resolved
	// with an incomplete pair. Carries the causing error.
	EventRefreshError Event = "refreshToken:error"
	// EventRefreshExpired fires when the refresh token itself is judged
	// expired before a refresh is attempted. Carries the causing error.
	EventRefreshExpired Event = "refreshToken:expired"
)

// Payload carries the data attached to a published event. At most one field
// is set, per the event's contract.
type Payload struct {
	Err  error
	Pair *TokenPair
}

// Handler reacts to a published event. An error returned by a handler stops
// dispatch of the remaining handlers and is returned by Publish.
type Handler func(p Payload) error

type subscription struct {
	id   uintptr
	fn   Handler
	once bool
}

// Bus is a synchronous, in-process publish/subscribe mechanism keyed by
// lifecycle event. Handlers for an event run in registration order, in the
// publishing goroutine. Subscribing the same handler function to the same
// event twice is a no-op.
type Bus struct {
	mu       sync.Mutex
	handlers map[Event][]subscription
}

// NewBus creates an empty notification bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[Event][]subscription)}
}

// Subscribe registers handler under event.
func (b *Bus) Subscribe(event Event, handler Handler) {
	b.add(event, handler, false)
}

// SubscribeOnce registers handler under event and removes it after its
// first invocation.
func (b *Bus) SubscribeOnce(event Event, handler Handler) {
	b.add(event, handler, true)
}

func (b *Bus) add(event Event, handler Handler, once bool) {
	if handler == nil {
		return
	}
	id := reflect.ValueOf(handler).Pointer()

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.handlers[event] {
		if s.id == id {
			return
		}
	}
	b.handlers[event] = append(b.handlers[event], subscription{id: id, fn: handler, once: once})
}

// Unsubscribe removes handler from event. Handlers that were never
// registered are ignored.
func (b *Bus) Unsubscribe(event Event, handler Handler) {
	if handler == nil {
		return
	}
	id := reflect.ValueOf(handler).Pointer()

	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[event]
	for i, s := range subs {
		if s.id == id {
			b.handlers[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish invokes every handler registered for event, in registration
// order, synchronously in the calling goroutine. The first handler error
// aborts dispatch and is returned to the caller.
func (b *Bus) Publish(event Event, p Payload) error {
	b.mu.Lock()
	subs := make([]subscription, len(b.handlers[event]))
	copy(subs, b.handlers[event])
	b.mu.Unlock()

	for _, s := range subs {
		if s.once {
			b.Unsubscribe(event, s.fn)
		}
		if err := s.fn(p); err != nil {
			return err
		}
	}
	return nil
}

// Teardown removes every handler for every event. It is called when the
// owning manager is discarded, so no subscriber closures are leaked.
func (b *Bus) Teardown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[Event][]subscription)
}
