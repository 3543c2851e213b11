// Package events provides the named-event publish/subscribe primitive that
// models, collections, mediator, and views are built on.
//
// An Emitter dispatches synchronously: Trigger runs every handler bound to
// the event name, in registration order, before it returns. Subscribing
// returns an unbind function rather than requiring the caller to hold on to
// the handler value for removal:
//
//	unbind := emitter.On("change", onChange)
//	defer unbind()
//
// Unbind functions are idempotent - calling one twice is a no-op.
package events

import "sync"

// Handler is the callback signature for emitter events. Arguments are
// whatever the triggering side passed to Trigger.
type Handler func(args ...any)

// binding is one registered handler. once bindings remove themselves before
// the handler body runs.
type binding struct {
	id   int
	fn   Handler
	once bool
}

// Emitter is a synchronous named-event dispatcher.
//
// The zero value is not usable; create with NewEmitter. Emitter is safe for
// concurrent subscription bookkeeping, but handlers themselves run on the
// triggering goroutine.
type Emitter struct {
	mu       sync.Mutex
	bindings map[string][]binding
	nextID   int
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{bindings: make(map[string][]binding)}
}

// On binds fn to the named event and returns an unbind function.
func (e *Emitter) On(name string, fn Handler) func() {
	return e.add(name, fn, false)
}

// Once binds fn to the named event for a single delivery. The binding is
// removed before fn runs, so a handler that re-triggers the same event does
// not recurse into itself.
func (e *Emitter) Once(name string, fn Handler) func() {
	return e.add(name, fn, true)
}

func (e *Emitter) add(name string, fn Handler, once bool) func() {
	if fn == nil {
		panic("events: nil handler")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.bindings[name] = append(e.bindings[name], binding{id: id, fn: fn, once: once})

	return func() {
		e.removeID(name, id)
	}
}

func (e *Emitter) removeID(name string, id int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.bindings[name]
	for i, b := range list {
		if b.id == id {
			e.bindings[name] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Off removes every handler bound to the named event.
func (e *Emitter) Off(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.bindings, name)
}

// OffAll removes every handler for every event.
func (e *Emitter) OffAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindings = make(map[string][]binding)
}

// Trigger invokes every handler bound to the named event, in registration
// order, passing args through. Handlers bound while Trigger runs are not
// invoked for this delivery.
func (e *Emitter) Trigger(name string, args ...any) {
	e.mu.Lock()
	list := e.bindings[name]
	snapshot := make([]binding, len(list))
	copy(snapshot, list)
	e.mu.Unlock()

	for _, b := range snapshot {
		if b.once {
			e.removeID(name, b.id)
		}
		b.fn(args...)
	}
}

// HasListeners reports whether any handler is bound to the named event.
func (e *Emitter) HasListeners(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.bindings[name]) > 0
}
