// Package mediator is the process-wide publish/subscribe channel that views
// use to communicate without holding references to one another.
//
// The bus outlives any single view, so subscribers are responsible for
// unsubscribing; the view layer does this for declarative bindings during
// its disposal cascade.
package mediator

import "github.com/agilemobiledev/chaplin/lib/events"

var bus = events.NewEmitter()

// Subscribe binds fn to the named channel event and returns an idempotent
// unsubscribe function.
func Subscribe(name string, fn events.Handler) func() {
	return bus.On(name, fn)
}

// SubscribeOnce binds fn for a single delivery.
func SubscribeOnce(name string, fn events.Handler) func() {
	return bus.Once(name, fn)
}

// Publish delivers an event to every subscriber, synchronously.
func Publish(name string, args ...any) {
	bus.Trigger(name, args...)
}

// HasSubscribers reports whether anything is listening on the named event.
func HasSubscribers(name string) bool {
	return bus.HasListeners(name)
}

// Reset drops every subscription. Intended for tests.
func Reset() {
	bus.OffAll()
}
