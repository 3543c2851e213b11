package chaplin

import (
	"reflect"

	"github.com/agilemobiledev/chaplin/lib/dom"
	"github.com/agilemobiledev/chaplin/lib/events"
)

// EventMap declares delegated DOM bindings. Keys are "<event>" or
// "<event> <selector>"; values are a dom.HandlerFunc, a func(*dom.Event),
// a func(), or a string naming a method on the embedding type with one of
// those signatures.
type EventMap map[string]any

// ListenMap declares listener bindings. Keys are "<event> <target>" with
// target one of "model", "collection", "mediator", or empty (the view's own
// event stream); values are an events.Handler, a func(...any), a func(), or
// a string naming a method on the embedding type.
type ListenMap map[string]any

// Bindings is one level's declarative binding tables.
type Bindings struct {
	Events EventMap
	Listen ListenMap
}

// BindingDeclarer is implemented by view types that declare bindings.
//
// Accumulation across an embedding chain is explicit and additive: each
// level appends its own tables to the level below, so the slice is ordered
// root-most first and subclass tables supplement rather than replace their
// ancestors':
//
//	func (v *ItemView) Bindings() []chaplin.Bindings {
//	    return append(v.ListView.Bindings(), chaplin.Bindings{
//	        Events: chaplin.EventMap{"click .remove": "OnRemove"},
//	    })
//	}
//
// The base *View declares nothing, so a type embedding it directly returns
// its own tables only.
type BindingDeclarer interface {
	Bindings() []Bindings
}

func (v *View) collectBindings() []Bindings {
	if d, ok := v.owner.(BindingDeclarer); ok {
		return d.Bindings()
	}
	return nil
}

// resolveListenCallback turns a ListenMap value into an events.Handler.
// Named methods are looked up on the embedding type; a missing or
// incompatible method is a configuration error.
func (v *View) resolveListenCallback(key string, value any) events.Handler {
	switch fn := value.(type) {
	case events.Handler:
		return fn
	case func(...any):
		return fn
	case func():
		return func(...any) { fn() }
	case string:
		m := v.lookupMethod(key, fn)
		switch bound := m.(type) {
		case func(...any):
			return bound
		case func():
			return func(...any) { bound() }
		}
		panicConfig("method %q bound to %q must be func(...any) or func()", fn, key)
	default:
		panicConfig("binding %q has unsupported value type %T", key, value)
	}
	return nil
}

// resolveEventCallback turns an EventMap value into a dom.HandlerFunc.
func (v *View) resolveEventCallback(key string, value any) dom.HandlerFunc {
	switch fn := value.(type) {
	case dom.HandlerFunc:
		return fn
	case func(*dom.Event):
		return fn
	case func():
		return func(*dom.Event) { fn() }
	case string:
		m := v.lookupMethod(key, fn)
		switch bound := m.(type) {
		case func(*dom.Event):
			return bound
		case func():
			return func(*dom.Event) { bound() }
		}
		panicConfig("method %q bound to %q must be func(*dom.Event) or func()", fn, key)
	default:
		panicConfig("binding %q has unsupported value type %T", key, value)
	}
	return nil
}

func (v *View) lookupMethod(key, name string) any {
	m := reflect.ValueOf(v.owner).MethodByName(name)
	if !m.IsValid() {
		panicConfig("binding %q names method %q, which does not exist on %T", key, name, v.owner)
	}
	return m.Interface()
}
