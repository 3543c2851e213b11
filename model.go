package chaplin

import (
	"github.com/agilemobiledev/chaplin/lib/events"
	"github.com/agilemobiledev/chaplin/lib/state"
)

// Observable is the event-stream contract the view layer binds to. Models,
// collections, and views all satisfy it.
type Observable interface {
	On(name string, fn events.Handler) func()
}

// Modeler is what a view needs from its model: an event stream plus an
// attribute snapshot for template data. *Model satisfies it; richer domain
// models can substitute their own implementation.
type Modeler interface {
	Observable
	Attributes() map[string]any
}

// Collectioner is what a view needs from its collection.
type Collectioner interface {
	Observable
	Serialize() []map[string]any
	Length() int
}

// DeferredSource is a capability query: sources that know whether their data
// has arrived yet expose it, and default template data gains a "resolved"
// flag.
type DeferredSource interface {
	Resolved() bool
}

// SyncedSource is the companion capability for sources that track
// synchronization state; default template data gains a "synced" flag.
type SyncedSource interface {
	Synced() bool
}

// Model is a minimal observable attribute bag.
//
// Set triggers "change:<name>" with (model, value) and then "change" with
// (model). Dispose triggers "dispose" with (model) exactly once; views
// observing the model dispose themselves in response.
type Model struct {
	*events.Emitter
	attrs    map[string]any
	disposed bool
}

// NewModel creates a model with a copy of the given attributes.
func NewModel(attrs map[string]any) *Model {
	m := &Model{Emitter: events.NewEmitter(), attrs: make(map[string]any, len(attrs))}
	for k, v := range attrs {
		m.attrs[k] = v
	}
	return m
}

// Get returns the named attribute, or nil.
func (m *Model) Get(name string) any {
	return m.attrs[name]
}

// Has reports whether the named attribute is present.
func (m *Model) Has(name string) bool {
	_, ok := m.attrs[name]
	return ok
}

// Set stores an attribute and triggers change events.
func (m *Model) Set(name string, value any) {
	if m.disposed {
		return
	}
	m.attrs[name] = value
	m.Trigger("change:"+name, m, value)
	m.Trigger("change", m)
}

// SetAll stores every attribute, triggering per-key change events and a
// single trailing "change".
func (m *Model) SetAll(attrs map[string]any) {
	if m.disposed || len(attrs) == 0 {
		return
	}
	for name, value := range attrs {
		m.attrs[name] = value
		m.Trigger("change:"+name, m, value)
	}
	m.Trigger("change", m)
}

// Unset removes an attribute, triggering change events if it existed.
func (m *Model) Unset(name string) {
	if m.disposed {
		return
	}
	if _, ok := m.attrs[name]; !ok {
		return
	}
	delete(m.attrs, name)
	m.Trigger("change:"+name, m, nil)
	m.Trigger("change", m)
}

// Attributes returns a copy of the attribute map.
func (m *Model) Attributes() map[string]any {
	out := make(map[string]any, len(m.attrs))
	for k, v := range m.attrs {
		out[k] = v
	}
	return out
}

// Dispose triggers "dispose", drops all handlers and attributes, and marks
// the model disposed. Idempotent.
func (m *Model) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	m.Trigger("dispose", m)
	m.OffAll()
	m.attrs = nil
}

// Disposed reports whether Dispose has completed.
func (m *Model) Disposed() bool { return m.disposed }

// Snapshot packs the model's attributes into a state token.
func (m *Model) Snapshot(codec *state.Codec, sensitive bool) (string, error) {
	return codec.Encode(m.attrs, sensitive)
}

// RestoreModel rebuilds a model from a state token produced by Snapshot.
func RestoreModel(codec *state.Codec, token string, sensitive bool) (*Model, error) {
	attrs, err := codec.Decode(token, sensitive)
	if err != nil {
		return nil, err
	}
	return NewModel(attrs), nil
}
