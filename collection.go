package chaplin

import "github.com/agilemobiledev/chaplin/lib/events"

// Collection is an ordered, observable list of models.
//
// Add triggers "add" with (collection, model), Remove triggers "remove"
// with (collection, model), Reset triggers "reset" with (collection).
// The collection does not own its models: Dispose clears its slice and
// triggers "dispose" without disposing the models themselves.
type Collection struct {
	*events.Emitter
	models   []*Model
	disposed bool
}

// NewCollection creates a collection over the given models.
func NewCollection(models ...*Model) *Collection {
	c := &Collection{Emitter: events.NewEmitter()}
	c.models = append(c.models, models...)
	return c
}

// Add appends a model and triggers "add".
func (c *Collection) Add(m *Model) {
	if c.disposed || m == nil {
		return
	}
	c.models = append(c.models, m)
	c.Trigger("add", c, m)
}

// Remove removes a model and triggers "remove". Unknown models are ignored.
func (c *Collection) Remove(m *Model) {
	if c.disposed {
		return
	}
	for i, existing := range c.models {
		if existing == m {
			c.models = append(c.models[:i], c.models[i+1:]...)
			c.Trigger("remove", c, m)
			return
		}
	}
}

// Reset replaces the contents wholesale and triggers "reset".
func (c *Collection) Reset(models ...*Model) {
	if c.disposed {
		return
	}
	c.models = append(c.models[:0:0], models...)
	c.Trigger("reset", c)
}

// Models returns a copy of the model list.
func (c *Collection) Models() []*Model {
	return append([]*Model(nil), c.models...)
}

// At returns the model at index i, or nil when out of range.
func (c *Collection) At(i int) *Model {
	if i < 0 || i >= len(c.models) {
		return nil
	}
	return c.models[i]
}

// Length returns the number of models.
func (c *Collection) Length() int { return len(c.models) }

// Serialize returns each model's attribute snapshot, in order.
func (c *Collection) Serialize() []map[string]any {
	out := make([]map[string]any, len(c.models))
	for i, m := range c.models {
		out[i] = m.Attributes()
	}
	return out
}

// Dispose triggers "dispose", drops handlers and contents, and marks the
// collection disposed. Idempotent. Models are shared and survive.
func (c *Collection) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.Trigger("dispose", c)
	c.OffAll()
	c.models = nil
}

// Disposed reports whether Dispose has completed.
func (c *Collection) Disposed() bool { return c.disposed }
