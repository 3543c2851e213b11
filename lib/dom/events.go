package dom

// Event is a dispatched DOM-like event. It bubbles from Target up to the
// tree root unless a handler stops propagation.
type Event struct {
	// Type is the event name ("click", "submit", ...).
	Type string
	// Target is the element Dispatch was called on.
	Target *Element
	// CurrentTarget is the element whose handler is currently running.
	CurrentTarget *Element
	// DelegateTarget is the descendant that matched a selector handler's
	// selector. For selector-less handlers it equals CurrentTarget.
	DelegateTarget *Element
	// Detail carries event payload supplied by the dispatcher.
	Detail any

	stopped          bool
	defaultPrevented bool
}

// StopPropagation prevents the event from bubbling past the current element.
// Remaining handlers on the current element still run.
func (ev *Event) StopPropagation() { ev.stopped = true }

// PropagationStopped reports whether StopPropagation was called.
func (ev *Event) PropagationStopped() bool { return ev.stopped }

// PreventDefault marks the event's default action as cancelled.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// HandlerFunc handles a dispatched event.
type HandlerFunc func(*Event)

type handler struct {
	id        int
	eventType string
	namespace string
	selector  string
	sel       compound
	fn        HandlerFunc
}

// On registers a delegated handler on e for the given event type.
//
// namespace tags the handler so Off can remove a related group without
// touching handlers registered under other namespaces. selector, when
// non-empty, restricts the handler to events whose target (or an ancestor of
// the target below e) matches it; the match is exposed as
// Event.DelegateTarget. Returns an idempotent unbind function.
func (e *Element) On(eventType, namespace, selector string, fn HandlerFunc) func() {
	e.mustBeElement("On")
	if eventType == "" {
		panic("dom: empty event type")
	}
	if fn == nil {
		panic("dom: nil handler")
	}
	h := handler{
		eventType: eventType,
		namespace: namespace,
		selector:  selector,
		fn:        fn,
	}
	if selector != "" {
		h.sel = mustParseSelector(selector)
	}
	e.handlerID++
	h.id = e.handlerID
	e.handlers = append(e.handlers, h)

	id := h.id
	return func() {
		for i, existing := range e.handlers {
			if existing.id == id {
				e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
				return
			}
		}
	}
}

// Off removes every handler on e registered under the given namespace.
func (e *Element) Off(namespace string) {
	kept := e.handlers[:0]
	for _, h := range e.handlers {
		if h.namespace != namespace {
			kept = append(kept, h)
		}
	}
	e.handlers = kept
}

// HandlerCount returns the number of handlers on e, optionally filtered by
// namespace ("" counts all).
func (e *Element) HandlerCount(namespace string) int {
	if namespace == "" {
		return len(e.handlers)
	}
	n := 0
	for _, h := range e.handlers {
		if h.namespace == namespace {
			n++
		}
	}
	return n
}

// Dispatch fires an event of the given type at e and bubbles it toward the
// root, running matching handlers at each ancestor. It returns the event so
// callers can inspect PreventDefault/StopPropagation outcomes.
func (e *Element) Dispatch(eventType string, detail any) *Event {
	ev := &Event{Type: eventType, Target: e, Detail: detail}
	for node := e; node != nil; node = node.parent {
		node.runHandlers(ev)
		if ev.stopped {
			break
		}
	}
	return ev
}

func (node *Element) runHandlers(ev *Event) {
	if len(node.handlers) == 0 {
		return
	}
	// Snapshot so handlers that bind or unbind do not affect this delivery.
	snapshot := make([]handler, len(node.handlers))
	copy(snapshot, node.handlers)

	for _, h := range snapshot {
		if h.eventType != ev.Type {
			continue
		}
		if h.selector == "" {
			ev.CurrentTarget = node
			ev.DelegateTarget = node
			h.fn(ev)
			continue
		}
		// Delegated: look for a match on the path from the target up to,
		// but not including, the element the handler is bound to.
		match := delegateMatch(ev.Target, node, h.sel)
		if match == nil {
			continue
		}
		ev.CurrentTarget = node
		ev.DelegateTarget = match
		h.fn(ev)
	}
}

func delegateMatch(target, bound *Element, sel compound) *Element {
	for n := target; n != nil && n != bound; n = n.parent {
		if sel.matches(n) {
			return n
		}
	}
	return nil
}
