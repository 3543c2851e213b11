package chaplin

import (
	"strings"

	"github.com/agilemobiledev/chaplin/lib/dom"
)

// Delegate binds an ad-hoc handler to the view's root element under the
// view's private namespace and returns an unbind function. eventTypes is
// one or more space-separated event names; the handler is bound to each.
// With a selector, the handler fires only when the event target (or an
// ancestor below the root) matches it; without one it fires for any event
// reaching the root.
//
// Handlers bound with Delegate survive DelegateEvents refreshes; they are
// removed by the returned function, Undelegate, or disposal.
func (v *View) Delegate(eventTypes string, selector string, handler dom.HandlerFunc) func() {
	v.mustBeLive("Delegate")
	names := strings.Fields(eventTypes)
	if len(names) == 0 {
		panicUsage("Delegate requires a non-empty event type")
	}
	if handler == nil {
		panicUsage("Delegate requires a non-nil handler")
	}
	unbinds := make([]func(), len(names))
	for i, name := range names {
		unbinds[i] = v.el.On(name, "delegate-"+v.cid, selector, handler)
	}
	return func() {
		for _, unbind := range unbinds {
			unbind()
		}
	}
}

// Undelegate removes every handler bound through Delegate. Declarative
// bindings from the binding tables are untouched.
func (v *View) Undelegate() {
	v.mustBeLive("Undelegate")
	v.el.Off("delegate-" + v.cid)
}

// DelegateEvents drops every declarative event binding and rebinds. With no
// arguments it binds the accumulated binding tables; with explicit tables it
// binds only those. Safe to call repeatedly: each "event selector" key ends
// up bound exactly once, with later tables (the most derived type's) winning
// key collisions. Called during construction and by SetElement.
func (v *View) DelegateEvents(tables ...EventMap) {
	v.mustBeLive("DelegateEvents")
	if len(tables) == 0 {
		tables = v.declaredEventTables()
	}
	ns := "delegateEvents-" + v.cid
	v.el.Off(ns)
	for key, handler := range v.flattenTables(tables) {
		eventType, selector := splitEventKey(key)
		v.el.On(eventType, ns, selector, handler)
	}
}

func (v *View) declaredEventTables() []EventMap {
	bindings := v.collectBindings()
	tables := make([]EventMap, 0, len(bindings))
	for _, b := range bindings {
		tables = append(tables, b.Events)
	}
	return tables
}

// flattenTables merges event tables root-most first, so a later table's
// entry for the same key shadows an earlier one's.
func (v *View) flattenTables(tables []EventMap) map[string]dom.HandlerFunc {
	out := make(map[string]dom.HandlerFunc)
	for _, table := range tables {
		for key, value := range table {
			if strings.TrimSpace(key) == "" {
				panicConfig("empty event key in bindings of %T", v.owner)
			}
			out[key] = v.resolveEventCallback(key, value)
		}
	}
	return out
}

// splitEventKey separates "click .item" into the event type and the
// delegation selector; a bare "click" yields an empty selector.
func splitEventKey(key string) (eventType, selector string) {
	key = strings.TrimSpace(key)
	if i := strings.IndexAny(key, " \t"); i >= 0 {
		return key[:i], strings.TrimSpace(key[i+1:])
	}
	return key, ""
}
