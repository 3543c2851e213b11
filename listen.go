package chaplin

import (
	"strings"

	"github.com/agilemobiledev/chaplin/lib/events"
	"github.com/agilemobiledev/chaplin/lib/mediator"
)

// ListenTo subscribes handler to event on target and registers the
// subscription for teardown at disposal. The returned function unbinds
// early; calling it after disposal is harmless.
func (v *View) ListenTo(target Observable, event string, handler events.Handler) func() {
	v.mustBeLive("ListenTo")
	if target == nil {
		panicUsage("ListenTo requires a non-nil target")
	}
	if strings.TrimSpace(event) == "" {
		panicUsage("ListenTo requires a non-empty event name")
	}
	unbind := target.On(event, handler)
	v.listeners = append(v.listeners, unbind)
	return unbind
}

// StopListening unbinds every subscription made through ListenTo and the
// declarative listen tables. Mediator subscriptions are unaffected; they
// unwind only at disposal.
func (v *View) StopListening() {
	v.mustBeLive("StopListening")
	for _, unbind := range v.listeners {
		unbind()
	}
	v.listeners = nil
}

// SubscribeEvent subscribes handler to a mediator event and registers the
// subscription for teardown at disposal.
func (v *View) SubscribeEvent(event string, handler events.Handler) func() {
	v.mustBeLive("SubscribeEvent")
	unbind := mediator.Subscribe(event, handler)
	v.busUnsubs = append(v.busUnsubs, unbind)
	return unbind
}

// PublishEvent publishes on the mediator bus.
func (v *View) PublishEvent(event string, args ...any) {
	v.mustBeLive("PublishEvent")
	mediator.Publish(event, args...)
}

// bindDeclaredListeners resolves the accumulated Listen tables. Keys name
// an event and a target: "change model", "add collection", "login mediator",
// or a bare "customEvent" for the view's own stream. Bindings against an
// absent model or collection are skipped; the table is resolved once, at
// construction, so a source assigned later is never picked up.
func (v *View) bindDeclaredListeners() {
	for _, b := range v.collectBindings() {
		for key, value := range b.Listen {
			event, target := splitListenKey(key)
			if event == "" {
				panicConfig("empty listen key in bindings of %T", v.owner)
			}
			handler := v.resolveListenCallback(key, value)
			switch target {
			case "model":
				if v.model != nil {
					v.ListenTo(v.model, event, handler)
				}
			case "collection":
				if v.collection != nil {
					v.ListenTo(v.collection, event, handler)
				}
			case "mediator":
				v.SubscribeEvent(event, handler)
			case "", "this":
				v.ListenTo(v.Emitter, event, handler)
			default:
				panicConfig("listen key %q targets unknown source %q", key, target)
			}
		}
	}
}

// splitListenKey separates "change:title model" into the event name and the
// target keyword; a bare event name yields an empty target.
func splitListenKey(key string) (event, target string) {
	key = strings.TrimSpace(key)
	if i := strings.LastIndexAny(key, " \t"); i >= 0 {
		return strings.TrimSpace(key[:i]), strings.TrimSpace(key[i+1:])
	}
	return key, ""
}
