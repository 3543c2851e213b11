package chaplin

// Dispose tears the view down, one way and permanently. Calling it on an
// already-disposed view is a no-op.
//
// Teardown order: owned subviews first (registration order), then mediator
// subscriptions, then model/collection/self listeners, then handlers on the
// view's own event stream, then the root element (detached with every
// delegated handler below it), and finally every external reference is
// released and the disposed flag set. Every other mutating operation checks
// the flag and fails fast afterwards; Render alone degrades to a silent
// false.
func (v *View) Dispose() {
	if v.disposed {
		return
	}
	if v.subviewsByName == nil {
		panicContract("Dispose on %T, which was not constructed with NewView", v.owner)
	}

	for _, child := range v.subviews {
		child.(Disposable).Dispose()
	}
	for _, unbind := range v.busUnsubs {
		unbind()
	}
	for _, unbind := range v.listeners {
		unbind()
	}
	v.OffAll()
	if v.el != nil {
		v.el.Remove()
	}

	v.el = nil
	v.model = nil
	v.collection = nil
	v.container = nil
	v.subviews = nil
	v.subviewsByName = nil
	v.listeners = nil
	v.busUnsubs = nil
	v.opts = Options{}

	v.disposed = true
}
