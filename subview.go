package chaplin

// AddSubview registers child for disposal alongside the parent. Children
// are disposed in registration order, before the parent's own teardown.
// Registering the same child twice is a no-op for ordering.
func (v *View) AddSubview(child Disposable) {
	v.mustBeLive("AddSubview")
	if child == nil {
		panicUsage("AddSubview requires a non-nil subview")
	}
	for _, existing := range v.subviews {
		if existing == child {
			return
		}
	}
	v.subviews = append(v.subviews, child)
}

// Subview returns the named child, or nil when the name is unknown.
func (v *View) Subview(name string) Disposable {
	v.mustBeLive("Subview")
	if child, ok := v.subviewsByName[name]; ok {
		return child.(Disposable)
	}
	return nil
}

// SetSubview registers child under name, disposing and deregistering any
// previous holder of the name first. The child is also tracked for disposal
// as with AddSubview.
func (v *View) SetSubview(name string, child Disposable) {
	v.mustBeLive("SetSubview")
	if name == "" {
		panicUsage("SetSubview requires a non-empty name")
	}
	if child == nil {
		panicUsage("SetSubview requires a non-nil subview; use RemoveSubview to drop one")
	}
	if previous, ok := v.subviewsByName[name]; ok && previous != any(child) {
		previous.(Disposable).Dispose()
		v.removeSubview(previous)
		// A child may be registered under several names; disposing it
		// invalidates all of them.
		for alias, registered := range v.subviewsByName {
			if registered == previous {
				delete(v.subviewsByName, alias)
			}
		}
	}
	v.subviewsByName[name] = child
	v.AddSubview(child)
}

// RemoveSubview disposes a child and deregisters it, accepting either its
// name or the child itself. Unknown names and unregistered references are
// no-ops, so the child never outlives its registry entries.
func (v *View) RemoveSubview(ref any) {
	v.mustBeLive("RemoveSubview")
	var child any
	switch key := ref.(type) {
	case string:
		registered, ok := v.subviewsByName[key]
		if !ok {
			return
		}
		child = registered
	default:
		for _, existing := range v.subviews {
			if existing == ref {
				child = ref
				break
			}
		}
		if child == nil {
			return
		}
	}
	child.(Disposable).Dispose()
	v.removeSubview(child)
	for name, registered := range v.subviewsByName {
		if registered == child {
			delete(v.subviewsByName, name)
		}
	}
}

func (v *View) removeSubview(child any) {
	for i, existing := range v.subviews {
		if existing == child {
			v.subviews = append(v.subviews[:i], v.subviews[i+1:]...)
			return
		}
	}
}
