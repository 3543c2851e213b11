package chaplin

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/a-h/templ"

	"github.com/agilemobiledev/chaplin/lib/dom"
	"github.com/agilemobiledev/chaplin/lib/events"
)

// Convenience aliases so embedders rarely need to import lib/dom directly.
type (
	// Element is the DOM-like node views render into.
	Element = dom.Element
	// Event is a dispatched DOM-like event.
	Event = dom.Event
)

// NewElement creates a detached element, re-exported from lib/dom for
// callers that only need basic tree construction.
func NewElement(tag string) *Element { return dom.NewElement(tag) }

// TemplateFunc produces the view's markup from extracted template data.
type TemplateFunc func(data map[string]any) templ.Component

// Lifecycle hook interfaces, checked on the embedding type. The base view's
// outer methods (NewView's construction sequence and View.Render) always run
// the hook and then the corresponding post-hook, so the sequencing is
// structural rather than detected at runtime.

// Initializer runs after the base setup (element, bindings, registries)
// completes, with the full options snapshot including Extra. Hooks receive
// the base view explicitly because they can fire during NewView, before the
// caller has assigned the returned *View to its embedded field.
type Initializer interface {
	Initialize(v *View, opts Options)
}

// AfterInitializer runs after initialization, following the base post-hook
// (which auto-renders when Options.AutoRender is set).
type AfterInitializer interface {
	AfterInitialize(v *View)
}

// Renderer replaces the default template render with custom content
// production. The post-render phase (container attach, AfterRenderer) still
// runs afterwards.
type Renderer interface {
	RenderContent(v *View)
}

// AfterRenderer runs after each render, following the base post-hook (which
// inserts the element into the configured container).
type AfterRenderer interface {
	AfterRender(v *View)
}

// Templater supplies the view's template function. Views that render with
// the default pipeline must implement it; rendering without it panics with a
// must-be-overridden configuration error. Views that never render are
// unaffected.
type Templater interface {
	TemplateFunc() TemplateFunc
}

// TemplateDataProvider replaces the default model/collection extraction.
type TemplateDataProvider interface {
	TemplateData() map[string]any
}

// Disposable is the capability the subview registry requires of children.
type Disposable interface {
	Dispose()
}

var cidCounter int64

func newCID() string {
	return "view-" + strconv.FormatInt(atomic.AddInt64(&cidCounter, 1), 10)
}

// View is the composable, disposable unit at the heart of the library.
//
// User view types embed *View and construct it with NewView, passing
// themselves as owner so the base can find their hook and binding
// implementations:
//
//	type ItemView struct {
//	    *chaplin.View
//	}
//
//	func NewItemView(m *chaplin.Model) *ItemView {
//	    iv := &ItemView{}
//	    iv.View = chaplin.NewView(iv, chaplin.Options{Model: m})
//	    return iv
//	}
//
// The View's own event stream is the embedded emitter: On, Once, Off,
// Trigger.
type View struct {
	*events.Emitter

	owner any
	cid   string
	el    *Element
	opts  Options

	model      Modeler
	collection Collectioner

	autoRender      bool
	container       any
	containerMethod string

	subviews       []any
	subviewsByName map[string]any

	// listeners holds unbind functions for every ListenTo subscription
	// (model, collection, self); busUnsubs tracks mediator subscriptions,
	// kept apart because the bus is process-wide and unwound first.
	listeners []func()
	busUnsubs []func()

	initialized bool
	disposed    bool
}

// NewView runs the base construction sequence for owner and returns the
// configured View for embedding. The sequence is fixed: element and registry
// setup, declarative binding resolution, the owner's Initialize hook, then
// the post-initialize phase (auto-render, AfterInitialize).
func NewView(owner any, opts Options) *View {
	if owner == nil {
		panicUsage("NewView requires a non-nil owner")
	}

	v := &View{
		Emitter:         events.NewEmitter(),
		owner:           owner,
		cid:             newCID(),
		opts:            opts,
		model:           opts.Model,
		collection:      opts.Collection,
		autoRender:      opts.AutoRender,
		container:       opts.Container,
		containerMethod: opts.containerMethod(),
		subviewsByName:  make(map[string]any),
	}
	v.el = v.buildElement(opts)
	v.initialized = true

	// A view follows its model/collection out of existence. Bound before
	// any declared listener so self-disposal precedes other reactions.
	// Dispatched through the owner so a Dispose override participates.
	selfDispose := func(...any) {
		if d, ok := owner.(Disposable); ok {
			d.Dispose()
			return
		}
		v.Dispose()
	}
	if v.model != nil {
		v.ListenTo(v.model, "dispose", selfDispose)
	}
	if v.collection != nil {
		v.ListenTo(v.collection, "dispose", selfDispose)
	}

	v.bindDeclaredListeners()
	v.DelegateEvents()

	if init, ok := owner.(Initializer); ok {
		init.Initialize(v, opts)
	}
	// Post-initialize phase.
	if v.autoRender {
		v.Render()
	}
	if after, ok := owner.(AfterInitializer); ok {
		after.AfterInitialize(v)
	}

	return v
}

func (v *View) buildElement(opts Options) *Element {
	if opts.El != nil {
		return opts.El
	}
	el := dom.NewElement(opts.tagName())
	if opts.ClassName != "" {
		el.SetAttr("class", opts.ClassName)
	}
	if opts.ID != "" {
		el.SetAttr("id", opts.ID)
	}
	for name, value := range opts.Attributes {
		el.SetAttr(name, value)
	}
	return el
}

// CID returns the view's process-unique identity token. It namespaces all
// delegated handlers, so views sharing DOM regions never disturb each
// other's bindings.
func (v *View) CID() string { return v.cid }

// El returns the view's root element, nil once disposed.
func (v *View) El() *Element { return v.el }

// Model returns the observed model reference, nil once disposed.
func (v *View) Model() Modeler { return v.model }

// Collection returns the observed collection reference, nil once disposed.
func (v *View) Collection() Collectioner { return v.collection }

// Options returns the construction options snapshot.
func (v *View) Options() Options { return v.opts }

// Disposed reports whether the disposal cascade has completed.
func (v *View) Disposed() bool { return v.disposed }

// SetElement replaces the view's root element, releasing the view's
// handlers on the old one and rebinding declarative events onto the
// replacement. Ad-hoc Delegate bindings are not carried over.
func (v *View) SetElement(el *Element) {
	v.mustBeLive("SetElement")
	if el == nil {
		panicUsage("SetElement requires a non-nil element")
	}
	v.el.Off("delegateEvents-" + v.cid)
	v.el.Off("delegate-" + v.cid)
	v.el = el
	v.DelegateEvents()
}

// Render produces the view's content and runs the post-render phase.
//
// On a disposed view it returns false without touching the DOM or raising.
// Otherwise: the owner's RenderContent hook runs if implemented, else the
// default pipeline renders TemplateFunc over TemplateData into the root
// element; then the element is inserted into the configured container (once
// per render; emits "addedToDOM") and the owner's AfterRender hook runs.
func (v *View) Render() bool {
	if v.disposed {
		return false
	}
	if r, ok := v.owner.(Renderer); ok {
		r.RenderContent(v)
	} else {
		v.renderTemplate()
	}
	v.Attach()
	if after, ok := v.owner.(AfterRenderer); ok {
		after.AfterRender(v)
	}
	return true
}

func (v *View) renderTemplate() {
	t, ok := v.owner.(Templater)
	if !ok {
		panicConfig("TemplateFunc must be overridden: %T does not implement chaplin.Templater", v.owner)
	}
	tmpl := t.TemplateFunc()
	if tmpl == nil {
		panicConfig("TemplateFunc on %T returned nil", v.owner)
	}

	component := tmpl(v.templateData())
	if component == nil {
		return
	}
	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		panicConfig("template for %T failed: %v", v.owner, err)
	}
	if err := v.el.SetHTML(buf.String()); err != nil {
		panicConfig("template for %T produced unparsable markup: %v", v.owner, err)
	}
}

// templateData extracts the data handed to the template: the owner's
// TemplateData override when present, otherwise the model's attributes or
// the collection's serialized items. The extraction is augmented with
// "resolved"/"synced" flags when the source exposes the capability and the
// key is not already taken.
func (v *View) templateData() map[string]any {
	var data map[string]any
	if p, ok := v.owner.(TemplateDataProvider); ok {
		data = p.TemplateData()
	} else if v.model != nil {
		data = v.model.Attributes()
	} else if v.collection != nil {
		data = map[string]any{
			"items":  v.collection.Serialize(),
			"length": v.collection.Length(),
		}
	}
	if data == nil {
		data = make(map[string]any)
	}

	var source any
	if v.model != nil {
		source = v.model
	} else if v.collection != nil {
		source = v.collection
	}
	if d, ok := source.(DeferredSource); ok {
		if _, taken := data["resolved"]; !taken {
			data["resolved"] = d.Resolved()
		}
	}
	if s, ok := source.(SyncedSource); ok {
		if _, taken := data["synced"]; !taken {
			data["synced"] = s.Synced()
		}
	}
	return data
}

// Attach inserts the root element into the configured container using the
// configured method and emits "addedToDOM". Without a container, or when a
// string selector resolves to nothing, it is a no-op. Called automatically
// after each render; exposed for AfterRenderer implementations that take
// over the post-render phase.
func (v *View) Attach() {
	v.mustBeLive("Attach")
	target := v.resolveContainer()
	if target == nil {
		return
	}
	switch v.containerMethod {
	case "append":
		target.AppendChild(v.el)
	case "prepend":
		target.PrependChild(v.el)
	case "before":
		target.Before(v.el)
	case "after":
		target.After(v.el)
	default:
		panicConfig("unknown container method %q", v.containerMethod)
	}
	v.Trigger("addedToDOM")
}

func (v *View) resolveContainer() *Element {
	switch c := v.container.(type) {
	case nil:
		return nil
	case *Element:
		return c
	case string:
		if strings.TrimSpace(c) == "" {
			return nil
		}
		return dom.Root().Find(c)
	default:
		panicConfig("container must be a string selector or *chaplin.Element, got %T", v.container)
	}
	return nil
}

func (v *View) mustBeLive(op string) {
	if v.disposed {
		panicUsage("%s on a disposed view", op)
	}
	if !v.initialized {
		panicContract("%s on a view that was not constructed with NewView", op)
	}
}
