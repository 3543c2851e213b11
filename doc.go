// Package chaplin is a lifecycle and composition engine for trees of UI
// views backed by observable models and collections.
//
// A view owns a root element in a DOM-like tree, optionally observes a
// Model or Collection, and may own child views. Construction, rendering,
// and teardown follow a fixed sequence with overridable hooks:
//
//	NewView → element + binding setup → Initialize → auto-render → AfterInitialize
//	Render  → RenderContent or TemplateFunc → container attach → AfterRender
//	Dispose → subviews → mediator → listeners → own events → element → references
//
// View types embed *View and declare their behavior structurally: hook
// interfaces (Initializer, Renderer, Templater, ...) are detected on the
// embedding type, and BindingDeclarer supplies ordered tables of DOM event
// and listener bindings that accumulate additively down an embedding chain.
//
// Disposal is the load-bearing feature. A view disposed once is disposed
// forever: children are torn down in registration order before the parent
// releases its element, every subscription the view ever made is unwound,
// and all further mutating calls fail fast. Views also dispose themselves
// when their model or collection announces its own disposal, so a view
// never observes a dead data source.
//
// Templates are a-h/templ components produced by a TemplateFunc from
// extracted model data. The lib/dom package supplies the element tree and
// event dispatch, lib/events the emitter underlying models and views,
// lib/mediator the process-wide bus, and lib/state signed or encrypted
// model snapshot tokens.
package chaplin
