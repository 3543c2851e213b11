package chaplin

// Options configures a view at construction. All fields are optional.
//
// A fixed subset (AutoRender, Container, ContainerMethod) drives the base
// lifecycle; Model and Collection become the view's observed references; the
// element fields shape the root element when no existing element is adopted
// via El. Anything the base view does not recognize goes in Extra and is
// available to the embedding type's Initialize hook through the options
// snapshot.
type Options struct {
	// AutoRender renders the view immediately after initialization.
	AutoRender bool

	// Container is where the rendered element is inserted: a *dom.Element,
	// or a string selector resolved against dom.Root(). Nil disables
	// automatic insertion.
	Container any

	// ContainerMethod is the insertion operation: "append" (default),
	// "prepend", "before", or "after".
	ContainerMethod string

	// Model is the observed model reference. Shared, never owned: the view
	// subscribes but does not control its lifetime. The view disposes
	// itself when the model signals "dispose".
	Model Modeler

	// Collection is the observed collection reference; same ownership rules
	// as Model.
	Collection Collectioner

	// El adopts an existing element as the view's root instead of creating
	// one.
	El *Element

	// TagName is the created root element's tag. Defaults to "div".
	TagName string

	// ClassName is applied as the created root element's class attribute.
	ClassName string

	// ID is applied as the created root element's id attribute.
	ID string

	// Attributes are extra attributes for the created root element.
	Attributes map[string]string

	// Extra carries options the base view does not interpret.
	Extra map[string]any
}

const defaultContainerMethod = "append"

func (o Options) containerMethod() string {
	if o.ContainerMethod == "" {
		return defaultContainerMethod
	}
	return o.ContainerMethod
}

func (o Options) tagName() string {
	if o.TagName == "" {
		return "div"
	}
	return o.TagName
}
