package chaplin

import "github.com/a-h/templ"

// StaticTemplate adapts a fixed templ component into a TemplateFunc, for
// views whose markup does not depend on model data.
func StaticTemplate(c templ.Component) TemplateFunc {
	return func(map[string]any) templ.Component { return c }
}

// HTMLTemplate adapts a raw markup string into a TemplateFunc. The markup is
// emitted verbatim, so it must come from a trusted source.
func HTMLTemplate(markup string) TemplateFunc {
	return StaticTemplate(templ.Raw(markup))
}
