package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses an HTML fragment into detached nodes. The fragment is
// parsed in a <div> context, so top-level <html>/<head>/<body> tags are not
// expected.
func ParseFragment(markup string) ([]*Element, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, err
	}
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		if converted := convert(n); converted != nil {
			out = append(out, converted)
		}
	}
	return out, nil
}

// SetHTML replaces e's children with the parsed fragment. Handlers on the
// replaced children are dropped; handlers on e itself survive, which is what
// makes delegated re-rendering cheap.
func (e *Element) SetHTML(markup string) error {
	e.mustBeElement("SetHTML")
	nodes, err := ParseFragment(markup)
	if err != nil {
		return err
	}
	e.Empty()
	for _, n := range nodes {
		e.AppendChild(n)
	}
	return nil
}

func convert(n *html.Node) *Element {
	switch n.Type {
	case html.TextNode:
		return NewText(n.Data)
	case html.ElementNode:
		el := NewElement(n.Data)
		for _, a := range n.Attr {
			el.attrs[a.Key] = a.Val
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	default:
		// Comments, doctypes etc. are irrelevant to the view layer.
		return nil
	}
}
