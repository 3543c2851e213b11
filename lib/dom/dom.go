// Package dom implements the DOM-like node tree that views render into.
//
// The package stays deliberately small: element and text nodes, attribute
// and class helpers, the four insertion operations views use (append,
// prepend, before, after), removal that also drops delegated handlers on the
// detached subtree, markup parsing via golang.org/x/net/html, and delegated
// event dispatch with per-namespace removal.
//
// Selectors are a compound subset: an optional tag name followed by any
// combination of #id, .class, and [attr] / [attr=val] qualifiers. There are
// no combinators - Find walks descendants with a compound selector, which is
// all the view layer needs.
package dom

import (
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// NodeType distinguishes element nodes from text nodes.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Element is a node in the tree. Text nodes carry text and no tag,
// attributes, children, or handlers.
type Element struct {
	nodeType NodeType
	tag      string
	text     string
	attrs    map[string]string
	parent   *Element
	children []*Element

	handlers  []handler
	handlerID int
}

// NewElement creates a detached element node with the given tag.
func NewElement(tag string) *Element {
	if tag == "" {
		panic("dom: empty tag name")
	}
	return &Element{nodeType: ElementNode, tag: strings.ToLower(tag), attrs: make(map[string]string)}
}

// NewText creates a detached text node.
func NewText(text string) *Element {
	return &Element{nodeType: TextNode, text: text}
}

// Type returns the node type.
func (e *Element) Type() NodeType { return e.nodeType }

// Tag returns the element's tag name, or "" for text nodes.
func (e *Element) Tag() string { return e.tag }

// Parent returns the parent node, or nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the node's children. The returned slice is shared;
// callers must not mutate it.
func (e *Element) Children() []*Element { return e.children }

// Attr returns the value of the named attribute, or "".
func (e *Element) Attr(name string) string { return e.attrs[name] }

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets an attribute. Setting on a text node panics.
func (e *Element) SetAttr(name, value string) *Element {
	e.mustBeElement("SetAttr")
	e.attrs[name] = value
	return e
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// ID returns the element's id attribute.
func (e *Element) ID() string { return e.attrs["id"] }

// Classes returns the element's class list.
func (e *Element) Classes() []string {
	return strings.Fields(e.attrs["class"])
}

// HasClass reports whether the element carries the given class.
func (e *Element) HasClass(class string) bool {
	for _, c := range e.Classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds a class if not already present.
func (e *Element) AddClass(class string) *Element {
	e.mustBeElement("AddClass")
	if !e.HasClass(class) {
		classes := append(e.Classes(), class)
		e.attrs["class"] = strings.Join(classes, " ")
	}
	return e
}

// RemoveClass removes a class.
func (e *Element) RemoveClass(class string) {
	classes := e.Classes()
	kept := classes[:0]
	for _, c := range classes {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		delete(e.attrs, "class")
		return
	}
	e.attrs["class"] = strings.Join(kept, " ")
}

// AppendChild detaches child from its current parent and appends it as the
// last child of e.
func (e *Element) AppendChild(child *Element) {
	e.mustBeElement("AppendChild")
	child.detach()
	child.parent = e
	e.children = append(e.children, child)
}

// PrependChild detaches child from its current parent and inserts it as the
// first child of e.
func (e *Element) PrependChild(child *Element) {
	e.mustBeElement("PrependChild")
	child.detach()
	child.parent = e
	e.children = append([]*Element{child}, e.children...)
}

// Before inserts sibling immediately before e in e's parent.
// Panics if e is detached.
func (e *Element) Before(sibling *Element) {
	e.insertAdjacent(sibling, 0)
}

// After inserts sibling immediately after e in e's parent.
// Panics if e is detached.
func (e *Element) After(sibling *Element) {
	e.insertAdjacent(sibling, 1)
}

func (e *Element) insertAdjacent(sibling *Element, offset int) {
	if e.parent == nil {
		panic("dom: cannot insert relative to a detached element")
	}
	parent := e.parent
	sibling.detach()
	for i, c := range parent.children {
		if c == e {
			at := i + offset
			parent.children = append(parent.children, nil)
			copy(parent.children[at+1:], parent.children[at:])
			parent.children[at] = sibling
			sibling.parent = parent
			return
		}
	}
}

// detach unlinks e from its parent without touching handlers.
func (e *Element) detach() {
	if e.parent == nil {
		return
	}
	siblings := e.parent.children
	for i, c := range siblings {
		if c == e {
			e.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// Remove detaches e from its parent and drops every delegated handler on e
// and its descendants, mirroring how real DOM removal tears down listeners.
func (e *Element) Remove() {
	e.detach()
	e.clearHandlersDeep()
}

func (e *Element) clearHandlersDeep() {
	e.handlers = nil
	for _, c := range e.children {
		c.clearHandlersDeep()
	}
}

// Empty removes all children, dropping their handlers.
func (e *Element) Empty() {
	for _, c := range e.children {
		c.parent = nil
		c.clearHandlersDeep()
	}
	e.children = nil
}

// Text returns the concatenated text content of the subtree.
func (e *Element) Text() string {
	if e.nodeType == TextNode {
		return e.text
	}
	var sb strings.Builder
	for _, c := range e.children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// Find returns the first descendant matching the selector, or nil.
func (e *Element) Find(selector string) *Element {
	sel := mustParseSelector(selector)
	return e.findFirst(sel)
}

func (e *Element) findFirst(sel compound) *Element {
	for _, c := range e.children {
		if c.nodeType == ElementNode {
			if sel.matches(c) {
				return c
			}
			if found := c.findFirst(sel); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindAll returns every descendant matching the selector, in document order.
func (e *Element) FindAll(selector string) []*Element {
	sel := mustParseSelector(selector)
	var out []*Element
	e.findAll(sel, &out)
	return out
}

func (e *Element) findAll(sel compound, out *[]*Element) {
	for _, c := range e.children {
		if c.nodeType == ElementNode {
			if sel.matches(c) {
				*out = append(*out, c)
			}
			c.findAll(sel, out)
		}
	}
}

// Matches reports whether the element itself matches the selector.
func (e *Element) Matches(selector string) bool {
	if e.nodeType != ElementNode {
		return false
	}
	return mustParseSelector(selector).matches(e)
}

// Closest returns the nearest ancestor (including e) matching the selector.
func (e *Element) Closest(selector string) *Element {
	sel := mustParseSelector(selector)
	for n := e; n != nil; n = n.parent {
		if n.nodeType == ElementNode && sel.matches(n) {
			return n
		}
	}
	return nil
}

// OuterHTML serializes the node, attributes sorted by name for determinism.
func (e *Element) OuterHTML() string {
	var sb strings.Builder
	e.serialize(&sb)
	return sb.String()
}

// InnerHTML serializes the node's children.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for _, c := range e.children {
		c.serialize(&sb)
	}
	return sb.String()
}

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

func (e *Element) serialize(sb *strings.Builder) {
	if e.nodeType == TextNode {
		sb.WriteString(html.EscapeString(e.text))
		return
	}
	sb.WriteByte('<')
	sb.WriteString(e.tag)
	if len(e.attrs) > 0 {
		names := make([]string, 0, len(e.attrs))
		for name := range e.attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteByte(' ')
			sb.WriteString(name)
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(e.attrs[name]))
			sb.WriteByte('"')
		}
	}
	sb.WriteByte('>')
	if voidTags[e.tag] {
		return
	}
	for _, c := range e.children {
		c.serialize(sb)
	}
	sb.WriteString("</")
	sb.WriteString(e.tag)
	sb.WriteByte('>')
}

func (e *Element) mustBeElement(op string) {
	if e.nodeType != ElementNode {
		panic("dom: " + op + " on a text node")
	}
}

// root is the package document root that string container selectors resolve
// against. Swappable for tests and embedders via SetRoot.
var root = NewElement("body")

// Root returns the package document root.
func Root() *Element { return root }

// SetRoot replaces the package document root and returns the previous one.
func SetRoot(el *Element) *Element {
	if el == nil {
		panic("dom: nil root")
	}
	prev := root
	root = el
	return prev
}
