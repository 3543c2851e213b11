package dom

import (
	"strings"
	"testing"
)

func TestTreeInsertion(t *testing.T) {
	parent := NewElement("ul")
	a := NewElement("li").SetAttr("id", "a")
	b := NewElement("li").SetAttr("id", "b")
	c := NewElement("li").SetAttr("id", "c")

	parent.AppendChild(b)
	parent.PrependChild(a)
	b.After(c)

	ids := make([]string, 0, 3)
	for _, child := range parent.Children() {
		ids = append(ids, child.ID())
	}
	if got := strings.Join(ids, ","); got != "a,b,c" {
		t.Errorf("child order = %q, want %q", got, "a,b,c")
	}

	d := NewElement("li").SetAttr("id", "d")
	a.Before(d)
	if parent.Children()[0].ID() != "d" {
		t.Errorf("Before: first child = %q, want %q", parent.Children()[0].ID(), "d")
	}
	if d.Parent() != parent {
		t.Error("Before did not set parent")
	}
}

func TestAppendReparents(t *testing.T) {
	first := NewElement("div")
	second := NewElement("div")
	child := NewElement("span")

	first.AppendChild(child)
	second.AppendChild(child)

	if len(first.Children()) != 0 {
		t.Error("child still in former parent")
	}
	if child.Parent() != second {
		t.Error("child not reparented")
	}
}

func TestBeforeDetachedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Before on detached element did not panic")
		}
	}()
	NewElement("div").Before(NewElement("span"))
}

func TestClasses(t *testing.T) {
	e := NewElement("div")
	e.AddClass("active")
	e.AddClass("selected")
	e.AddClass("active") // duplicate ignored

	if got := e.Attr("class"); got != "active selected" {
		t.Errorf("class = %q, want %q", got, "active selected")
	}

	e.RemoveClass("active")
	if e.HasClass("active") {
		t.Error("class survived RemoveClass")
	}
	if !e.HasClass("selected") {
		t.Error("unrelated class removed")
	}

	e.RemoveClass("selected")
	if e.HasAttr("class") {
		t.Error("empty class attribute not deleted")
	}
}

func TestSelectorMatching(t *testing.T) {
	e := NewElement("button").
		SetAttr("id", "save").
		SetAttr("class", "btn btn-primary").
		SetAttr("type", "submit")

	tests := []struct {
		selector string
		want     bool
	}{
		{"button", true},
		{"*", true},
		{"a", false},
		{"#save", true},
		{"#other", false},
		{".btn", true},
		{".btn.btn-primary", true},
		{".missing", false},
		{"button.btn", true},
		{"button#save.btn-primary", true},
		{"[type]", true},
		{"[type=submit]", true},
		{"[type=reset]", false},
		{`[type="submit"]`, true},
		{"a.btn", false},
	}

	for _, tt := range tests {
		t.Run(tt.selector, func(t *testing.T) {
			if got := e.Matches(tt.selector); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.selector, got, tt.want)
			}
		})
	}
}

func TestInvalidSelectorPanics(t *testing.T) {
	for _, selector := range []string{"", "div span", "div > span", "a,b", "..", "[unclosed"} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Matches(%q) did not panic", selector)
				}
			}()
			NewElement("div").Matches(selector)
		}()
	}
}

func TestFind(t *testing.T) {
	root := NewElement("div")
	if err := root.SetHTML(`<ul class="list"><li class="item">one</li><li class="item selected">two</li></ul>`); err != nil {
		t.Fatalf("SetHTML: %v", err)
	}

	if root.Find(".missing") != nil {
		t.Error("Find returned non-nil for absent selector")
	}

	sel := root.Find(".selected")
	if sel == nil {
		t.Fatal("Find(.selected) = nil")
	}
	if got := sel.Text(); got != "two" {
		t.Errorf("selected text = %q, want %q", got, "two")
	}

	items := root.FindAll("li.item")
	if len(items) != 2 {
		t.Fatalf("FindAll(li.item) found %d, want 2", len(items))
	}
	if items[0].Text() != "one" || items[1].Text() != "two" {
		t.Error("FindAll not in document order")
	}
}

func TestClosest(t *testing.T) {
	root := NewElement("div").SetAttr("class", "outer")
	inner := NewElement("span")
	root.AppendChild(inner)

	if got := inner.Closest(".outer"); got != root {
		t.Error("Closest did not find ancestor")
	}
	if got := inner.Closest("span"); got != inner {
		t.Error("Closest should consider the element itself")
	}
	if inner.Closest(".absent") != nil {
		t.Error("Closest found a match that does not exist")
	}
}

func TestSerialization(t *testing.T) {
	e := NewElement("a").SetAttr("href", "/x").SetAttr("class", "link")
	e.AppendChild(NewText("go <here>"))

	want := `<a class="link" href="/x">go &lt;here&gt;</a>`
	if got := e.OuterHTML(); got != want {
		t.Errorf("OuterHTML = %q, want %q", got, want)
	}
}

func TestSetHTMLRoundTrip(t *testing.T) {
	e := NewElement("div")
	if err := e.SetHTML(`<p id="greeting">hello</p>`); err != nil {
		t.Fatalf("SetHTML: %v", err)
	}
	if got := e.InnerHTML(); got != `<p id="greeting">hello</p>` {
		t.Errorf("InnerHTML = %q", got)
	}
}

func TestSetHTMLDropsChildHandlers(t *testing.T) {
	e := NewElement("div")
	child := NewElement("button")
	e.AppendChild(child)

	childCalls := 0
	rootCalls := 0
	child.On("click", "ns", "", func(*Event) { childCalls++ })
	e.On("click", "ns", "button", func(*Event) { rootCalls++ })

	if err := e.SetHTML(`<button>new</button>`); err != nil {
		t.Fatalf("SetHTML: %v", err)
	}

	// Old child is detached and dead; the delegated handler on e survives
	// and fires for the replacement button.
	e.Children()[0].Dispatch("click", nil)
	if childCalls != 0 {
		t.Errorf("stale child handler ran %d times", childCalls)
	}
	if rootCalls != 1 {
		t.Errorf("delegated handler ran %d times, want 1", rootCalls)
	}
}

func TestDispatchBubbles(t *testing.T) {
	grandparent := NewElement("div")
	parent := NewElement("ul")
	child := NewElement("li")
	grandparent.AppendChild(parent)
	parent.AppendChild(child)

	var order []string
	child.On("click", "t", "", func(*Event) { order = append(order, "child") })
	parent.On("click", "t", "", func(*Event) { order = append(order, "parent") })
	grandparent.On("click", "t", "", func(*Event) { order = append(order, "grandparent") })

	child.Dispatch("click", nil)

	want := []string{"child", "parent", "grandparent"}
	if len(order) != len(want) {
		t.Fatalf("ran %d handlers, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestStopPropagation(t *testing.T) {
	parent := NewElement("div")
	child := NewElement("button")
	parent.AppendChild(child)

	parentCalls := 0
	child.On("click", "t", "", func(ev *Event) { ev.StopPropagation() })
	parent.On("click", "t", "", func(*Event) { parentCalls++ })

	ev := child.Dispatch("click", nil)

	if parentCalls != 0 {
		t.Errorf("parent handler ran %d times after StopPropagation", parentCalls)
	}
	if !ev.PropagationStopped() {
		t.Error("PropagationStopped = false")
	}
}

func TestDelegatedSelector(t *testing.T) {
	root := NewElement("div")
	if err := root.SetHTML(`<ul><li class="item"><a>link</a></li><li class="other">x</li></ul>`); err != nil {
		t.Fatalf("SetHTML: %v", err)
	}

	var delegate *Element
	calls := 0
	root.On("click", "t", "li.item", func(ev *Event) {
		calls++
		delegate = ev.DelegateTarget
	})

	// Click on the <a> inside li.item: the selector matches an ancestor of
	// the target, so the handler fires with that ancestor as DelegateTarget.
	anchor := root.Find("a")
	anchor.Dispatch("click", nil)

	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if delegate == nil || !delegate.HasClass("item") {
		t.Error("DelegateTarget is not li.item")
	}

	// Click on the non-matching sibling: no fire.
	root.Find("li.other").Dispatch("click", nil)
	if calls != 1 {
		t.Errorf("handler ran %d times after non-matching click, want 1", calls)
	}
}

func TestNamespacedOff(t *testing.T) {
	e := NewElement("div")

	aCalls := 0
	bCalls := 0
	e.On("click", "ns-a", "", func(*Event) { aCalls++ })
	e.On("click", "ns-b", "", func(*Event) { bCalls++ })

	e.Off("ns-a")
	e.Dispatch("click", nil)

	if aCalls != 0 {
		t.Errorf("ns-a handler ran %d times after Off", aCalls)
	}
	if bCalls != 1 {
		t.Errorf("ns-b handler ran %d times, want 1", bCalls)
	}
	if got := e.HandlerCount("ns-b"); got != 1 {
		t.Errorf("HandlerCount(ns-b) = %d, want 1", got)
	}
}

func TestOnUnbind(t *testing.T) {
	e := NewElement("div")

	calls := 0
	unbind := e.On("click", "ns", "", func(*Event) { calls++ })

	e.Dispatch("click", nil)
	unbind()
	unbind()
	e.Dispatch("click", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRemoveClearsSubtreeHandlers(t *testing.T) {
	parent := NewElement("div")
	child := NewElement("span")
	parent.AppendChild(child)

	child.On("click", "ns", "", func(*Event) {})
	parent.Remove()

	if got := child.HandlerCount(""); got != 0 {
		t.Errorf("child handler count after Remove = %d, want 0", got)
	}
	if parent.Parent() != nil {
		t.Error("parent still attached")
	}
}

func TestRootSwap(t *testing.T) {
	custom := NewElement("body")
	prev := SetRoot(custom)
	defer SetRoot(prev)

	if Root() != custom {
		t.Error("Root() did not return the swapped root")
	}
}
