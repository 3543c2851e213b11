package chaplin

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"

	"github.com/agilemobiledev/chaplin/lib/dom"
	"github.com/agilemobiledev/chaplin/lib/mediator"
)

// NewTestRoot installs a fresh document root for the duration of a test and
// returns it. The previous root is restored on cleanup, so tests that attach
// views by selector do not see each other's elements.
func NewTestRoot(t *testing.T) *Element {
	t.Helper()
	root := dom.NewElement("body")
	previous := dom.SetRoot(root)
	t.Cleanup(func() { dom.SetRoot(previous) })
	return root
}

// ResetMediator clears all mediator subscriptions for the duration of a
// test, restoring nothing: the bus starts each test empty.
func ResetMediator(t *testing.T) {
	t.Helper()
	mediator.Reset()
	t.Cleanup(mediator.Reset)
}

// RenderComponent renders a templ component to a string, failing the test on
// error.
func RenderComponent(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render component: %v", err)
	}
	return buf.String()
}
