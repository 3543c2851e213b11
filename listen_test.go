package chaplin

import (
	"testing"

	"github.com/agilemobiledev/chaplin/lib/mediator"
)

// listeningView declares one listener binding per target kind.
type listeningView struct {
	*View
	titleChanges int
	adds         int
	logins       int
	pings        int
	refreshes    int
}

func newListeningView(opts Options) *listeningView {
	lv := &listeningView{}
	lv.View = NewView(lv, opts)
	return lv
}

func (lv *listeningView) Bindings() []Bindings {
	return []Bindings{{
		Listen: ListenMap{
			"change:title model": func(...any) { lv.titleChanges++ },
			"add collection":     func(...any) { lv.adds++ },
			"login mediator":     func(...any) { lv.logins++ },
			"ping":               func(...any) { lv.pings++ },
			"refresh model":      "OnRefresh",
		},
	}}
}

func (lv *listeningView) OnRefresh() { lv.refreshes++ }

func TestListenToModel(t *testing.T) {
	ResetMediator(t)
	m := NewModel(nil)
	lv := newListeningView(Options{Model: m})

	m.Set("title", "new")
	if lv.titleChanges != 1 {
		t.Errorf("titleChanges = %d, want 1", lv.titleChanges)
	}

	m.Trigger("refresh")
	if lv.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1 (method-name binding)", lv.refreshes)
	}
}

func TestListenToCollection(t *testing.T) {
	ResetMediator(t)
	c := NewCollection()
	lv := newListeningView(Options{Collection: c})

	c.Add(NewModel(nil))
	if lv.adds != 1 {
		t.Errorf("adds = %d, want 1", lv.adds)
	}
}

func TestListenToMediator(t *testing.T) {
	ResetMediator(t)
	lv := newListeningView(Options{})

	mediator.Publish("login")
	if lv.logins != 1 {
		t.Errorf("logins = %d, want 1", lv.logins)
	}

	lv.Dispose()
	mediator.Publish("login")
	if lv.logins != 1 {
		t.Errorf("logins = %d after dispose, want 1", lv.logins)
	}
}

func TestListenToSelf(t *testing.T) {
	ResetMediator(t)
	lv := newListeningView(Options{})

	lv.Trigger("ping")
	if lv.pings != 1 {
		t.Errorf("pings = %d, want 1", lv.pings)
	}
}

func TestAbsentSourceSkippedWithoutRetry(t *testing.T) {
	ResetMediator(t)
	lv := newListeningView(Options{})

	// No model at construction: the declaration was dropped, and a model
	// observed later is never picked up retroactively.
	m := NewModel(nil)
	lv.model = m
	m.Set("title", "late")
	if lv.titleChanges != 0 {
		t.Errorf("titleChanges = %d, want 0 (binding must not retry)", lv.titleChanges)
	}
}

func TestListenToImperative(t *testing.T) {
	m := NewModel(nil)
	type bare struct{ *View }
	b := &bare{}
	b.View = NewView(b, Options{Model: m})

	saves := 0
	unbind := b.ListenTo(m, "save", func(...any) { saves++ })
	m.Trigger("save")
	unbind()
	m.Trigger("save")
	if saves != 1 {
		t.Fatalf("saves = %d, want 1", saves)
	}
}

func TestStopListening(t *testing.T) {
	ResetMediator(t)
	m := NewModel(nil)
	lv := newListeningView(Options{Model: m})
	lv.StopListening()

	m.Set("title", "after")
	if lv.titleChanges != 0 {
		t.Errorf("titleChanges = %d after StopListening, want 0", lv.titleChanges)
	}

	// Mediator subscriptions survive StopListening; only disposal clears
	// them.
	mediator.Publish("login")
	if lv.logins != 1 {
		t.Errorf("logins = %d after StopListening, want 1", lv.logins)
	}
}

func TestPublishSubscribeEvent(t *testing.T) {
	ResetMediator(t)
	type bare struct{ *View }
	a := &bare{}
	a.View = NewView(a, Options{})
	b := &bare{}
	b.View = NewView(b, Options{})

	var got []any
	a.SubscribeEvent("sync", func(args ...any) { got = args })
	b.PublishEvent("sync", 42)
	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("subscriber got %v, want [42]", got)
	}
}

type badListenView struct{ *View }

func (bv *badListenView) Bindings() []Bindings {
	return []Bindings{{
		Listen: ListenMap{"change nowhere": func(...any) {}},
	}}
}

func TestUnknownListenTargetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("unknown listen target did not panic")
		}
	}()
	bv := &badListenView{}
	bv.View = NewView(bv, Options{})
}
