package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/screen"
)

type fakeScreen struct {
	name      string
	inits     int
	refreshes int
	updates   int
}

func (s *fakeScreen) Init() tea.Cmd                           { s.inits++; return nil }
func (s *fakeScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *fakeScreen) View(int, int) string                    { return s.name }
func (s *fakeScreen) Title() string                           { return s.name }
func (s *fakeScreen) Refresh() tea.Cmd                        { s.refreshes++; return nil }

// plainScreen has no Refresh method.
type plainScreen struct{ name string }

func (s plainScreen) Init() tea.Cmd                           { return nil }
func (s plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s plainScreen) View(int, int) string                    { return s.name }
func (s plainScreen) Title() string                           { return s.name }

func assertActive(t *testing.T, r *Router, name string, depth int) {
	t.Helper()
	if got := r.Active().Title(); got != name {
		t.Errorf("active = %q, want %q", got, name)
	}
	if r.Depth() != depth {
		t.Errorf("depth = %d, want %d", r.Depth(), depth)
	}
}

func TestSittingFlow(t *testing.T) {
	setup := &fakeScreen{name: "setup"}
	sitting := &fakeScreen{name: "sitting"}
	results := &fakeScreen{name: "results"}
	review := &fakeScreen{name: "review"}
	r := New(setup)

	r.Update(PushScreenMsg{Screen: sitting})
	assertActive(t, r, "sitting", 2)
	if sitting.inits != 1 {
		t.Errorf("sitting inits = %d, want 1", sitting.inits)
	}

	r.Update(ReplaceScreenMsg{Screen: results})
	assertActive(t, r, "results", 2)
	if results.inits != 1 {
		t.Errorf("results inits = %d, want 1", results.inits)
	}

	r.Update(PushScreenMsg{Screen: review})
	r.Update(PopScreenMsg{})
	assertActive(t, r, "results", 2)
	if results.refreshes != 1 {
		t.Errorf("results refreshes = %d, want 1", results.refreshes)
	}

	r.Update(PopToRootMsg{})
	assertActive(t, r, "setup", 1)
	if setup.refreshes != 1 {
		t.Errorf("setup refreshes = %d, want 1", setup.refreshes)
	}
}

func TestBottomOfStack(t *testing.T) {
	root := &fakeScreen{name: "setup"}
	r := New(root)

	if cmd := r.Pop(); cmd != nil {
		t.Error("pop at the bottom should return nil")
	}
	if cmd := r.PopToRoot(); cmd != nil {
		t.Error("pop-to-root at the bottom should return nil")
	}
	assertActive(t, r, "setup", 1)
	if root.refreshes != 0 {
		t.Errorf("refreshes = %d, want 0", root.refreshes)
	}

	r.Replace(plainScreen{name: "other"})
	assertActive(t, r, "other", 1)
}

func TestPopWithoutRefresher(t *testing.T) {
	r := New(plainScreen{name: "setup"})
	r.Push(&fakeScreen{name: "history"})
	if cmd := r.Pop(); cmd != nil {
		t.Error("uncovered screen without Refresh should yield nil cmd")
	}
	assertActive(t, r, "setup", 1)
}

func TestUpdateForwardsToActive(t *testing.T) {
	setup := &fakeScreen{name: "setup"}
	sitting := &fakeScreen{name: "sitting"}
	r := New(setup)
	r.Push(sitting)

	r.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	if sitting.updates != 1 || setup.updates != 0 {
		t.Errorf("updates sitting=%d setup=%d, want 1 and 0", sitting.updates, setup.updates)
	}
	if got := r.View(80, 24); got != "sitting" {
		t.Errorf("view = %q", got)
	}
}
