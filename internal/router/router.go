// Package router keeps the navigation stack of the terminal app:
// setup at the bottom, then the sitting or its results, then review or
// history on top.
package router

import (
	"github.com/abhisek/examprep/internal/screen"

	tea "charm.land/bubbletea/v2"
)

// PushScreenMsg opens Screen above the active one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the active screen.
type PopScreenMsg struct{}

// ReplaceScreenMsg swaps the top screen, e.g. a finished sitting for its
// results.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// PopToRootMsg drops every screen above the first.
type PopToRootMsg struct{}

// Router is a stack of screens; only the top one receives input.
type Router struct {
	stack []screen.Screen
}

// New starts the stack at initial, which is never popped.
func New(initial screen.Screen) *Router {
	return &Router{
		stack: []screen.Screen{initial},
	}
}

// Push opens s on top and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen unless it is the root.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return r.refresh()
}

// Replace swaps the top screen for s and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// PopToRoot leaves only the initial screen on the stack.
func (r *Router) PopToRoot() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:1]
	return r.refresh()
}

// refresh lets a screen that becomes active again reload its state.
func (r *Router) refresh() tea.Cmd {
	if f, ok := r.Active().(screen.Refresher); ok {
		return f.Refresh()
	}
	return nil
}

// Active returns the top screen on the stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages itself and forwards anything else to
// the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopToRootMsg:
		return r.PopToRoot()
	}

	active := r.Active()
	if active == nil {
		return nil
	}

	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
