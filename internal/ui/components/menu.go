package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// MenuItem represents a single item in a vertical menu.
type MenuItem struct {
	Label    string
	Detail   string
	Value    string
	Marked   bool
	Disabled bool
}

// Menu is a vertical selection list. Enter emits MenuChosenMsg.
type Menu struct {
	ID       string
	Items    []MenuItem
	Selected int
}

// MenuChosenMsg reports the item picked in the menu identified by ID.
type MenuChosenMsg struct {
	ID   string
	Item MenuItem
}

// NewMenu creates a new menu with the first enabled item selected.
func NewMenu(id string, items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{
		ID:       id,
		Items:    items,
		Selected: selected,
	}
}

// Current returns the highlighted item.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if item, ok := m.Current(); ok && !item.Disabled {
			id := m.ID
			return m, func() tea.Msg { return MenuChosenMsg{ID: id, Item: item} }
		}
	}

	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		mark := "  "
		if item.Marked {
			mark = "✓ "
		}
		line := mark + item.Label
		if item.Detail != "" {
			line += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + item.Detail)
		}

		switch {
		case item.Disabled:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render("    " + mark + item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + line))
		default:
			b.WriteString(theme.Unselected.Render("    " + line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
