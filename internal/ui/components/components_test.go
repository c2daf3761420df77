package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMenuSkipsDisabledAndChooses(t *testing.T) {
	m := NewMenu("subjects", []MenuItem{
		{Label: "Mathematics", Value: "math", Disabled: true},
		{Label: "Physics", Value: "physics"},
		{Label: "Chemistry", Value: "chemistry"},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item 1", m.Selected)
	}

	m, _ = m.Update(keyPress('k'))
	if m.Selected != 1 {
		t.Errorf("moved onto disabled item: %d", m.Selected)
	}

	m, _ = m.Update(keyPress('j'))
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	msg, ok := cmd().(MenuChosenMsg)
	if !ok {
		t.Fatalf("got %T, want MenuChosenMsg", cmd())
	}
	if msg.ID != "subjects" || msg.Item.Value != "chemistry" {
		t.Errorf("chosen = %+v", msg)
	}
}

func TestMenuViewMarksItems(t *testing.T) {
	m := NewMenu("v", []MenuItem{{Label: "One", Marked: true}, {Label: "Two"}})
	view := m.View()
	if !strings.Contains(view, "✓ One") {
		t.Errorf("expected mark on first item, got %q", view)
	}
}

func TestChoiceViewMarksSelection(t *testing.T) {
	sel := 1
	c := Choice{Options: []string{"a", "b", "c", "d"}, Selected: &sel}
	lines := strings.Split(strings.TrimRight(c.View(80), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if !strings.Contains(lines[1], "(•)") {
		t.Errorf("selected option not marked: %q", lines[1])
	}
	if strings.Contains(lines[0], "(•)") {
		t.Errorf("unselected option marked: %q", lines[0])
	}
}

func TestTextInputNumericOnly(t *testing.T) {
	ti := NewTextInput("# ", "", true, 3)
	ti, _ = ti.Update(keyPress('x'))
	ti, _ = ti.Update(keyPress('4'))
	ti, _ = ti.Update(keyPress('2'))

	n, err := ti.NumericValue()
	if err != nil {
		t.Fatalf("NumericValue: %v", err)
	}
	if n != 42 {
		t.Errorf("NumericValue = %d, want 42", n)
	}
}

func TestFraction(t *testing.T) {
	if got := Fraction(1, 4); got != 0.25 {
		t.Errorf("Fraction(1, 4) = %v", got)
	}
	if got := Fraction(3, 0); got != 0 {
		t.Errorf("Fraction(3, 0) = %v", got)
	}
}

func TestFractionClamps(t *testing.T) {
	if got := Fraction(5, 4); got != 1 {
		t.Errorf("Fraction(5, 4) = %v", got)
	}
	if got := Fraction(-1, 4); got != 0 {
		t.Errorf("Fraction(-1, 4) = %v", got)
	}
}

func TestMeterView(t *testing.T) {
	m := Meter{Label: "Answered", Value: 30, Total: 120, Width: 40}
	out := m.View()
	if !strings.Contains(out, "Answered") || !strings.Contains(out, "30/120") {
		t.Errorf("meter view = %q", out)
	}

	narrow := Meter{Value: 1, Total: 2, Width: 1}.View()
	if !strings.Contains(narrow, "1/2") {
		t.Errorf("narrow meter view = %q", narrow)
	}
}
