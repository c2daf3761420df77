// Package setup is the root screen: it picks a variant and two distinct
// profile subjects, then starts the sitting.
package setup

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/history"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	historyscreen "github.com/abhisek/examprep/internal/screens/history"
	"github.com/abhisek/examprep/internal/screens/results"
	"github.com/abhisek/examprep/internal/screens/sitting"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/report"
	"github.com/abhisek/examprep/internal/ui/theme"
)

type step int

const (
	stepVariant step = iota
	stepFirst
	stepSecond
	stepConfirm
)

const (
	menuVariant = "variant"
	menuFirst   = "subject1"
	menuSecond  = "subject2"
	menuConfirm = "confirm"

	choiceStart = "start"
	choiceBack  = "back"
)

// SetupScreen walks through the sitting configuration.
type SetupScreen struct {
	sess *exam.Session
	bank *bank.Bank
	book *history.Book

	step    step
	variant bank.Variant
	first   string
	second  string
	menu    components.Menu
	started bool
	errMsg  string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)
var _ screen.Refresher = (*SetupScreen)(nil)

// New creates the setup screen for sess.
func New(sess *exam.Session, b *bank.Bank, book *history.Book) *SetupScreen {
	s := &SetupScreen{sess: sess, bank: b, book: book}
	s.goTo(stepVariant)
	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return nil
}

// Refresh starts over once a sitting has been completed and reset.
func (s *SetupScreen) Refresh() tea.Cmd {
	if s.started && s.sess.Phase() == exam.PhaseSelect {
		s.started = false
		s.variant = bank.Variant{}
		s.first, s.second = "", ""
		s.errMsg = ""
		s.goTo(stepVariant)
	}
	return nil
}

func (s *SetupScreen) Title() string {
	return "New Mock Exam"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if s.step > stepVariant {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	hints = append(hints,
		layout.KeyHint{Key: "h", Description: "History"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
	return hints
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.MenuChosenMsg:
		return s.choose(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			if s.step > stepVariant {
				s.errMsg = ""
				s.goTo(s.step - 1)
			}
			return s, nil
		case "h":
			if s.book == nil {
				return s, nil
			}
			hist := historyscreen.New(s.book)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: hist} }
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SetupScreen) choose(msg components.MenuChosenMsg) (screen.Screen, tea.Cmd) {
	switch msg.ID {
	case menuVariant:
		v, ok := s.bank.Variant(msg.Item.Value)
		if !ok {
			return s, nil
		}
		s.variant = v
		s.goTo(stepFirst)
	case menuFirst:
		s.first = msg.Item.Value
		if s.second == s.first {
			s.second = ""
		}
		s.goTo(stepSecond)
	case menuSecond:
		s.second = msg.Item.Value
		s.goTo(stepConfirm)
	case menuConfirm:
		if msg.Item.Value == choiceBack {
			s.goTo(stepVariant)
			return s, nil
		}
		return s.start()
	}
	return s, nil
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	if err := s.sess.Configure(s.variant.ID, s.first, s.second); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	if err := s.sess.Start(); err != nil {
		s.errMsg = err.Error()
		s.sess.Reset()
		return s, nil
	}

	s.errMsg = ""
	s.started = true
	sess, book := s.sess, s.book
	next := sitting.New(sess, func() screen.Screen {
		return results.New(sess, book, true)
	})
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

// goTo switches to step and rebuilds its menu.
func (s *SetupScreen) goTo(st step) {
	s.step = st
	switch st {
	case stepVariant:
		items := make([]components.MenuItem, 0, len(s.bank.Variants))
		for _, v := range s.bank.Variants {
			items = append(items, components.MenuItem{
				Label:  v.Title,
				Detail: fmt.Sprintf("%d questions", len(v.ReadingLiteracy)+len(v.MathLiteracy)+len(v.History)),
				Value:  v.ID,
				Marked: v.ID == s.variant.ID,
			})
		}
		s.menu = components.NewMenu(menuVariant, items)
	case stepFirst:
		s.menu = s.subjectMenu(menuFirst, "", s.first)
	case stepSecond:
		s.menu = s.subjectMenu(menuSecond, s.first, s.second)
	case stepConfirm:
		s.menu = components.NewMenu(menuConfirm, []components.MenuItem{
			{Label: "Start sitting", Detail: layout.FormatClock(int(s.sess.Duration().Seconds())), Value: choiceStart},
			{Label: "Change selection", Value: choiceBack},
		})
	}
}

func (s *SetupScreen) subjectMenu(id, exclude, current string) components.Menu {
	items := make([]components.MenuItem, 0, len(bank.Subjects))
	selected := -1
	for _, sub := range bank.Subjects {
		if sub.ID == current {
			selected = len(items)
		}
		items = append(items, components.MenuItem{
			Label:    sub.Name,
			Detail:   fmt.Sprintf("%d in pool", len(s.bank.Pool(sub.ID))),
			Value:    sub.ID,
			Marked:   sub.ID == current,
			Disabled: sub.ID == exclude,
		})
	}
	m := components.NewMenu(id, items)
	if selected >= 0 && !items[selected].Disabled {
		m.Selected = selected
	}
	return m
}

func (s *SetupScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Title, "Mock Exam"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Subtitle,
		fmt.Sprintf("%d questions in five blocks · %d minutes", exam.TotalQuestions, int(s.sess.Duration().Minutes()))))
	b.WriteString("\n\n")

	b.WriteString("  " + s.summary() + "\n\n")
	b.WriteString("  " + theme.Heading.Render(s.prompt()) + "\n")
	b.WriteString(s.menu.View())

	if s.errMsg != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(s.errMsg) + "\n")
	}

	if s.book != nil {
		if past := s.book.Results(); len(past) > 0 {
			last := past[0]
			b.WriteString("\n  " + theme.Hint.Render(fmt.Sprintf("Last sitting: %s on %s",
				report.Score(last.Correct, last.Total, last.Percent),
				last.FinishedAt.Local().Format(report.DateFormat))) + "\n")
		}
	}
	return b.String()
}

func (s *SetupScreen) summary() string {
	variant := "-"
	if s.variant.ID != "" {
		variant = s.variant.Title
	}
	subjects := "-"
	switch {
	case s.first != "" && s.second != "":
		subjects = report.Subjects([2]string{s.first, s.second})
	case s.first != "":
		subjects = bank.SubjectName(s.first)
	}
	return theme.Body.Render(fmt.Sprintf("Variant: %s   Profile subjects: %s", variant, subjects))
}

func (s *SetupScreen) prompt() string {
	switch s.step {
	case stepFirst:
		return "Choose the first profile subject"
	case stepSecond:
		return "Choose the second profile subject"
	case stepConfirm:
		return "Ready?"
	}
	return "Choose a variant"
}
