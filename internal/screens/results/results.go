// Package results shows the score of a finished sitting with its study plan.
package results

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/history"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	historyscreen "github.com/abhisek/examprep/internal/screens/history"
	"github.com/abhisek/examprep/internal/screens/sitting"
	"github.com/abhisek/examprep/internal/studyplan"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/report"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// recordedMsg reports whether the result reached the history store.
type recordedMsg struct {
	err error
}

// ResultsScreen displays the current result of a session.
type ResultsScreen struct {
	sess   *exam.Session
	book   *history.Book
	result exam.Result
	scored bool
	plan   *studyplan.Plan

	record  bool
	saved   bool
	saveErr string
	offset  int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results screen. With record set, Init stores the result
// in the history book.
func New(sess *exam.Session, book *history.Book, record bool) *ResultsScreen {
	s := &ResultsScreen{sess: sess, book: book, record: record}
	s.result, s.scored = sess.Result()
	if s.scored {
		s.plan = studyplan.Build(s.result, studyplan.Options{})
	}
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	if !s.record || !s.scored || s.book == nil {
		return nil
	}
	book, r := s.book, s.result
	return func() tea.Msg {
		return recordedMsg{err: book.Record(context.Background(), r)}
	}
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "r", Description: "Review"},
		{Key: "h", Description: "History"},
		{Key: "n", Description: "New sitting"},
		{Key: "↑↓", Description: "Scroll"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recordedMsg:
		s.record = false
		if msg.err != nil {
			s.saveErr = msg.err.Error()
		} else {
			s.saved = true
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			if err := s.sess.EnterReview(0, 0); err != nil {
				return s, nil
			}
			review := sitting.New(s.sess, nil)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: review} }
		case "h":
			if s.book == nil {
				return s, nil
			}
			hist := historyscreen.New(s.book)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: hist} }
		case "n", "enter", "esc":
			s.sess.Reset()
			return s, func() tea.Msg { return router.PopToRootMsg{} }
		case "up", "k":
			if s.offset > 0 {
				s.offset--
			}
		case "down", "j":
			s.offset++
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if !s.scored {
		return layout.Centered(width, theme.Hint, "\n\nNo result for this session.")
	}
	lines := strings.Split(s.render(), "\n")

	if height > 0 && len(lines) > height {
		maxOffset := len(lines) - height
		if s.offset > maxOffset {
			s.offset = maxOffset
		}
		lines = lines[s.offset : s.offset+height]
	} else {
		s.offset = 0
	}
	return strings.Join(lines, "\n")
}

func (s *ResultsScreen) render() string {
	r := s.result
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(fmt.Sprintf("  Score %s", report.Score(r.Correct, r.Total, r.Percent))))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  %s · %s · %d min",
		r.VariantTitle, report.Subjects(r.Subjects), r.ElapsedMinutes)))
	b.WriteString("\n")

	switch {
	case s.saveErr != "":
		b.WriteString(theme.Incorrect.Render("  Not saved to history: " + s.saveErr))
		b.WriteString("\n")
	case s.saved:
		b.WriteString(theme.Hint.Render("  Saved to history."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, line := range strings.Split(report.BlockTable(r).String(), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
	for _, br := range r.Blocks {
		label := fmt.Sprintf("%-22s", report.BlockName(br.Title, br.Subject))
		meter := components.Meter{Label: label, Value: br.Correct, Total: br.Total, Width: 64}
		b.WriteString("  " + meter.View() + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + theme.Heading.Render("Study plan") + "\n")
	for _, line := range strings.Split(strings.TrimRight(report.Plan(s.plan), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}
	return b.String()
}
