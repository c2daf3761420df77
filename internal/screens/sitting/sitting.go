// Package sitting is the question screen of a mock exam. It runs the
// countdown during the exam phase and doubles as the read-only review mode.
package sitting

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/ui/components"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// lowTime is when the countdown switches to the warning style.
const lowTime = 5 * 60

// timerTickMsg is sent every second while the sitting runs.
type timerTickMsg time.Time

// SittingScreen shows one question at a time.
type SittingScreen struct {
	sess     *exam.Session
	onFinish func() screen.Screen

	cursor     int
	jumping    bool
	jump       components.TextInput
	confirming bool
}

var _ screen.Screen = (*SittingScreen)(nil)
var _ screen.KeyHintProvider = (*SittingScreen)(nil)
var _ screen.StatusProvider = (*SittingScreen)(nil)

// New creates the screen for a session in the exam or review phase.
// onFinish builds the screen that replaces this one once the sitting is
// scored; it is unused in review mode.
func New(sess *exam.Session, onFinish func() screen.Screen) *SittingScreen {
	s := &SittingScreen{sess: sess, onFinish: onFinish}
	s.syncCursor()
	return s
}

func (s *SittingScreen) Init() tea.Cmd {
	if s.sess.Phase() == exam.PhaseExam {
		return tickCmd()
	}
	return nil
}

func (s *SittingScreen) Title() string {
	if s.reviewing() {
		return "Review"
	}
	if e := s.sess.Exam(); e != nil {
		return e.VariantTitle
	}
	return "Exam"
}

// Status shows the countdown, or the mode during review.
func (s *SittingScreen) Status() string {
	if s.reviewing() {
		return theme.Heading.Render("Review")
	}
	clock := "⏱ " + layout.FormatClock(s.sess.Remaining())
	if s.sess.Remaining() <= lowTime {
		return theme.TimerLow.Render(clock)
	}
	return theme.Body.Render(clock)
}

func (s *SittingScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.jumping:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.confirming:
		return []layout.KeyHint{
			{Key: "y", Description: "Finish"},
			{Key: "n", Description: "Keep going"},
		}
	case s.reviewing():
		return []layout.KeyHint{
			{Key: "←→", Description: "Prev/Next"},
			{Key: "g", Description: "Jump"},
			{Key: "Esc", Description: "Results"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "f", Description: "Flag"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "g", Description: "Jump"},
		{Key: "s", Description: "Finish"},
	}
}

func (s *SittingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		if s.sess.Phase() != exam.PhaseExam {
			return s, nil
		}
		if res := s.sess.Tick(); res != nil {
			return s, s.finished()
		}
		return s, tickCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.jumping {
		var cmd tea.Cmd
		s.jump, cmd = s.jump.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SittingScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	phase := s.sess.Phase()
	if phase != exam.PhaseExam && phase != exam.PhaseReview {
		return s, nil
	}
	key := msg.String()

	if s.jumping {
		switch key {
		case "esc":
			s.jumping = false
			return s, nil
		case "enter":
			return s.submitJump()
		}
		var cmd tea.Cmd
		s.jump, cmd = s.jump.Update(msg)
		return s, cmd
	}

	if s.confirming {
		switch key {
		case "y", "Y":
			s.confirming = false
			if _, err := s.sess.Finish(); err != nil {
				return s, nil
			}
			return s, s.finished()
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	switch key {
	case "right", "n", "l":
		_ = s.sess.Next()
		s.syncCursor()
		return s, nil
	case "left", "p", "h":
		_ = s.sess.Prev()
		s.syncCursor()
		return s, nil
	case "g":
		s.jumping = true
		s.jump = components.NewTextInput("Go to question: ", fmt.Sprintf("1-%d", s.total()), true, 4)
		return s, s.jump.Init()
	}

	if phase == exam.PhaseReview {
		switch key {
		case "esc", "r":
			_ = s.sess.ShowResults()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	q, _, ok := s.sess.Current()
	if !ok {
		return s, nil
	}

	switch key {
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(q.Options) {
			s.cursor = idx
			_ = s.sess.RecordAnswer(q.ID, idx)
		}
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(q.Options)-1 {
			s.cursor++
		}
	case "enter", "space":
		_ = s.sess.RecordAnswer(q.ID, s.cursor)
	case "f":
		_ = s.sess.ToggleFlag(q.ID)
	case "s", "esc":
		s.confirming = true
	}
	return s, nil
}

func (s *SittingScreen) submitJump() (screen.Screen, tea.Cmd) {
	n, err := s.jump.NumericValue()
	if err != nil || n < 1 || n > s.total() {
		s.jump.Reject(fmt.Sprintf("enter 1-%d", s.total()))
		return s, nil
	}
	block, question := positionOf(s.sess.Exam(), n-1)
	_ = s.sess.Jump(block, question)
	s.syncCursor()
	s.jumping = false
	return s, nil
}

// finished hands over to the results screen.
func (s *SittingScreen) finished() tea.Cmd {
	if s.onFinish == nil {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	next := s.onFinish()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *SittingScreen) reviewing() bool {
	return s.sess.Phase() == exam.PhaseReview
}

func (s *SittingScreen) total() int {
	if e := s.sess.Exam(); e != nil {
		return e.QuestionCount()
	}
	return 0
}

// syncCursor puts the option cursor on the stored answer, if any.
func (s *SittingScreen) syncCursor() {
	s.cursor = 0
	if _, a, ok := s.sess.Current(); ok && a.Selected != nil {
		s.cursor = *a.Selected
	}
}

func (s *SittingScreen) View(width, height int) string {
	e := s.sess.Exam()
	q, a, ok := s.sess.Current()
	if e == nil || !ok {
		return layout.Centered(width, theme.Hint, "\n\nNo questions in this sitting.")
	}

	pos := s.sess.Position()
	blk := e.Blocks[pos.Block]
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder
	b.WriteString("\n")

	heading := fmt.Sprintf("%s · %d of %d", blockLabel(blk), pos.Question+1, len(blk.Questions))
	b.WriteString("  " + theme.Heading.Render(heading))
	if a.Flagged {
		b.WriteString("  " + theme.Flagged.Render("⚑ flagged"))
	}
	b.WriteString("\n")

	p := s.sess.Progress()
	b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("Question %d of %d · answered %d · flagged %d",
		indexOf(e, pos)+1, e.QuestionCount(), p.Answered, p.Flagged)))
	b.WriteString("\n")
	if !s.reviewing() {
		meter := components.Meter{Label: "Answered", Value: p.Answered, Total: p.Total, Width: min(inner, 60)}
		b.WriteString("  " + meter.View() + "\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().Width(inner).PaddingLeft(2).Foreground(theme.Text).Render(q.Text))
	b.WriteString("\n\n")

	choice := components.Choice{
		Options:  q.Options,
		Cursor:   s.cursor,
		Selected: a.Selected,
		Reveal:   s.reviewing(),
		Correct:  q.Correct,
	}
	for _, line := range strings.Split(strings.TrimRight(choice.View(inner), "\n"), "\n") {
		b.WriteString("  " + line + "\n")
	}

	if s.reviewing() {
		b.WriteString("\n")
		b.WriteString("  " + verdict(q, a) + "\n")
		if q.Explanation != "" {
			b.WriteString(lipgloss.NewStyle().Width(inner).PaddingLeft(2).Foreground(theme.TextDim).Render(q.Explanation))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + s.blockSummary(e) + "\n")

	switch {
	case s.jumping:
		b.WriteString("\n  " + s.jump.View() + "\n")
	case s.confirming:
		left := p.Total - p.Answered
		prompt := fmt.Sprintf("Finish the sitting now? %d unanswered. (y/n)", left)
		b.WriteString("\n  " + theme.Flagged.Render(prompt) + "\n")
	}

	return b.String()
}

// blockSummary lists answered/total per block, highlighting the current one.
func (s *SittingScreen) blockSummary(e *exam.Exam) string {
	answered := make(map[int]int, exam.NumBlocks)
	for _, a := range s.sess.Answers() {
		if a.Answered() {
			answered[a.Block]++
		}
	}
	cur := s.sess.Position().Block
	parts := make([]string, 0, exam.NumBlocks)
	for i, blk := range e.Blocks {
		text := fmt.Sprintf("%s %d/%d", shortLabel(blk), answered[i], len(blk.Questions))
		if i == cur {
			parts = append(parts, theme.Selected.Render(text))
		} else {
			parts = append(parts, theme.Hint.Render(text))
		}
	}
	return strings.Join(parts, "  ")
}

func verdict(q bank.Question, a exam.Answer) string {
	correct := components.OptionLabels[q.Correct]
	switch {
	case a.Selected == nil:
		return theme.Flagged.Render("Not answered · correct: " + correct)
	case *a.Selected == q.Correct:
		return theme.Correct.Render("Correct")
	default:
		return theme.Incorrect.Render(fmt.Sprintf("Your answer: %s · correct: %s",
			components.OptionLabels[*a.Selected], correct))
	}
}

// blockLabel names profile blocks by their subject.
func blockLabel(blk exam.Block) string {
	if blk.Subject != "" {
		return bank.SubjectName(blk.Subject)
	}
	return blk.Title
}

func shortLabel(blk exam.Block) string {
	switch blk.Kind {
	case exam.BlockReadingLiteracy:
		return "RL"
	case exam.BlockMathLiteracy:
		return "ML"
	case exam.BlockHistory:
		return "HI"
	}
	name := blockLabel(blk)
	if len(name) > 4 {
		name = name[:4]
	}
	return name
}

// positionOf maps a zero-based exam-wide index to (block, question).
// Indexes past the end land on the last question.
func positionOf(e *exam.Exam, n int) (int, int) {
	last := exam.Position{}
	for b, blk := range e.Blocks {
		if n < len(blk.Questions) {
			return b, n
		}
		n -= len(blk.Questions)
		if len(blk.Questions) > 0 {
			last = exam.Position{Block: b, Question: len(blk.Questions) - 1}
		}
	}
	return last.Block, last.Question
}

// indexOf is the inverse of positionOf.
func indexOf(e *exam.Exam, pos exam.Position) int {
	n := 0
	for b := 0; b < pos.Block; b++ {
		n += len(e.Blocks[b].Questions)
	}
	return n + pos.Question
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
