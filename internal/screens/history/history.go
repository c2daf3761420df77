package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/exam"
	hist "github.com/abhisek/examprep/internal/history"
	"github.com/abhisek/examprep/internal/router"
	"github.com/abhisek/examprep/internal/screen"
	"github.com/abhisek/examprep/internal/ui/layout"
	"github.com/abhisek/examprep/internal/ui/report"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// HistoryScreen lists past sittings, most recent first.
type HistoryScreen struct {
	book     *hist.Book
	results  []exam.Result
	selected int
	expanded map[int]bool
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.Refresher = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(book *hist.Book) *HistoryScreen {
	return &HistoryScreen{
		book:     book,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.Refresh()
}

// Refresh reloads the list from the book.
func (s *HistoryScreen) Refresh() tea.Cmd {
	s.results = s.book.Results()
	if s.selected >= len(s.results) {
		s.selected = max(len(s.results)-1, 0)
	}
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No sittings yet. Finish a mock exam to see it here.")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  Last %d of at most %d sittings", len(s.results), s.book.Limit())))
	b.WriteString("\n\n")

	for i, r := range s.results {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s  %-12s  %-34s  %s",
			prefix,
			r.FinishedAt.Local().Format(report.DateFormat),
			r.VariantTitle,
			report.Subjects(r.Subjects),
			report.Score(r.Correct, r.Total, r.Percent),
		)

		style := theme.Unselected
		if i == s.selected {
			style = theme.Selected
		}
		b.WriteString("  " + style.Render(line) + "\n")

		if s.expanded[i] {
			for _, blk := range r.Blocks {
				detail := fmt.Sprintf("      %-24s %s",
					report.BlockName(blk.Title, blk.Subject),
					report.Score(blk.Correct, blk.Total, blk.Percent))
				b.WriteString("  " + theme.Hint.Render(detail) + "\n")
			}
		}
	}

	lines := strings.Split(b.String(), "\n")
	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
