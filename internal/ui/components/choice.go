package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// OptionLabels are the letters shown before each option.
var OptionLabels = []string{"A", "B", "C", "D"}

// Choice renders the options of one question. With Reveal set it marks the
// correct option and a wrong selection.
type Choice struct {
	Options  []string
	Cursor   int
	Selected *int
	Reveal   bool
	Correct  int
}

// View renders the option list.
func (c Choice) View(width int) string {
	var b strings.Builder
	for i, opt := range c.Options {
		label := fmt.Sprint(i + 1)
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}

		prefix := "  "
		if i == c.Cursor && !c.Reveal {
			prefix = "▸ "
		}
		chosen := c.Selected != nil && *c.Selected == i
		marker := "( )"
		if chosen {
			marker = "(•)"
		}
		line := fmt.Sprintf("%s%s %d/%s)  %s", prefix, marker, i+1, label, opt)

		style := theme.Unselected
		switch {
		case c.Reveal && i == c.Correct:
			style = theme.Correct
		case c.Reveal && chosen:
			style = theme.Incorrect
		case c.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.MaxWidth(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
