package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// Meter is a one-line count bar such as "Answered ████░░░░  42/120".
type Meter struct {
	Label string
	Value int
	Total int
	Width int
}

// View renders the meter in Width columns, never narrower than a
// four-cell bar.
func (m Meter) View() string {
	var out string
	if m.Label != "" {
		out = lipgloss.NewStyle().Foreground(theme.Text).Render(m.Label) + "  "
	}
	count := fmt.Sprintf("  %d/%d", m.Value, m.Total)

	bar := m.Width - lipgloss.Width(out) - len(count)
	if bar < 4 {
		bar = 4
	}
	filled := int(Fraction(m.Value, m.Total) * float64(bar))
	filled = min(max(filled, 0), bar)

	out += theme.MeterFilled.Render(strings.Repeat(" ", filled))
	out += theme.MeterEmpty.Render(strings.Repeat(" ", bar-filled))
	return out + lipgloss.NewStyle().Foreground(theme.TextDim).Render(count)
}

// Fraction returns part/whole clamped to [0, 1], 0 when whole is 0.
func Fraction(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return min(max(float64(part)/float64(whole), 0), 1)
}
