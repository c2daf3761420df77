package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examprep/internal/ui/theme"
)

// Minimum terminal size: a question with four options and the block
// summary must fit without scrolling.
const (
	MinWidth  = 80
	MinHeight = 24
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a larger terminal. The running countdown
// is not paused while it shows.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("Terminal is %d x %d.\nResize to at least %d x %d to continue the sitting.",
			width, height, MinWidth, MinHeight))
}

// bar is the rounded card shared by header and footer.
func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader shows the app name, the screen title and, flush right,
// status (the countdown during a sitting).
func RenderHeader(title, status string, width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  examprep")
	if title != "" {
		name += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ·  ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	}

	inner := max(width-4, 0)
	gap := max(inner-lipgloss.Width(name)-lipgloss.Width(status)-2, 1)
	return bar(width, name+strings.Repeat(" ", gap)+status)
}

func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, key.Render(h.Key)+" "+desc.Render(h.Description))
	}
	return bar(width, "  "+strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, padding content to fill
// the space between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return header + "\n" + lipgloss.NewStyle().Width(width).Height(body).Render(content) + "\n" + footer
}

// FormatClock renders seconds as H:MM:SS.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

func Centered(width int, style lipgloss.Style, text string) string {
	return style.Width(width).Align(lipgloss.Center).Render(text)
}
