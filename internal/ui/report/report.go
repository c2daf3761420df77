// Package report renders scored sittings, history and study plans as
// styled terminal text. The TUI screens and the history command share it.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/studyplan"
	"github.com/abhisek/examprep/internal/ui/theme"
)

// DateFormat is how finish times are printed.
const DateFormat = "2006-01-02 15:04"

// NewTable returns an empty table in the app styling.
func NewTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return theme.TableHeader
			}
			return theme.TableCell
		}).
		Headers(headers...)
}

// BlockName labels a block: profile blocks by their subject name.
func BlockName(title, subject string) string {
	if subject != "" {
		return bank.SubjectName(subject)
	}
	return title
}

// Subjects joins the two profile subject names.
func Subjects(ids [2]string) string {
	return bank.SubjectName(ids[0]) + " + " + bank.SubjectName(ids[1])
}

// Score is "correct/total (percent%)".
func Score(correct, total, percent int) string {
	return fmt.Sprintf("%d/%d (%d%%)", correct, total, percent)
}

// BlockTable lists the per-block scores of r and a total row.
func BlockTable(r exam.Result) *table.Table {
	t := NewTable("Block", "Correct", "Total", "%", "Easy", "Medium", "Hard")
	for _, blk := range r.Blocks {
		row := []string{
			BlockName(blk.Title, blk.Subject),
			strconv.Itoa(blk.Correct),
			strconv.Itoa(blk.Total),
			strconv.Itoa(blk.Percent),
		}
		for _, d := range bank.Difficulties {
			tally := blk.ByDifficulty[d]
			if tally.Total == 0 {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%d/%d", tally.Correct, tally.Total))
		}
		t.Row(row...)
	}
	t.Row("Total", strconv.Itoa(r.Correct), strconv.Itoa(r.Total), strconv.Itoa(r.Percent), "", "", "")
	return t
}

// HistoryTable lists results most recent first, numbered from 1.
func HistoryTable(results []exam.Result) *table.Table {
	t := NewTable("#", "Finished", "Variant", "Subjects", "Score", "Minutes")
	for i, r := range results {
		t.Row(
			strconv.Itoa(i+1),
			r.FinishedAt.Local().Format(DateFormat),
			r.VariantTitle,
			Subjects(r.Subjects),
			Score(r.Correct, r.Total, r.Percent),
			strconv.Itoa(r.ElapsedMinutes),
		)
	}
	return t
}

// Plan renders the study plan week by week.
func Plan(p *studyplan.Plan) string {
	if p == nil || p.Empty() {
		return theme.Hint.Render("No weak topics: every topic was answered correctly.")
	}

	var b strings.Builder
	for i, w := range p.Weeks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Heading.Render(fmt.Sprintf("Week %d", w.Number)))
		b.WriteString("\n")
		if len(w.Slots) == 0 {
			b.WriteString(theme.Hint.Render("  free week"))
			b.WriteString("\n")
			continue
		}
		for _, s := range w.Slots {
			line := fmt.Sprintf("  %-8s %s: %s (%d/%d, %d%%)",
				s.Category, s.Area, s.Topic, s.Correct, s.Total, s.Percent())
			style := theme.Body
			if s.Category == studyplan.CategoryReview {
				style = theme.Hint
			}
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}
