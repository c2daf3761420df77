package http

import (
	"time"

	"github.com/abhisek/examprep/internal/bank"
	"github.com/abhisek/examprep/internal/exam"
)

// sessionView is the wire form of a session. The answer key is withheld
// until the sitting is scored.
type sessionView struct {
	ID        string        `json:"id"`
	Phase     exam.Phase    `json:"phase"`
	VariantID string        `json:"variant_id,omitempty"`
	Subjects  [2]string     `json:"subjects"`
	Position  exam.Position `json:"position"`
	Remaining int           `json:"remaining_seconds"`
	StartedAt *time.Time    `json:"started_at,omitempty"`
	Progress  exam.Progress `json:"progress"`
	Blocks    []blockView   `json:"blocks,omitempty"`
	Answers   []exam.Answer `json:"answers,omitempty"`
	Result    *exam.Result  `json:"result,omitempty"`
	History   []exam.Result `json:"history"`
}

type blockView struct {
	Kind      exam.BlockKind `json:"kind"`
	Title     string         `json:"title"`
	Subject   string         `json:"subject,omitempty"`
	Questions []questionView `json:"questions"`
}

type questionView struct {
	ID          string          `json:"id"`
	Text        string          `json:"text"`
	Options     []string        `json:"options"`
	Topic       string          `json:"topic"`
	Difficulty  bank.Difficulty `json:"difficulty"`
	Correct     *int            `json:"correct,omitempty"`
	Explanation string          `json:"explanation,omitempty"`
}

func newSessionView(id string, snap exam.Snapshot) sessionView {
	v := sessionView{
		ID:        id,
		Phase:     snap.Phase,
		VariantID: snap.VariantID,
		Subjects:  snap.Subjects,
		Position:  snap.Position,
		Remaining: snap.Remaining,
		StartedAt: snap.StartedAt,
		Progress:  snap.Progress,
		Answers:   snap.Answers,
		Result:    snap.Result,
		History:   snap.History,
	}
	if v.History == nil {
		v.History = []exam.Result{}
	}
	if snap.Exam == nil {
		return v
	}

	reveal := snap.Phase == exam.PhaseResults || snap.Phase == exam.PhaseReview
	v.Blocks = make([]blockView, len(snap.Exam.Blocks))
	for i, blk := range snap.Exam.Blocks {
		bv := blockView{
			Kind:      blk.Kind,
			Title:     blk.Title,
			Subject:   blk.Subject,
			Questions: make([]questionView, len(blk.Questions)),
		}
		for j, q := range blk.Questions {
			qv := questionView{
				ID:         q.ID,
				Text:       q.Text,
				Options:    q.Options,
				Topic:      q.Topic,
				Difficulty: q.Difficulty,
			}
			if reveal {
				correct := q.Correct
				qv.Correct = &correct
				qv.Explanation = q.Explanation
			}
			bv.Questions[j] = qv
		}
		v.Blocks[i] = bv
	}
	return v
}
