package exam

import "time"

// Snapshot is a read-only copy of everything presentation code renders.
type Snapshot struct {
	Phase     Phase      `json:"phase"`
	VariantID string     `json:"variant_id,omitempty"`
	Subjects  [2]string  `json:"subjects"`
	Position  Position   `json:"position"`
	Remaining int        `json:"remaining_seconds"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	Exam      *Exam      `json:"exam,omitempty"`
	Answers   []Answer   `json:"answers,omitempty"`
	Progress  Progress   `json:"progress"`
	Result    *Result    `json:"result,omitempty"`
	History   []Result   `json:"history"`
}

// Snapshot captures the session for rendering or serialization.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:     s.phase,
		VariantID: s.variantID,
		Subjects:  s.subjects,
		Position:  s.pos,
		Remaining: s.remaining,
		Exam:      s.exam,
		Answers:   s.Answers(),
		Progress:  s.Progress(),
		History:   s.History(),
	}
	if !s.startedAt.IsZero() {
		t := s.startedAt
		snap.StartedAt = &t
	}
	if r, ok := s.Result(); ok {
		snap.Result = &r
	}
	return snap
}
