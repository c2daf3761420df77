package exam

import "github.com/abhisek/examprep/internal/bank"

// Phase is the lifecycle stage of a session.
type Phase string

const (
	PhaseSelect  Phase = "select"  // Choosing variant and profile subjects
	PhaseExam    Phase = "exam"    // Sitting in progress, timer running
	PhaseResults Phase = "results" // Scored, showing the result
	PhaseReview  Phase = "review"  // Inspecting answered questions, read-only
)

// Block is a realized exam section with its concrete questions.
type Block struct {
	Kind      BlockKind       `json:"kind"`
	Title     string          `json:"title"`
	Subject   string          `json:"subject,omitempty"`
	Questions []bank.Question `json:"questions"`
}

// Exam is one assembled sitting.
type Exam struct {
	VariantID    string           `json:"variant_id"`
	VariantTitle string           `json:"variant_title"`
	Blocks       [NumBlocks]Block `json:"blocks"`
}

// QuestionCount returns the number of questions across all blocks.
func (e *Exam) QuestionCount() int {
	n := 0
	for _, b := range e.Blocks {
		n += len(b.Questions)
	}
	return n
}

// Question returns the question at (block, index).
func (e *Exam) Question(block, index int) (bank.Question, bool) {
	if block < 0 || block >= NumBlocks {
		return bank.Question{}, false
	}
	qs := e.Blocks[block].Questions
	if index < 0 || index >= len(qs) {
		return bank.Question{}, false
	}
	return qs[index], true
}

// Answer is the per-question record of a sitting.
type Answer struct {
	QuestionID string `json:"question_id"`
	Block      int    `json:"block"`
	Selected   *int   `json:"selected"`
	Correct    *bool  `json:"correct,omitempty"`
	Flagged    bool   `json:"flagged"`
}

// Answered reports whether an option has been selected.
func (a Answer) Answered() bool {
	return a.Selected != nil
}

// Position addresses a question inside the exam.
type Position struct {
	Block    int `json:"block"`
	Question int `json:"question"`
}
