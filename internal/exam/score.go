package exam

import (
	"math"
	"time"

	"github.com/abhisek/examprep/internal/bank"
)

// Tally counts questions seen and answered correctly.
type Tally struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

// Percent returns the rounded correct percentage, 0 for an empty tally.
func (t Tally) Percent() int {
	return percent(t.Correct, t.Total)
}

// BlockResult is the scored breakdown of one block.
type BlockResult struct {
	Kind         BlockKind                 `json:"kind"`
	Title        string                    `json:"title"`
	Subject      string                    `json:"subject,omitempty"`
	Total        int                       `json:"total"`
	Correct      int                       `json:"correct"`
	Percent      int                       `json:"percent"`
	ByDifficulty map[bank.Difficulty]Tally `json:"by_difficulty"`
	ByTopic      map[string]Tally          `json:"by_topic"`
}

// Result is the immutable scored snapshot of a finished sitting.
type Result struct {
	ID             string                 `json:"id"`
	VariantID      string                 `json:"variant_id"`
	VariantTitle   string                 `json:"variant_title"`
	Subjects       [2]string              `json:"subjects"`
	Blocks         [NumBlocks]BlockResult `json:"blocks"`
	Total          int                    `json:"total"`
	Correct        int                    `json:"correct"`
	Percent        int                    `json:"percent"`
	ElapsedMinutes int                    `json:"elapsed_minutes"`
	StartedAt      time.Time              `json:"started_at"`
	FinishedAt     time.Time              `json:"finished_at"`
}

// Score compares every stored selection against the correct index and
// aggregates per block and for the whole exam. It is a pure function of its
// inputs. A question whose answer record is missing counts as unanswered.
func Score(e *Exam, answers map[string]*Answer, startedAt, finishedAt time.Time) Result {
	r := Result{
		VariantID:    e.VariantID,
		VariantTitle: e.VariantTitle,
		Subjects:     [2]string{e.Blocks[3].Subject, e.Blocks[4].Subject},
		StartedAt:    startedAt,
		FinishedAt:   finishedAt,
	}

	for i, blk := range e.Blocks {
		br := BlockResult{
			Kind:         blk.Kind,
			Title:        blk.Title,
			Subject:      blk.Subject,
			ByDifficulty: make(map[bank.Difficulty]Tally, len(bank.Difficulties)),
			ByTopic:      make(map[string]Tally),
		}
		for _, d := range bank.Difficulties {
			br.ByDifficulty[d] = Tally{}
		}

		for _, q := range blk.Questions {
			correct := isCorrect(q, answers[q.ID])
			br.Total++
			if correct {
				br.Correct++
			}
			br.ByDifficulty[q.Difficulty] = bump(br.ByDifficulty[q.Difficulty], correct)
			br.ByTopic[q.Topic] = bump(br.ByTopic[q.Topic], correct)
		}
		br.Percent = percent(br.Correct, br.Total)

		r.Blocks[i] = br
		r.Total += br.Total
		r.Correct += br.Correct
	}

	r.Percent = percent(r.Correct, r.Total)
	if !startedAt.IsZero() && finishedAt.After(startedAt) {
		r.ElapsedMinutes = int(finishedAt.Sub(startedAt) / time.Minute)
	}
	return r
}

func isCorrect(q bank.Question, a *Answer) bool {
	return a != nil && a.Selected != nil && *a.Selected == q.Correct
}

func bump(t Tally, correct bool) Tally {
	t.Total++
	if correct {
		t.Correct++
	}
	return t
}

func percent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
