package exam

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/examprep/internal/bank"
)

// Source supplies read-only content for assembly. *bank.Bank implements it.
type Source interface {
	Variant(id string) (bank.Variant, bool)
	Pool(subject string) []bank.Question
	HasSubject(subject string) bool
}

// Assemble realizes an exam. Mandatory blocks take the variant's lists
// verbatim; each profile block is a prefix of a random permutation of the
// subject pool, or the whole shuffled pool when it is smaller than
// ProfileCount.
func Assemble(src Source, variantID string, subjects [2]string, rng *rand.Rand) (*Exam, error) {
	v, ok := src.Variant(variantID)
	if !ok {
		return nil, ErrUnknownVariant
	}

	e := &Exam{VariantID: v.ID, VariantTitle: v.Title}
	mandatory := [3][]bank.Question{v.ReadingLiteracy, v.MathLiteracy, v.History}

	for i, spec := range Layout {
		blk := Block{Kind: spec.Kind, Title: spec.Title}
		if spec.Profile {
			subject := subjects[i-len(mandatory)]
			blk.Subject = subject
			blk.Questions = sample(src.Pool(subject), spec.Required, rng)
		} else {
			blk.Questions = append([]bank.Question(nil), mandatory[i]...)
		}
		e.Blocks[i] = blk
	}

	seen := make(map[string]bool, e.QuestionCount())
	for _, blk := range e.Blocks {
		for _, q := range blk.Questions {
			if seen[q.ID] {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateID, q.ID)
			}
			seen[q.ID] = true
		}
	}
	return e, nil
}

// sample draws up to n questions from pool without replacement.
func sample(pool []bank.Question, n int, rng *rand.Rand) []bank.Question {
	perm := rng.Perm(len(pool))
	if len(perm) > n {
		perm = perm[:n]
	}
	out := make([]bank.Question, len(perm))
	for i, idx := range perm {
		out[i] = pool[idx]
	}
	return out
}
