package exam

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examprep/internal/bank"
)

// Options configures a Session. Zero values select production defaults.
type Options struct {
	// Rand drives profile-block sampling. Tests inject a seeded source.
	Rand *rand.Rand

	// Now reads the wall clock for the timer anchor and elapsed time.
	Now func() time.Time

	// Duration is the countdown budget (DefaultDuration if zero).
	Duration time.Duration

	// History carries results from earlier sittings (empty if nil).
	History *History
}

// Session is the state of one learner's mock exam, from configuration
// through scoring. A Session is owned by a single caller and is not safe
// for concurrent use; hosts with many sessions serialize access per session.
type Session struct {
	src      Source
	rng      *rand.Rand
	now      func() time.Time
	duration time.Duration

	phase     Phase
	variantID string
	subjects  [2]string

	exam      *Exam
	answers   map[string]*Answer
	pos       Position
	startedAt time.Time
	remaining int

	result  *Result
	history *History
}

// New creates a session in PhaseSelect.
func New(src Source, opts Options) *Session {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.History == nil {
		opts.History = NewHistory(HistoryLimit, nil)
	}
	return &Session{
		src:      src,
		rng:      opts.Rand,
		now:      opts.Now,
		duration: opts.Duration,
		phase:    PhaseSelect,
		history:  opts.History,
	}
}

// SelectVariant records the variant to sit.
func (s *Session) SelectVariant(id string) error {
	if s.phase != PhaseSelect {
		return ErrWrongPhase
	}
	if _, ok := s.src.Variant(id); !ok {
		return ErrUnknownVariant
	}
	s.variantID = id
	return nil
}

// SelectSubjects records the two distinct profile subjects.
func (s *Session) SelectSubjects(first, second string) error {
	if s.phase != PhaseSelect {
		return ErrWrongPhase
	}
	if !s.src.HasSubject(first) || !s.src.HasSubject(second) {
		return ErrUnknownSubject
	}
	if first == second {
		return ErrSameSubject
	}
	s.subjects = [2]string{first, second}
	return nil
}

// Configure selects the variant and both subjects, or nothing on error.
func (s *Session) Configure(variantID, first, second string) error {
	if s.phase != PhaseSelect {
		return ErrWrongPhase
	}
	if _, ok := s.src.Variant(variantID); !ok {
		return ErrUnknownVariant
	}
	if err := s.SelectSubjects(first, second); err != nil {
		return err
	}
	s.variantID = variantID
	return nil
}

// Start assembles a new exam and begins the countdown. Live state of any
// earlier sitting is discarded; history is kept.
func (s *Session) Start() error {
	if s.variantID == "" || s.subjects[0] == "" || s.subjects[1] == "" {
		return ErrNotConfigured
	}

	e, err := Assemble(s.src, s.variantID, s.subjects, s.rng)
	if err != nil {
		return err
	}
	first, ok := firstPosition(e)
	if !ok {
		return ErrEmptyExam
	}

	answers := make(map[string]*Answer, e.QuestionCount())
	for bi, blk := range e.Blocks {
		for _, q := range blk.Questions {
			answers[q.ID] = &Answer{QuestionID: q.ID, Block: bi}
		}
	}

	s.exam = e
	s.answers = answers
	s.pos = first
	s.startedAt = s.now()
	s.remaining = int(s.duration / time.Second)
	s.result = nil
	s.phase = PhaseExam
	return nil
}

// RecordAnswer stores the selected option for a question, overwriting any
// earlier selection. Correctness is not evaluated until Finish.
func (s *Session) RecordAnswer(questionID string, option int) error {
	a, err := s.editableAnswer(questionID)
	if err != nil {
		return err
	}
	if option < 0 || option >= bank.OptionCount {
		return ErrInvalidOption
	}
	a.Selected = &option
	return nil
}

// ToggleFlag inverts the review flag of a question.
func (s *Session) ToggleFlag(questionID string) error {
	a, err := s.editableAnswer(questionID)
	if err != nil {
		return err
	}
	a.Flagged = !a.Flagged
	return nil
}

func (s *Session) editableAnswer(questionID string) (*Answer, error) {
	if s.exam == nil {
		return nil, ErrNoExam
	}
	if s.phase != PhaseExam {
		return nil, ErrWrongPhase
	}
	a, ok := s.answers[questionID]
	if !ok {
		return nil, ErrUnknownQuestion
	}
	return a, nil
}

// Tick advances the countdown by one second. Outside PhaseExam it does
// nothing. When the countdown would reach zero it finishes the sitting,
// leaves Remaining at 0 and returns the result; otherwise it returns nil.
func (s *Session) Tick() *Result {
	if s.phase != PhaseExam || s.exam == nil {
		return nil
	}
	if s.remaining-1 <= 0 {
		s.remaining = 0
		return s.finish()
	}
	s.remaining--
	return nil
}

// Finish scores the sitting, stores the result as current and prepends it
// to history. Scoring happens exactly once per sitting.
func (s *Session) Finish() (*Result, error) {
	if s.exam == nil {
		return nil, ErrNoExam
	}
	if s.phase != PhaseExam {
		return nil, ErrWrongPhase
	}
	return s.finish(), nil
}

func (s *Session) finish() *Result {
	r := Score(s.exam, s.answers, s.startedAt, s.now())
	r.ID = uuid.NewString()

	for _, blk := range s.exam.Blocks {
		for _, q := range blk.Questions {
			a := s.answers[q.ID]
			c := a.Selected != nil && *a.Selected == q.Correct
			a.Correct = &c
		}
	}

	s.result = &r
	s.history.Add(r)
	s.phase = PhaseResults

	out := r
	return &out
}

// EnterReview switches a scored sitting to review mode at the given
// position. Answers, flags and the result are left untouched.
func (s *Session) EnterReview(block, question int) error {
	if s.exam == nil {
		return ErrNoExam
	}
	if s.phase != PhaseResults && s.phase != PhaseReview {
		return ErrWrongPhase
	}
	s.phase = PhaseReview
	s.jump(block, question)
	return nil
}

// ShowResults returns from review to the results view.
func (s *Session) ShowResults() error {
	if s.phase != PhaseReview {
		return ErrWrongPhase
	}
	s.phase = PhaseResults
	return nil
}

// Reset clears configuration and all live state and returns to
// PhaseSelect. History is kept.
func (s *Session) Reset() {
	s.phase = PhaseSelect
	s.variantID = ""
	s.subjects = [2]string{}
	s.exam = nil
	s.answers = nil
	s.pos = Position{}
	s.startedAt = time.Time{}
	s.remaining = 0
	s.result = nil
}

// Phase returns the lifecycle stage.
func (s *Session) Phase() Phase { return s.phase }

// VariantID returns the selected variant ("" if none).
func (s *Session) VariantID() string { return s.variantID }

// Subjects returns the selected profile subjects.
func (s *Session) Subjects() [2]string { return s.subjects }

// Exam returns the assembled exam, or nil before Start. Callers must
// treat it as read-only.
func (s *Session) Exam() *Exam { return s.exam }

// Position returns the navigation pointer.
func (s *Session) Position() Position { return s.pos }

// Remaining returns the countdown in seconds.
func (s *Session) Remaining() int { return s.remaining }

// Duration returns the countdown budget of a sitting.
func (s *Session) Duration() time.Duration { return s.duration }

// StartedAt returns the timer anchor (zero before Start).
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Answer returns a copy of the answer record for a question.
func (s *Session) Answer(questionID string) (Answer, bool) {
	a, ok := s.answers[questionID]
	if !ok {
		return Answer{}, false
	}
	return copyAnswer(a), true
}

// Answers returns copies of all answer records in exam order.
func (s *Session) Answers() []Answer {
	if s.exam == nil {
		return nil
	}
	out := make([]Answer, 0, len(s.answers))
	for _, blk := range s.exam.Blocks {
		for _, q := range blk.Questions {
			out = append(out, copyAnswer(s.answers[q.ID]))
		}
	}
	return out
}

// Current returns the question and answer under the pointer.
func (s *Session) Current() (bank.Question, Answer, bool) {
	if s.exam == nil {
		return bank.Question{}, Answer{}, false
	}
	q, ok := s.exam.Question(s.pos.Block, s.pos.Question)
	if !ok {
		return bank.Question{}, Answer{}, false
	}
	return q, copyAnswer(s.answers[q.ID]), true
}

// Result returns the current sitting's result, if scored.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// History returns past results, most recent first.
func (s *Session) History() []Result {
	return s.history.Results()
}

// Progress counts answered and flagged questions.
type Progress struct {
	Total    int `json:"total"`
	Answered int `json:"answered"`
	Flagged  int `json:"flagged"`
}

// Progress summarizes the answer records of the current exam.
func (s *Session) Progress() Progress {
	var p Progress
	for _, a := range s.answers {
		p.Total++
		if a.Selected != nil {
			p.Answered++
		}
		if a.Flagged {
			p.Flagged++
		}
	}
	return p
}

func copyAnswer(a *Answer) Answer {
	out := *a
	if a.Selected != nil {
		v := *a.Selected
		out.Selected = &v
	}
	if a.Correct != nil {
		v := *a.Correct
		out.Correct = &v
	}
	return out
}
