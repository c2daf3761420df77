package exam

import "errors"

// Precondition failures. A method that returns one of these leaves the
// session unchanged, so UI callers that gate their actions may ignore them.
var (
	ErrNotConfigured   = errors.New("exam: variant and two profile subjects must be selected")
	ErrUnknownVariant  = errors.New("exam: unknown variant")
	ErrUnknownSubject  = errors.New("exam: unknown profile subject")
	ErrSameSubject     = errors.New("exam: profile subjects must differ")
	ErrNoExam          = errors.New("exam: no exam assembled")
	ErrEmptyExam       = errors.New("exam: assembled exam has no questions")
	ErrWrongPhase      = errors.New("exam: action not allowed in current phase")
	ErrUnknownQuestion = errors.New("exam: unknown question")
	ErrInvalidOption   = errors.New("exam: option index out of range")
	ErrDuplicateID     = errors.New("exam: question id appears twice in exam")
)
