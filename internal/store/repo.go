package store

import (
	"context"
	"time"

	"github.com/abhisek/examprep/internal/exam"
)

// ResultRepo persists scored sittings. History is the only state that
// survives a restart.
type ResultRepo interface {
	// Append stores a new result.
	Append(ctx context.Context, r exam.Result) error

	// Recent returns up to limit results, most recent first (0 = all).
	Recent(ctx context.Context, limit int) ([]exam.Result, error)

	// Prune deletes all but the keep most recent results.
	Prune(ctx context.Context, keep int) error

	// Count returns the number of stored results.
	Count(ctx context.Context) (int, error)

	// Clear deletes every stored result.
	Clear(ctx context.Context) error
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID    string
	Action       string // "start" or "finish"
	VariantID    string
	Subjects     [2]string
	Questions    int // on finish only
	Correct      int // on finish only
	DurationSecs int // on finish only
}

// SessionEvent is a stored lifecycle event.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// Session lifecycle actions.
const (
	ActionStart  = "start"
	ActionFinish = "finish"
)

// EventRepo provides append and query access to session events.
type EventRepo interface {
	// AppendSessionEvent records a session start or finish.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// SessionEvents returns the events of one session in sequence order.
	SessionEvents(ctx context.Context, sessionID string) ([]SessionEvent, error)
}
