// Package registry hosts many independent exam sessions, serializes access
// to each one and drives their countdowns.
package registry

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/history"
	"github.com/abhisek/examprep/internal/store"
	"github.com/abhisek/examprep/internal/ticker"
)

// ErrNotFound is returned for an unknown session id.
var ErrNotFound = errors.New("registry: session not found")

// DefaultTickInterval is one countdown second.
const DefaultTickInterval = time.Second

// Config wires a Registry. Source and Book are required.
type Config struct {
	Source exam.Source
	Book   *history.Book

	// Events receives start/finish lifecycle events (optional).
	Events store.EventRepo

	Logger       *slog.Logger
	Duration     time.Duration
	TickInterval time.Duration

	// NewRand returns the sampling source of each new session (optional).
	NewRand func() *rand.Rand
	Now     func() time.Time
}

// Registry owns every live session. Sessions never share mutable state
// beyond the history book.
type Registry struct {
	ctx context.Context
	cfg Config
	log *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*entry
}

type entry struct {
	id string

	mu        sync.Mutex
	s         *exam.Session
	tick      *ticker.Handle
	gen       int
	inExam    bool
	startedAt time.Time
	recorded  string
}

// New creates a registry. Tickers run under ctx and stop when it is done.
func New(ctx context.Context, cfg Config) (*Registry, error) {
	if cfg.Source == nil {
		return nil, errors.New("registry: source is required")
	}
	if cfg.Book == nil {
		return nil, errors.New("registry: history book is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	return &Registry{
		ctx:      ctx,
		cfg:      cfg,
		log:      cfg.Logger.With("component", "registry"),
		sessions: make(map[string]*entry),
	}, nil
}

// Create allocates a new session in the select phase and returns its id.
func (r *Registry) Create() string {
	opts := exam.Options{
		Now:      r.cfg.Now,
		Duration: r.cfg.Duration,
		History:  r.cfg.Book.Fork(),
	}
	if r.cfg.NewRand != nil {
		opts.Rand = r.cfg.NewRand()
	}

	e := &entry{
		id: uuid.New().String(),
		s:  exam.New(r.cfg.Source, opts),
	}

	r.mu.Lock()
	r.sessions[e.id] = e
	r.mu.Unlock()

	r.log.Info("session created", "session_id", e.id)
	return e.id
}

// Do runs fn with exclusive access to the session. Timer state and history
// are reconciled after fn returns, whatever its outcome.
func (r *Registry) Do(id string, fn func(s *exam.Session) error) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	err = fn(e.s)
	r.reconcile(e)
	return err
}

// Snapshot returns a read-only copy of the session.
func (r *Registry) Snapshot(id string) (exam.Snapshot, error) {
	var snap exam.Snapshot
	err := r.Do(id, func(s *exam.Session) error {
		snap = s.Snapshot()
		return nil
	})
	return snap, err
}

// Delete stops the session's timer and forgets it.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	h := e.stopTicker()
	e.mu.Unlock()
	if h != nil {
		h.Stop()
	}

	r.log.Info("session deleted", "session_id", id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops every timer. Sessions remain readable.
func (r *Registry) Close() {
	r.mu.RLock()
	entries := make([]*entry, 0, len(r.sessions))
	for _, e := range r.sessions {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	for _, e := range entries {
		e.mu.Lock()
		h := e.stopTicker()
		e.mu.Unlock()
		if h != nil {
			h.Stop()
		}
	}
}

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// reconcile starts or stops the countdown to match the phase and records a
// newly produced result. Callers hold e.mu.
func (r *Registry) reconcile(e *entry) {
	s := e.s

	if s.Phase() == exam.PhaseExam {
		if !e.inExam || !s.StartedAt().Equal(e.startedAt) {
			e.inExam = true
			e.startedAt = s.StartedAt()
			r.appendEvent(store.SessionEventData{
				SessionID: e.id,
				Action:    store.ActionStart,
				VariantID: s.VariantID(),
				Subjects:  s.Subjects(),
			})
			r.log.Info("sitting started", "session_id", e.id, "variant_id", s.VariantID())
		}
		if e.tick == nil {
			r.startTicker(e)
		}
	} else {
		e.inExam = false
		// The goroutine exits on its own once it sees the generation change.
		e.stopTicker()
	}

	if res, ok := s.Result(); ok && res.ID != e.recorded {
		e.recorded = res.ID
		r.record(e.id, res)
	}
}

func (r *Registry) startTicker(e *entry) {
	e.gen++
	gen := e.gen
	e.tick = ticker.Start(r.ctx, r.cfg.TickInterval, func() bool {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.gen != gen {
			return false
		}
		if res := e.s.Tick(); res != nil {
			r.log.Info("time expired", "session_id", e.id)
		}
		r.reconcile(e)
		return e.gen == gen && e.s.Phase() == exam.PhaseExam
	})
}

// stopTicker detaches the running ticker without waiting for it, since its
// goroutine may be blocked on e.mu. Callers hold e.mu.
func (e *entry) stopTicker() *ticker.Handle {
	h := e.tick
	if h == nil {
		return nil
	}
	e.tick = nil
	e.gen++
	return h
}

func (r *Registry) record(sessionID string, res exam.Result) {
	if err := r.cfg.Book.Record(r.ctx, res); err != nil {
		r.log.Error("failed to record result", "session_id", sessionID, "result_id", res.ID, "error", err)
	}

	var secs int
	if res.FinishedAt.After(res.StartedAt) {
		secs = int(res.FinishedAt.Sub(res.StartedAt) / time.Second)
	}
	r.appendEvent(store.SessionEventData{
		SessionID:    sessionID,
		Action:       store.ActionFinish,
		VariantID:    res.VariantID,
		Subjects:     res.Subjects,
		Questions:    res.Total,
		Correct:      res.Correct,
		DurationSecs: secs,
	})
	r.log.Info("sitting finished",
		"session_id", sessionID,
		"result_id", res.ID,
		"correct", res.Correct,
		"total", res.Total,
		"percent", res.Percent,
	)
}

func (r *Registry) appendEvent(data store.SessionEventData) {
	if r.cfg.Events == nil {
		return
	}
	if err := r.cfg.Events.AppendSessionEvent(r.ctx, data); err != nil {
		r.log.Warn("failed to append session event", "session_id", data.SessionID, "action", data.Action, "error", err)
	}
}
