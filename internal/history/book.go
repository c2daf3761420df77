// Package history keeps the bounded record of completed sittings shared by
// every session on a host, mirrored to the result store.
package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/abhisek/examprep/internal/exam"
	"github.com/abhisek/examprep/internal/store"
)

// Book is the shared, most-recent-first history. It is safe for concurrent use.
type Book struct {
	mu   sync.Mutex
	repo store.ResultRepo
	hist *exam.History
}

// Load reads up to limit stored results. A nil repo yields an in-memory book.
func Load(ctx context.Context, repo store.ResultRepo, limit int) (*Book, error) {
	var prior []exam.Result
	if repo != nil {
		var err error
		prior, err = repo.Recent(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("load history: %w", err)
		}
	}
	return &Book{repo: repo, hist: exam.NewHistory(limit, prior)}, nil
}

// Record prepends r, persists it and prunes the store to the cap.
// The in-memory entry is kept even when persisting fails.
func (b *Book) Record(ctx context.Context, r exam.Result) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.hist.Add(r)
	if b.repo == nil {
		return nil
	}
	if err := b.repo.Append(ctx, r); err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	if err := b.repo.Prune(ctx, b.hist.Limit()); err != nil {
		return fmt.Errorf("prune history: %w", err)
	}
	return nil
}

// Results returns the entries, most recent first.
func (b *Book) Results() []exam.Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hist.Results()
}

// Len returns the number of entries.
func (b *Book) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hist.Len()
}

// Limit returns the cap.
func (b *Book) Limit() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hist.Limit()
}

// Fork returns a session-local copy of the history to seed a new session.
func (b *Book) Fork() *exam.History {
	b.mu.Lock()
	defer b.mu.Unlock()
	return exam.NewHistory(b.hist.Limit(), b.hist.Results())
}

// Clear drops every entry, in memory and in the store.
func (b *Book) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.repo != nil {
		if err := b.repo.Clear(ctx); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
	}
	b.hist = exam.NewHistory(b.hist.Limit(), nil)
	return nil
}
