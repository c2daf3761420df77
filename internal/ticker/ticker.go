// Package ticker runs a function on a fixed interval until told to stop.
package ticker

import (
	"context"
	"time"
)

// Func is called once per interval. Returning false stops the ticker.
type Func func() bool

// Run calls fn every interval until fn returns false or ctx is done.
// It blocks; callers start it in a goroutine.
func Run(ctx context.Context, interval time.Duration, fn Func) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !fn() {
				return
			}
		}
	}
}

// Handle controls a ticker started with Start.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Start runs fn in a new goroutine under a context derived from parent.
func Start(parent context.Context, interval time.Duration, fn Func) *Handle {
	ctx, cancel := context.WithCancel(parent)
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		Run(ctx, interval, fn)
	}()
	return h
}

// Stop cancels the ticker and waits for its goroutine to exit. It must not
// be called from inside fn.
func (h *Handle) Stop() {
	h.cancel()
	<-h.done
}

// Done is closed once the ticker has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
