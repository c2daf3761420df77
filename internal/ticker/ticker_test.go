package ticker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStopsWhenFuncReturnsFalse(t *testing.T) {
	var calls atomic.Int32
	Run(context.Background(), time.Millisecond, func() bool {
		return calls.Add(1) < 3
	})
	assert.Equal(t, int32(3), calls.Load())
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	Run(ctx, time.Hour, func() bool {
		calls.Add(1)
		return true
	})
	assert.Zero(t, calls.Load())
}

func TestStartAndStop(t *testing.T) {
	var calls atomic.Int32
	h := Start(context.Background(), time.Millisecond, func() bool {
		calls.Add(1)
		return true
	})

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond)
	h.Stop()

	n := calls.Load()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, n, calls.Load(), "no calls after Stop")

	select {
	case <-h.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
}

func TestDoneClosesWhenFuncFinishes(t *testing.T) {
	h := Start(context.Background(), time.Millisecond, func() bool { return false })
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("ticker did not exit")
	}
	h.Stop() // safe after exit
}
