package clerk

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlightGroup_LastCallerCancelsWork(t *testing.T) {
	var g flightGroup
	cancelled := make(chan struct{})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := g.do(ctx, "k", func(ctx context.Context) (any, error) {
		<-ctx.Done()
		close(cancelled)
		return nil, ctx.Err()
	})

	require.ErrorIs(t, err, context.DeadlineExceeded)
	select {
	case <-cancelled:
	default:
		t.Fatal("work still running after its only caller left")
	}
	assert.Empty(t, g.calls)
}

func TestFlightGroup_WorkOutlivesOneCaller(t *testing.T) {
	var (
		g       flightGroup
		runs    atomic.Int32
		started = make(chan struct{})
		release = make(chan struct{})
	)
	work := func(ctx context.Context) (any, error) {
		if runs.Add(1) == 1 {
			close(started)
		}
		select {
		case <-release:
			return "done", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	short, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := g.do(short, "k", work)
		first <- err
	}()
	<-started

	second := make(chan any, 1)
	go func() {
		v, err := g.do(context.Background(), "k", work)
		assert.NoError(t, err)
		second <- v
	}()
	require.Eventually(t, func() bool {
		g.mu.Lock()
		defer g.mu.Unlock()
		return g.calls["k"] != nil && g.calls["k"].waiters == 2
	}, time.Second, time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(release)
	assert.Equal(t, "done", <-second)
	assert.Equal(t, int32(1), runs.Load())
}

func TestFlightGroup_KeysAreIndependent(t *testing.T) {
	var g flightGroup

	a, err := g.do(context.Background(), "a", func(context.Context) (any, error) { return 1, nil })
	require.NoError(t, err)
	b, err := g.do(context.Background(), "b", func(context.Context) (any, error) { return 2, nil })
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Empty(t, g.calls)
}
