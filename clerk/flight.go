package clerk

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"
)

// flightGroup runs one fn per key for all concurrent callers.
//
// fn gets a context detached from any single caller. A caller whose own
// context ends returns early with ctx.Err(); the shared work is cancelled
// only when the last waiting caller leaves, and that caller waits for fn to
// return so no update lands after it.
type flightGroup struct {
	group singleflight.Group

	mu    sync.Mutex
	calls map[string]*flightCall
}

type flightCall struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

func (g *flightGroup) do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	for attempt := 0; ; attempt++ {
		call := g.join(ctx, key)
		ch := g.group.DoChan(key, func() (any, error) {
			defer g.forget(key, call)
			return fn(call.ctx)
		})

		select {
		case res := <-ch:
			g.leave(key, call)
			if attempt == 0 && ctx.Err() == nil && errors.Is(res.Err, context.Canceled) {
				// joined a flight its last caller had just abandoned
				continue
			}
			return res.Val, res.Err
		case <-ctx.Done():
			if g.leave(key, call) {
				<-ch
			}
			return nil, ctx.Err()
		}
	}
}

func (g *flightGroup) join(ctx context.Context, key string) *flightCall {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.calls == nil {
		g.calls = make(map[string]*flightCall)
	}
	call, ok := g.calls[key]
	if !ok {
		fctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		call = &flightCall{ctx: fctx, cancel: cancel}
		g.calls[key] = call
	}
	call.waiters++
	return call
}

// leave reports whether call lost its last waiter. The last one cancels it.
func (g *flightGroup) leave(key string, call *flightCall) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	call.waiters--
	if call.waiters > 0 {
		return false
	}
	call.cancel()
	if g.calls[key] == call {
		delete(g.calls, key)
	}
	return true
}

func (g *flightGroup) forget(key string, call *flightCall) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.calls[key] == call {
		delete(g.calls, key)
	}
}
