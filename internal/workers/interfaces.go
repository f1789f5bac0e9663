// Package workers runs the background jobs of a Clerk instance.
// It defines the Worker interface, the Poller that keeps the client snapshot
// fresh, and a Workers aggregate that starts and stops several workers as
// one.
package workers

//go:generate mockgen -source=interfaces.go -destination=../mock/syncer_mock.go -package=mock

import "context"

// Worker is a background job with an explicit lifecycle.
//
// Run starts the job and returns immediately; the job lives until ctx is
// done or Stop is called. Stop blocks until the job has exited.
//
// Example implementation:
//
//	type MyWorker struct{ cancel context.CancelFunc }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    ctx, w.cancel = context.WithCancel(ctx)
//	    go loop(ctx)
//	}
//
//	func (w *MyWorker) Stop() { w.cancel() }
type Worker interface {
	Run(ctx context.Context)
	Stop()
}

// Syncer re-fetches remote state. *clerk.Clerk implements it.
type Syncer interface {
	Refresh(ctx context.Context) error
}
