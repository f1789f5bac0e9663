package clerk

import (
	"github.com/MKhiriev/go-clerk-fapi/internal/state"
	"github.com/MKhiriev/go-clerk-fapi/models"
)

// Listener is called after every snapshot update with the snapshot and the
// entities derived from it. It runs synchronously on the goroutine that
// delivers the update and must not block for long. Values are shared and
// must not be modified.
type Listener func(client models.Client, session *models.Session, user *models.User, org *models.Organization)

// ListenerOption customises AddListener.
type ListenerOption func(*listenerOptions)

type listenerOptions struct {
	currentState bool
}

// WithCurrentState calls the listener once with the current state right
// after registering it, if the instance holds a snapshot.
func WithCurrentState() ListenerOption {
	return func(o *listenerOptions) { o.currentState = true }
}

// ListenerHandle unregisters a listener.
type ListenerHandle struct {
	h state.Handle
}

// Remove unregisters the listener. It is safe to call more than once and
// from inside the listener itself.
func (h ListenerHandle) Remove() {
	h.h.Remove()
}

// AddListener registers l for every future update.
func (c *Clerk) AddListener(l Listener, opts ...ListenerOption) ListenerHandle {
	var o listenerOptions
	for _, opt := range opts {
		opt(&o)
	}

	call := func(v state.View) {
		l(*v.Client, v.Session, v.User, v.Organization)
	}
	h := c.state.Registry().Add(call)

	if o.currentState {
		if v := c.state.Current(); v.Loaded() {
			call(v)
		}
	}
	return ListenerHandle{h: h}
}
