// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
)

// Listener receives every applied view.
type Listener func(View)

type entry struct {
	id       uint64
	fn       Listener
	removed  atomic.Bool
	registry *Registry
}

// Handle unregisters a listener.
type Handle struct {
	e *entry
}

// Remove unregisters the listener. It is idempotent, and a listener removed
// during a dispatch is not called for the rest of that dispatch.
func (h Handle) Remove() {
	if h.e == nil || h.e.removed.Swap(true) {
		return
	}
	h.e.registry.remove(h.e.id)
}

// Registry keeps listeners in registration order.
type Registry struct {
	mu      sync.RWMutex
	entries []*entry
	nextID  uint64

	logger *logger.Logger
}

// NewRegistry creates an empty registry. Recovered listener panics are
// logged through log.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{logger: log}
}

// Add registers fn. A listener added while a dispatch is running is first
// called for the next view.
func (r *Registry) Add(fn Listener) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	e := &entry{id: r.nextID, fn: fn, registry: r}
	r.entries = append(r.entries, e)
	return Handle{e: e}
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = slices.DeleteFunc(r.entries, func(e *entry) bool { return e.id == id })
}

// Dispatch calls every listener registered when it starts, in registration
// order. A panicking listener is logged and skipped.
func (r *Registry) Dispatch(v View) {
	r.mu.RLock()
	snapshot := slices.Clone(r.entries)
	r.mu.RUnlock()

	for _, e := range snapshot {
		if e.removed.Load() {
			continue
		}
		r.call(e, v)
	}
}

func (r *Registry) call(e *entry, v View) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error().
				Str("func", "Registry.Dispatch").
				Uint64("listener_id", e.id).
				Interface("panic", rec).
				Msg("listener panicked")
		}
	}()
	e.fn(v)
}
