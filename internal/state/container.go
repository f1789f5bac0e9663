// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

// Container owns the current client snapshot and the cached environment.
//
// Update serializes writers, but listeners are never called with the lock
// held: updates are queued and drained by whichever updater finds the queue
// idle. Listeners therefore see views in exactly the order they were applied,
// and a listener may call Update itself without deadlocking; its update is
// delivered after the current one.
type Container struct {
	client      atomic.Pointer[models.Client]
	environment atomic.Pointer[models.Environment]

	mu          sync.Mutex
	pending     []View
	dispatching bool

	registry *Registry
}

// NewContainer creates an empty container that notifies registry.
func NewContainer(registry *Registry) *Container {
	if registry == nil {
		registry = NewRegistry(nil)
	}
	return &Container{registry: registry}
}

// Registry returns the registry notified on every update.
func (c *Container) Registry() *Registry {
	return c.registry
}

// Update publishes client as the current snapshot and notifies listeners.
// The caller hands ownership of client to the container and must not modify
// it afterwards. A nil client is ignored.
func (c *Container) Update(client *models.Client) View {
	if client == nil {
		return c.Current()
	}

	v := newView(client)

	c.mu.Lock()
	c.client.Store(client)
	c.pending = append(c.pending, v)
	if c.dispatching {
		// the running dispatcher delivers it
		c.mu.Unlock()
		return v
	}
	c.dispatching = true
	c.mu.Unlock()

	c.drain()
	return v
}

func (c *Container) drain() {
	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.dispatching = false
			c.mu.Unlock()
			return
		}
		next := c.pending[0]
		c.pending[0] = View{}
		c.pending = c.pending[1:]
		c.mu.Unlock()

		c.registry.Dispatch(next)
	}
}

// Current returns the view of the latest snapshot. It never blocks.
func (c *Container) Current() View {
	return newView(c.client.Load())
}

// Client returns the latest snapshot or nil.
func (c *Container) Client() *models.Client {
	return c.client.Load()
}

// ActiveSession returns the active session of the latest snapshot or nil.
func (c *Container) ActiveSession() *models.Session {
	return c.Current().Session
}

// ActiveUser returns the user of the active session or nil.
func (c *Container) ActiveUser() *models.User {
	return c.Current().User
}

// ActiveOrganization returns the organization the active session is scoped
// to, or nil.
func (c *Container) ActiveOrganization() *models.Organization {
	return c.Current().Organization
}

// Environment returns the cached environment or nil.
func (c *Container) Environment() *models.Environment {
	return c.environment.Load()
}

// SetEnvironment replaces the cached environment. It does not notify
// listeners.
func (c *Container) SetEnvironment(env *models.Environment) {
	c.environment.Store(env)
}
