// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package clerk is a stateful client for the Clerk Frontend API.
//
// A Clerk keeps the latest client snapshot reported by the server. Every
// response that embeds a snapshot replaces it as a whole, notifies the
// registered listeners and, when persistence is enabled, writes it to the
// configured store. Reads never block and always see one consistent
// snapshot:
//
//	c, err := clerk.New(clerk.Config{PublishableKey: key})
//	if err != nil { ... }
//	if _, err = c.Load(ctx, true); err != nil && !clerk.IsWarning(err) { ... }
//	token, err := c.GetToken(ctx)
package clerk

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/MKhiriev/go-clerk-fapi/fapi"
	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
	"github.com/MKhiriev/go-clerk-fapi/internal/state"
	"github.com/MKhiriev/go-clerk-fapi/internal/workers"
	"github.com/MKhiriev/go-clerk-fapi/models"
	"github.com/MKhiriev/go-clerk-fapi/store"
)

// Status is the load lifecycle of a Clerk instance.
type Status int32

const (
	StatusUnloaded Status = iota
	StatusLoading
	StatusLoaded
	// StatusLoadFailed is left by calling Load again.
	StatusLoadFailed
)

func (s Status) String() string {
	switch s {
	case StatusUnloaded:
		return "unloaded"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusLoadFailed:
		return "load_failed"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// Clerk is safe for concurrent use.
type Clerk struct {
	cfg     Config
	persist bool

	fapi  *fapi.Client
	state *state.Container
	store store.Store

	status atomic.Int32
	loads  flightGroup

	tokens       *expirable.LRU[string, string]
	tokenFlights flightGroup

	persistMu sync.Mutex

	pollMu sync.Mutex
	poller *workers.Poller

	now    func() time.Time
	logger *logger.Logger
}

// New validates cfg and builds an unloaded instance. It performs no I/O.
func New(cfg Config) (*Clerk, error) {
	cfg.PublishableKey = strings.TrimSpace(cfg.PublishableKey)
	if cfg.PublishableKey == "" {
		return nil, fmt.Errorf("%w: publishable key is required", ErrConfiguration)
	}
	baseURL, err := fapi.ResolveBaseURL(cfg.PublishableKey, cfg.ProxyURL, cfg.Domain)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}
	if cfg.TokenLeeway <= 0 {
		cfg.TokenLeeway = defaultTokenLeeway
	}

	log := logger.Wrap(cfg.Logger)
	c := &Clerk{
		cfg:     cfg,
		persist: cfg.persistenceEnabled(),
		state:   state.NewContainer(state.NewRegistry(log)),
		store:   cfg.Store,
		tokens:  expirable.NewLRU[string, string](tokenCacheSize, nil, defaultTokenCacheTTL),
		now:     time.Now,
		logger:  log,
	}

	c.fapi, err = fapi.New(fapi.Config{
		BaseURL:        baseURL,
		Native:         cfg.Kind == KindNative,
		Store:          cfg.Store,
		StorePrefix:    cfg.StorePrefix,
		UserAgent:      cfg.UserAgent,
		Timeout:        cfg.RequestTimeout,
		Logger:         cfg.Logger,
		OnClientUpdate: c.onClientUpdate,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return c, nil
}

// Config returns the configuration the instance was built with, defaults
// applied.
func (c *Clerk) Config() Config {
	return c.cfg
}

func (c *Clerk) Status() Status {
	return Status(c.status.Load())
}

// Loaded reports whether Load or SetLoaded has succeeded.
func (c *Clerk) Loaded() bool {
	return c.Status() == StatusLoaded
}

// GetFapiClient returns the underlying transport. Snapshots embedded in its
// responses update this instance exactly like the convenience methods do.
func (c *Clerk) GetFapiClient() *fapi.Client {
	return c.fapi
}

// Environment returns the cached instance environment or nil.
func (c *Clerk) Environment() *models.Environment {
	return c.state.Environment()
}

// Client returns the current snapshot or nil. The value is shared and must
// not be modified.
func (c *Clerk) Client() *models.Client {
	return c.state.Client()
}

// Session returns the active session of the current snapshot or nil.
func (c *Clerk) Session() *models.Session {
	return c.state.ActiveSession()
}

// User returns the user of the active session or nil.
func (c *Clerk) User() *models.User {
	return c.state.ActiveUser()
}

// Organization returns the organization the active session is scoped to or
// nil.
func (c *Clerk) Organization() *models.Organization {
	return c.state.ActiveOrganization()
}

func (c *Clerk) requireLoaded() error {
	if s := c.Status(); s != StatusLoaded {
		return fmt.Errorf("%w: status is %s", ErrNotLoaded, s)
	}
	return nil
}
