// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clerk

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-clerk-fapi/store"
)

// Kind selects how the client authenticates against the Frontend API.
type Kind int

const (
	// KindNative sends the native request markers and keeps the session in
	// an Authorization header stored in Config.Store.
	KindNative Kind = iota
	// KindBrowser relies on cookies, like a browser would.
	KindBrowser
)

func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindBrowser:
		return "browser"
	default:
		return "unknown"
	}
}

// Persistence controls whether the client snapshot and the environment are
// written to Config.Store.
type Persistence int

const (
	// PersistenceAuto persists for KindNative and not for KindBrowser.
	PersistenceAuto Persistence = iota
	PersistenceEnabled
	PersistenceDisabled
)

const (
	defaultTokenLeeway   = 10 * time.Second
	defaultTokenCacheTTL = time.Minute
	tokenCacheSize       = 128
)

// Config configures a Clerk instance. It is copied by New and cannot be
// changed afterwards.
type Config struct {
	// PublishableKey is required. The Frontend API host is encoded in it.
	PublishableKey string

	// ProxyURL, when set, is used verbatim as the Frontend API origin.
	ProxyURL string
	// Domain overrides the host encoded in the publishable key with
	// clerk.<Domain>.
	Domain string

	// Store defaults to a store.MemoryStore.
	Store store.Store
	// StorePrefix namespaces every key written to Store.
	StorePrefix string

	Kind        Kind
	Persistence Persistence

	UserAgent      string
	RequestTimeout time.Duration

	// TokenLeeway is how long a token must still be valid to be returned
	// from cache by GetToken. Defaults to 10s.
	TokenLeeway time.Duration

	Logger *zerolog.Logger
}

func (c Config) persistenceEnabled() bool {
	switch c.Persistence {
	case PersistenceEnabled:
		return true
	case PersistenceDisabled:
		return false
	default:
		return c.Kind == KindNative
	}
}
