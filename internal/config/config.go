// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Store backends selectable with CLERK_STORE_KIND / --store.
const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Client kinds selectable with CLERK_KIND / --kind.
const (
	KindNative  = "native"
	KindBrowser = "browser"
)

// StructuredConfig is the top-level configuration of clerkctl. It is
// populated by merging flags, environment variables and an optional JSON
// file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// FAPI selects the Frontend API instance and how to talk to it.
	FAPI FAPI `envPrefix:"CLERK_"`

	// Storage selects where the client snapshot, the environment and the
	// native Authorization header are kept between runs.
	Storage Storage `envPrefix:"CLERK_STORE_"`

	Workers Workers `envPrefix:"CLERK_"`

	Log Log `envPrefix:"CLERK_LOG_"`

	// Dev runs clerkctl against an in-process fake Frontend API.
	// Env: CLERK_DEV
	Dev bool `env:"CLERK_DEV"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config
	// flag.
	JSONFilePath string `env:"CONFIG"`
}

// FAPI holds the Frontend API connection settings.
type FAPI struct {
	// PublishableKey identifies the Clerk instance (pk_test_... or
	// pk_live_...).
	// Env: CLERK_PUBLISHABLE_KEY
	PublishableKey string `env:"PUBLISHABLE_KEY"`

	// ProxyURL is used verbatim as the Frontend API origin when set.
	// Env: CLERK_PROXY_URL
	ProxyURL string `env:"PROXY_URL"`

	// Domain overrides the host encoded in the publishable key.
	// Env: CLERK_DOMAIN
	Domain string `env:"DOMAIN"`

	// Kind is "native" or "browser".
	// Env: CLERK_KIND
	Kind string `env:"KIND"`

	// RequestTimeout bounds every Frontend API request (e.g. "15s").
	// Env: CLERK_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds the persistence settings.
type Storage struct {
	// Kind is one of memory, file, sqlite, postgres.
	// Env: CLERK_STORE_KIND
	Kind string `env:"KIND"`

	// DSN is the file path for file and sqlite stores, or the connection
	// string for postgres.
	// Env: CLERK_STORE_DSN
	DSN string `env:"DSN"`

	// Prefix namespaces every stored key.
	// Env: CLERK_STORE_PREFIX
	Prefix string `env:"PREFIX"`

	// Passphrase seals a file store.
	// Env: CLERK_STORE_PASSPHRASE
	Passphrase string `env:"PASSPHRASE"`
}

// Workers holds background job settings.
type Workers struct {
	// PollInterval is how often `clerkctl watch` refreshes the client.
	// Env: CLERK_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// Log holds logging settings.
type Log struct {
	// File receives JSON logs. Empty means stderr.
	// Env: CLERK_LOG_FILE
	File string `env:"FILE"`

	// Debug enables debug level logs.
	// Env: CLERK_LOG_DEBUG
	Debug bool `env:"DEBUG"`
}

// Load merges flags (may be nil), environment variables, the JSON file and
// the defaults, then validates the result.
func Load(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(flags).
		withEnv().
		withJSON().
		withDefaults().
		build()
}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		FAPI: FAPI{
			Kind:           KindNative,
			RequestTimeout: 15 * time.Second,
		},
		Storage: Storage{
			Kind:   StoreMemory,
			Prefix: "clerkctl_",
		},
		Workers: Workers{PollInterval: 30 * time.Second},
	}
}
