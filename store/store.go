// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store defines the pluggable key-value persistence capability used
// by the Clerk client to keep its client snapshot, environment and native
// authorization header across process restarts, together with three
// implementations:
//
//   - MemoryStore: process-local map, the default;
//   - FileStore: a single JSON file, optionally sealed with a passphrase;
//   - SQLStore: a key-value table in SQLite or PostgreSQL.
//
// Values are opaque bytes. Keys are namespaced by the configured prefix via
// Key.
package store

//go:generate mockgen -source=store.go -destination=../internal/mock/store_mock.go -package=mock

import "context"

// Logical key names persisted by the client.
const (
	// KeyClient holds the JSON encoded client snapshot.
	KeyClient = "client"
	// KeyEnvironment holds the JSON encoded environment.
	KeyEnvironment = "environment"
	// KeyAuthorization holds the raw Authorization header value used by
	// native (non-browser) clients instead of cookies.
	KeyAuthorization = "authorization"
)

// Store persists opaque values under string keys.
//
// Implementations must be safe for concurrent use. The client treats the
// store as an external system: it is not assumed to be transactional and a
// failing Set never rolls back in-memory state.
type Store interface {
	// Get returns the value stored under key. The boolean is false when the
	// key is absent; err is reserved for backend failures.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Key joins the configured prefix and a logical key name.
//
//	store.Key("myapp_", store.KeyClient) // "myapp_client"
func Key(prefix, name string) string {
	return prefix + name
}
