// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clerk

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Clerk. Match them with [errors.Is]; the
// underlying transport error stays in the chain.
var (
	// ErrConfiguration is returned by New for a missing or malformed
	// publishable key or an unusable proxy URL.
	ErrConfiguration = errors.New("clerk: invalid configuration")

	// ErrNetwork is returned when the Frontend API could not be reached or
	// answered with something unusable, and no cached state could stand in.
	ErrNetwork = errors.New("clerk: network error")

	// ErrNotLoaded is returned by every call except Load and SetLoaded until
	// the first successful load.
	ErrNotLoaded = errors.New("clerk: not loaded")

	ErrNoActiveSession = errors.New("clerk: no active session")

	// ErrNotFound is returned when a session or organization is not part of
	// the current client snapshot.
	ErrNotFound = errors.New("clerk: not found")

	// ErrStorePersistence marks a store write that failed after the
	// in-memory state had already been updated. See PersistError.
	ErrStorePersistence = errors.New("clerk: store persistence failed")

	ErrInvalidArgument = errors.New("clerk: invalid argument")
)

// PersistError reports that a call succeeded and the in-memory state was
// updated, but writing it to the store failed. It is a warning: callers
// that do not care about durability may ignore it.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: %v", ErrStorePersistence, e.Err)
}

func (e *PersistError) Unwrap() []error {
	return []error{ErrStorePersistence, e.Err}
}

// IsWarning reports whether err only signals a persistence failure after a
// successful call.
func IsWarning(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}
