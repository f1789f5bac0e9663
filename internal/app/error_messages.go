// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing wording clerkctl prints when a
// command fails.
//
// All Msg* constants are short, human-readable descriptions of a failure
// class. Message maps an error returned by the clerk package, the raw
// Frontend API client or the CLI runtime onto one of them, so every command
// reports the same failure the same way.
package app

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-clerk-fapi/clerk"
	"github.com/MKhiriev/go-clerk-fapi/fapi"
	"github.com/MKhiriev/go-clerk-fapi/internal/client"
	"github.com/MKhiriev/go-clerk-fapi/internal/config"
)

const (
	// MsgConfiguration is printed when the publishable key, proxy URL or
	// domain cannot be turned into a Frontend API address.
	MsgConfiguration = "invalid configuration"

	// MsgNetwork is printed when the Frontend API could not be reached or
	// answered with something other than a usable response.
	MsgNetwork = "frontend api unavailable"

	// MsgNotLoaded is printed when a command needs a loaded client.
	MsgNotLoaded = "client is not loaded"

	// MsgNoActiveSession is printed when a command needs a signed-in user.
	MsgNoActiveSession = "not signed in"

	// MsgNotFound is printed when a session or organization id is unknown.
	MsgNotFound = "no such session or organization"

	MsgInvalidArgument = "invalid arguments"

	// MsgPersistence is printed when the state changed but could not be
	// written to the store.
	MsgPersistence = "state was not saved"

	// MsgRejected is printed when the Frontend API refused the request,
	// for instance a wrong password or code.
	MsgRejected = "request rejected"

	MsgTimeout  = "timed out"
	MsgCanceled = "canceled"

	// MsgInternalError is printed for anything else.
	MsgInternalError = "internal error"
)

// Message returns the Msg* constant describing err, or "" for nil.
func Message(err error) string {
	var apiErr *fapi.APIError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	case errors.Is(err, context.Canceled):
		return MsgCanceled
	case errors.Is(err, clerk.ErrConfiguration),
		errors.Is(err, config.ErrInvalidFAPIConfigs),
		errors.Is(err, config.ErrInvalidStorageConfigs),
		errors.Is(err, config.ErrInvalidWorkerConfigs),
		errors.Is(err, client.ErrUnknownStore):
		return MsgConfiguration
	case errors.Is(err, clerk.ErrNotLoaded):
		return MsgNotLoaded
	case errors.Is(err, clerk.ErrNoActiveSession):
		return MsgNoActiveSession
	case errors.Is(err, clerk.ErrNotFound):
		return MsgNotFound
	case errors.Is(err, clerk.ErrInvalidArgument),
		errors.Is(err, client.ErrUnsupportedStrategy),
		errors.Is(err, client.ErrPromptRequired):
		return MsgInvalidArgument
	case errors.Is(err, client.ErrSignInIncomplete):
		return MsgRejected
	case errors.Is(err, clerk.ErrStorePersistence):
		return MsgPersistence
	case errors.Is(err, clerk.ErrNetwork),
		errors.Is(err, fapi.ErrTransport),
		errors.Is(err, fapi.ErrDecodeResponse):
		return MsgNetwork
	case errors.As(err, &apiErr) && apiErr.Status < 500:
		return MsgRejected
	case errors.As(err, &apiErr):
		return MsgNetwork
	default:
		return MsgInternalError
	}
}
