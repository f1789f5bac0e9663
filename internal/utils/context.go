// Package utils provides general-purpose helper utilities
// used across different parts of the SDK.
// Includes tools for working with context, type-safe keys, session JWT
// inspection, request id generation, JSON response writing and HTTP client
// initialization.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// SkipClientUpdateCtxKey marks a context whose FAPI responses must not be
// routed to the client update hook. The caller then applies the returned
// snapshot itself.
var SkipClientUpdateCtxKey = contextKey("skipClientUpdate")

// RequestIDCtxKey is the key under which the outgoing request id is stored.
//
// Example of writing a value to the context:
//
//	ctx := utils.WithRequestID(ctx, "0190c6b2-...")
var RequestIDCtxKey = contextKey("requestID")

// WithSkipClientUpdate returns a copy of ctx marked with SkipClientUpdateCtxKey.
func WithSkipClientUpdate(ctx context.Context) context.Context {
	return context.WithValue(ctx, SkipClientUpdateCtxKey, true)
}

// SkipClientUpdate reports whether ctx was marked by WithSkipClientUpdate.
func SkipClientUpdate(ctx context.Context) bool {
	skip, _ := ctx.Value(SkipClientUpdateCtxKey).(bool)
	return skip
}

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDCtxKey, id)
}

// GetRequestIDFromContext retrieves the request id from the context.
//
// Returns the id and an ok flag:
//   - ok == true:  value is found and is a non-empty string
//   - ok == false: value is missing or has an unexpected type
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDCtxKey).(string)
	return id, ok && id != ""
}
