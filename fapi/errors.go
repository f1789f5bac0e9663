// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

var (
	ErrTransport       = errors.New("fapi transport failure")
	ErrDecodeResponse  = errors.New("malformed fapi response")
	ErrInvalidBaseURL  = errors.New("invalid fapi base url")
	ErrInvalidKey      = errors.New("invalid publishable key")
	ErrMissingArgument = errors.New("missing required argument")

	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrUnprocessable       = errors.New("unprocessable entity")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

// APIError is returned for every non-2xx response. errors.Is matches it
// against the sentinel for its status code.
type APIError struct {
	Status  int
	Errors  []models.APIErrorItem
	TraceID string

	sentinel error
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fapi: http %d", e.Status)
	for i, item := range e.Errors {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		msg := item.LongMessage
		if msg == "" {
			msg = item.Message
		}
		if item.Code != "" {
			fmt.Fprintf(&b, "%s (%s)", msg, item.Code)
		} else {
			b.WriteString(msg)
		}
	}
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

// Code returns the code of the first reported error, or "".
func (e *APIError) Code() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0].Code
}
