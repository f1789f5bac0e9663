package clerk

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-clerk-fapi/fapi"
)

// signedOutCode is sent with 401 when the session has been ended
// server-side.
const signedOutCode = "signed_out"

// mapFapiError translates transport errors into the facade taxonomy. The
// original error stays wrapped, so *fapi.APIError remains reachable with
// errors.As.
func mapFapiError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	switch {
	case errors.Is(err, fapi.ErrTransport), errors.Is(err, fapi.ErrDecodeResponse):
		return fmt.Errorf("%w: %w", ErrNetwork, err)

	case errors.Is(err, fapi.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)

	case errors.Is(err, fapi.ErrUnauthorized):
		var apiErr *fapi.APIError
		if errors.As(err, &apiErr) && apiErr.Code() == signedOutCode {
			return fmt.Errorf("%w: %w", ErrNoActiveSession, err)
		}

	case errors.Is(err, fapi.ErrMissingArgument):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}

// networkError is mapFapiError for the load path, where any failure to
// fetch counts as a network failure.
func networkError(err error) error {
	mapped := mapFapiError(err)
	if mapped == nil || errors.Is(mapped, ErrNetwork) ||
		errors.Is(mapped, context.Canceled) || errors.Is(mapped, context.DeadlineExceeded) {
		return mapped
	}
	return fmt.Errorf("%w: %w", ErrNetwork, mapped)
}
