package fapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode(), sentinel: sentinelForStatus(resp.StatusCode())}

	var body models.APIErrorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && len(body.Errors) > 0 {
		apiErr.Errors = body.Errors
		apiErr.TraceID = body.ClerkTraceID
		return apiErr
	}

	// not a FAPI error body (proxy page, empty body, ...)
	msg := strings.TrimSpace(string(resp.Body()))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}
	apiErr.Errors = []models.APIErrorItem{{Message: msg}}
	return apiErr
}

func sentinelForStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnprocessableEntity:
		return ErrUnprocessable
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return nil
	}
}
