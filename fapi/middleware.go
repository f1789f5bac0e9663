// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fapi

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-clerk-fapi/internal/utils"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	headerTraceparent   = "Traceparent"
	headerMobile        = "x-mobile"
	headerNoOrigin      = "x-no-origin"
	queryIsNative       = "_is_native"
)

// prepareRequest runs before every request. It tags the request with an id
// and the caller's trace, and for native clients adds the native markers and
// the stored Authorization header.
func (c *Client) prepareRequest(_ *resty.Client, r *resty.Request) error {
	ctx := r.Context()

	requestID, ok := utils.GetRequestIDFromContext(ctx)
	if !ok {
		requestID = c.uuid.Generate()
	}
	r.SetHeader(headerRequestID, requestID)

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		r.SetHeader(headerTraceparent, fmt.Sprintf("00-%s-%s-01", sc.TraceID().String(), sc.SpanID().String()))
	}

	if !c.native {
		return nil
	}

	r.SetQueryParam(queryIsNative, "1")
	r.SetHeader(headerMobile, "1")
	r.SetHeader(headerNoOrigin, "1")

	auth, found, err := c.AuthorizationHeader(ctx)
	if err != nil {
		// send the request unauthenticated
		c.logger.Warn().Err(err).
			Str("func", "fapi.prepareRequest").
			Str("request_id", requestID).
			Msg("failed to read stored authorization header")
		return nil
	}
	if found {
		r.SetHeader(headerAuthorization, auth)
	}

	return nil
}

// captureResponse runs after every completed round trip.
func (c *Client) captureResponse(_ *resty.Client, resp *resty.Response) error {
	ctx := resp.Request.Context()

	c.logger.Debug().
		Str("func", "fapi.captureResponse").
		Str("request_id", resp.Request.Header.Get(headerRequestID)).
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time().Round(time.Millisecond)).
		Msg("fapi request completed")

	if !c.native {
		return nil
	}

	auth := resp.Header().Get(headerAuthorization)
	if auth == "" {
		return nil
	}
	if err := c.SetAuthorizationHeader(ctx, auth); err != nil {
		c.logger.Warn().Err(err).
			Str("func", "fapi.captureResponse").
			Msg("failed to persist authorization header")
	}

	return nil
}
