// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional SDK-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://clerk.example.com", 10*time.Second, "go-clerk-fapi/1.0")
//	resp, err := client.R().Get("/v1/environment")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient bound to baseURL.
//
// Each call returns an independent client instance with its own connection
// pool and cookie jar, so browser-like clients keep their FAPI session
// cookie per instance. A zero timeout leaves resty's default in place and an
// empty userAgent keeps resty's own.
func NewHTTPClient(baseURL string, timeout time.Duration, userAgent string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")

	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}

	return &HTTPClient{Client: client}
}
