// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fapi

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

const (
	testKeyPrefix = "pk_test_"
	liveKeyPrefix = "pk_live_"
)

// ParsePublishableKey extracts the Frontend API host encoded in a publishable
// key. A key is "pk_test_" or "pk_live_" followed by the base64 encoding of
// "<host>$".
func ParsePublishableKey(key string) (string, error) {
	key = strings.TrimSpace(key)

	var encoded string
	switch {
	case strings.HasPrefix(key, testKeyPrefix):
		encoded = strings.TrimPrefix(key, testKeyPrefix)
	case strings.HasPrefix(key, liveKeyPrefix):
		encoded = strings.TrimPrefix(key, liveKeyPrefix)
	default:
		return "", fmt.Errorf("%w: unknown prefix", ErrInvalidKey)
	}

	decoded, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}

	host, ok := strings.CutSuffix(string(decoded), "$")
	if !ok || host == "" || strings.ContainsAny(host, "/ $") {
		return "", fmt.Errorf("%w: malformed frontend api host", ErrInvalidKey)
	}

	return host, nil
}

// IsDevelopmentKey reports whether key belongs to a development instance.
func IsDevelopmentKey(key string) bool {
	return strings.HasPrefix(strings.TrimSpace(key), testKeyPrefix)
}

// ResolveBaseURL picks the Frontend API origin: proxyURL verbatim when set,
// otherwise https://clerk.<domain>, otherwise the host encoded in the
// publishable key. The key is validated in every case.
func ResolveBaseURL(publishableKey, proxyURL, domain string) (string, error) {
	host, err := ParsePublishableKey(publishableKey)
	if err != nil {
		return "", err
	}

	switch {
	case strings.TrimSpace(proxyURL) != "":
		return normalizeBaseURL(proxyURL)
	case strings.TrimSpace(domain) != "":
		return normalizeBaseURL("https://clerk." + strings.TrimPrefix(strings.TrimSpace(domain), "clerk."))
	default:
		return normalizeBaseURL("https://" + host)
	}
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidBaseURL)
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: address must include host and scheme", ErrInvalidBaseURL)
	}

	return strings.TrimRight(u.String(), "/"), nil
}
