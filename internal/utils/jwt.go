// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a session token carries no "exp" claim.
var ErrNoExpiry = errors.New("token has no expiry")

// SessionClaims is the claim set of a session JWT minted by the Frontend API.
// Only the fields the SDK reads are modelled.
type SessionClaims struct {
	jwt.RegisteredClaims

	// SessionID is the "sid" claim.
	SessionID string `json:"sid,omitempty"`

	// OrganizationID is the "org_id" claim, present for organization scoped
	// tokens.
	OrganizationID string `json:"org_id,omitempty"`
}

// ParseSessionClaims decodes the claims of a session JWT without verifying
// its signature. The SDK never holds the instance signing key, so the
// token is only inspected for scheduling purposes (expiry, session id).
//
// Returns an error if the token is malformed.
//
// Example usage:
//
//	claims, err := utils.ParseSessionClaims(jwt)
func ParseSessionClaims(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("error parsing session token: %w", err)
	}
	return claims, nil
}

// TokenExpiry returns the "exp" claim of tokenString.
func TokenExpiry(tokenString string) (time.Time, error) {
	claims, err := ParseSessionClaims(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}

// TokenFresh reports whether tokenString is still valid at now + leeway.
// Malformed tokens and tokens without expiry are never fresh.
func TokenFresh(tokenString string, leeway time.Duration, now time.Time) bool {
	if tokenString == "" {
		return false
	}
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return false
	}
	return exp.After(now.Add(leeway))
}

// GenerateSessionToken creates a signed HMAC-SHA256 session JWT.
//
// The token includes the following claims:
//   - Issuer    (iss): the FAPI origin that minted the token
//   - Subject   (sub): the user id
//   - sid            : the session id
//   - org_id         : the organization id, omitted when empty
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// Issuer, userID, sessionID, tokenDuration and signKey are required.
// Used by the in-memory Frontend API fake and the CLI dev tooling.
func GenerateSessionToken(issuer, userID, sessionID, orgID string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || userID == "" || sessionID == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionID:      sessionID,
		OrganizationID: orgID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing session token: %w", err)
	}

	return tokenString, nil
}
