// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clerk

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-clerk-fapi/internal/utils"
	"github.com/MKhiriev/go-clerk-fapi/models"
)

// TokenOption customises GetToken.
type TokenOption func(*tokenOptions)

type tokenOptions struct {
	organizationID *string
	template       string
	skipCache      bool
}

// WithOrganization scopes the token to an organization. An empty id asks for
// the personal workspace.
func WithOrganization(id string) TokenOption {
	return func(o *tokenOptions) { o.organizationID = &id }
}

// WithTemplate mints the token through the named JWT template.
func WithTemplate(name string) TokenOption {
	return func(o *tokenOptions) { o.template = name }
}

// SkipCache always mints a new token.
func SkipCache() TokenOption {
	return func(o *tokenOptions) { o.skipCache = true }
}

// GetToken returns a session token for the active session.
//
// Tokens are reused while they stay valid for longer than Config.TokenLeeway:
// first the token embedded in the snapshot, then tokens minted earlier by
// this instance. Concurrent callers asking for the same token share one
// request.
func (c *Clerk) GetToken(ctx context.Context, opts ...TokenOption) (string, error) {
	if err := c.requireLoaded(); err != nil {
		return "", err
	}

	var o tokenOptions
	for _, opt := range opts {
		opt(&o)
	}

	sess := c.state.ActiveSession()
	if sess == nil {
		return "", ErrNoActiveSession
	}

	orgID := deref(sess.LastActiveOrganizationID)
	if o.organizationID != nil {
		orgID = *o.organizationID
	}
	key := tokenCacheKey(sess.ID, orgID, o.template)

	if !o.skipCache {
		if jwt, ok := c.cachedToken(sess, key, orgID, o.template); ok {
			return jwt, nil
		}
	}

	v, err := c.tokenFlights.do(ctx, key, func(ctx context.Context) (any, error) {
		return c.mintToken(ctx, sess.ID, o)
	})
	if err != nil {
		return "", err
	}

	jwt := v.(string)
	c.tokens.Add(key, jwt)
	return jwt, nil
}

func (c *Clerk) cachedToken(sess *models.Session, key, orgID, template string) (string, bool) {
	now := c.now()

	if template == "" && orgID == deref(sess.LastActiveOrganizationID) && sess.LastActiveToken != nil {
		if jwt := sess.LastActiveToken.JWT; utils.TokenFresh(jwt, c.cfg.TokenLeeway, now) {
			return jwt, true
		}
	}

	if jwt, ok := c.tokens.Get(key); ok && utils.TokenFresh(jwt, c.cfg.TokenLeeway, now) {
		return jwt, true
	}
	return "", false
}

func (c *Clerk) mintToken(ctx context.Context, sessionID string, o tokenOptions) (string, error) {
	var (
		token *models.Token
		err   error
	)
	if o.template != "" {
		token, err = c.fapi.CreateSessionTokenWithTemplate(ctx, sessionID, o.template)
	} else {
		token, err = c.fapi.CreateSessionToken(ctx, sessionID, o.organizationID)
	}
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("func", "Clerk.GetToken").
			Str("session_id", sessionID).
			Msg("minting token failed")
		return "", mapFapiError(err)
	}
	if token == nil || token.JWT == "" {
		return "", fmt.Errorf("%w: empty token for session %s", ErrNetwork, sessionID)
	}
	return token.JWT, nil
}

// forgetTokens drops every cached token of sessionID, or all of them when
// sessionID is empty.
func (c *Clerk) forgetTokens(sessionID string) {
	if sessionID == "" {
		c.tokens.Purge()
		return
	}
	prefix := sessionID + "|"
	for _, k := range c.tokens.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.tokens.Remove(k)
		}
	}
}

func tokenCacheKey(sessionID, orgID, template string) string {
	return sessionID + "|" + orgID + "|" + template
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
