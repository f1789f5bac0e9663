// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clerk

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

// SignOutOption selects what SignOut removes.
type SignOutOption func(*signOutOptions)

type signOutOptions struct {
	sessionID string
	all       bool
}

// SignOutSession removes the given session instead of the active one. A
// session that is no longer active is left alone.
func SignOutSession(id string) SignOutOption {
	return func(o *signOutOptions) { o.sessionID = id }
}

// SignOutAll removes every session of the client.
func SignOutAll() SignOutOption {
	return func(o *signOutOptions) { o.all = true }
}

// SignOut removes the active session. Signing out when there is nothing to
// remove succeeds without a request.
func (c *Clerk) SignOut(ctx context.Context, opts ...SignOutOption) error {
	if err := c.requireLoaded(); err != nil {
		return err
	}

	var o signOutOptions
	for _, opt := range opts {
		opt(&o)
	}

	snapshot := c.state.Client()
	ctx, report := withPersistReport(ctx)

	if o.all {
		if len(snapshot.SignedInSessions()) == 0 {
			return nil
		}
		_, err := c.fapi.RemoveClientSessions(ctx)
		if err == nil {
			c.forgetTokens("")
		}
		return report.result(mapFapiError(err))
	}

	var sess *models.Session
	if o.sessionID != "" {
		if sess = snapshot.SessionByID(o.sessionID); sess == nil {
			return fmt.Errorf("%w: session %s", ErrNotFound, o.sessionID)
		}
	} else {
		sess = snapshot.ActiveSession()
	}
	if sess == nil || sess.Status != models.SessionStatusActive {
		return nil
	}

	_, err := c.fapi.RemoveSession(ctx, sess.ID)
	if err == nil {
		c.forgetTokens(sess.ID)
		c.logger.Debug().Str("func", "Clerk.SignOut").Str("session_id", sess.ID).Msg("session removed")
	}
	return report.result(mapFapiError(err))
}
