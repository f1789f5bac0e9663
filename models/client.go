// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Client is the server-reported state of one device or browser. It is the
// authoritative snapshot of every session known to this client together with
// the users and organizations reachable from those sessions.
//
// A Client is always replaced as a whole when the server returns a new one;
// it is never merged field by field.
type Client struct {
	// ID is the FAPI identifier of the client (e.g. "client_2ab...").
	ID string `json:"id"`

	// Object is always "client".
	Object string `json:"object,omitempty"`

	// Sessions lists every session attached to the client regardless of
	// status. Ended or removed sessions may still be present.
	Sessions []Session `json:"sessions"`

	// SignIn is the in-progress sign-in attempt, if any.
	SignIn *SignIn `json:"sign_in,omitempty"`

	// SignUp is the in-progress sign-up attempt, if any.
	SignUp *SignUp `json:"sign_up,omitempty"`

	// LastActiveSessionID points at the session the client currently uses.
	// Nil when nobody is signed in.
	LastActiveSessionID *string `json:"last_active_session_id"`

	CookieExpiresAt *int64 `json:"cookie_expires_at,omitempty"`
	CreatedAt       int64  `json:"created_at,omitempty"`
	UpdatedAt       int64  `json:"updated_at,omitempty"`
}

// SessionByID returns the session with the given id, or nil when the client
// does not know it.
func (c *Client) SessionByID(id string) *Session {
	if c == nil || id == "" {
		return nil
	}
	for i := range c.Sessions {
		if c.Sessions[i].ID == id {
			return &c.Sessions[i]
		}
	}
	return nil
}

// ActiveSession resolves LastActiveSessionID against Sessions. Only a session
// with status "active" counts as active.
func (c *Client) ActiveSession() *Session {
	if c == nil || c.LastActiveSessionID == nil {
		return nil
	}
	s := c.SessionByID(*c.LastActiveSessionID)
	if s == nil || s.Status != SessionStatusActive {
		return nil
	}
	return s
}

// SignedInSessions returns the ids of all sessions with status "active".
func (c *Client) SignedInSessions() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.Sessions))
	for _, s := range c.Sessions {
		if s.Status == SessionStatusActive {
			ids = append(ids, s.ID)
		}
	}
	return ids
}
