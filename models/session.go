// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Session lifecycle states as reported by the Frontend API.
const (
	SessionStatusActive    = "active"
	SessionStatusPending   = "pending"
	SessionStatusEnded     = "ended"
	SessionStatusExpired   = "expired"
	SessionStatusRemoved   = "removed"
	SessionStatusAbandoned = "abandoned"
	SessionStatusReplaced  = "replaced"
	SessionStatusRevoked   = "revoked"
)

// Session belongs to exactly one User and carries the most recently minted
// session token.
type Session struct {
	ID     string `json:"id"`
	Object string `json:"object,omitempty"`

	// Status is one of the SessionStatus* constants.
	Status string `json:"status"`

	// User is the owner of the session. The API embeds the full user record.
	User *User `json:"user,omitempty"`

	// LastActiveToken is the session token minted with the last client
	// response. It may already be expired.
	LastActiveToken *Token `json:"last_active_token,omitempty"`

	// LastActiveOrganizationID is the organization the session is scoped to.
	// Nil means the personal workspace.
	LastActiveOrganizationID *string `json:"last_active_organization_id"`

	ExpireAt     int64 `json:"expire_at,omitempty"`
	AbandonAt    int64 `json:"abandon_at,omitempty"`
	LastActiveAt int64 `json:"last_active_at,omitempty"`
	CreatedAt    int64 `json:"created_at,omitempty"`
	UpdatedAt    int64 `json:"updated_at,omitempty"`
}

// ActiveOrganization resolves LastActiveOrganizationID against the
// organization memberships of the session user.
func (s *Session) ActiveOrganization() *Organization {
	if s == nil || s.User == nil || s.LastActiveOrganizationID == nil {
		return nil
	}
	return s.User.OrganizationByID(*s.LastActiveOrganizationID)
}

// Token is a short-lived session JWT.
type Token struct {
	Object string `json:"object,omitempty"`
	JWT    string `json:"jwt"`
}
