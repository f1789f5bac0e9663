// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

// CreateSessionToken mints a session token. organizationID selects the
// organization the token is scoped to; nil keeps the session's active one
// and a pointer to "" asks for the personal workspace.
func (c *Client) CreateSessionToken(ctx context.Context, sessionID string, organizationID *string) (*models.Token, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id", ErrMissingArgument)
	}

	req := c.request(ctx).SetPathParam("session_id", sessionID)
	if organizationID != nil {
		req.SetFormData(map[string]string{"organization_id": *organizationID})
	}

	var token models.Token
	if err := c.do(req, http.MethodPost, "/client/sessions/{session_id}/tokens", &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// CreateSessionTokenWithTemplate mints a token shaped by the named JWT
// template.
func (c *Client) CreateSessionTokenWithTemplate(ctx context.Context, sessionID, template string) (*models.Token, error) {
	if sessionID == "" || template == "" {
		return nil, fmt.Errorf("%w: session id and template", ErrMissingArgument)
	}

	req := c.request(ctx).
		SetPathParam("session_id", sessionID).
		SetPathParam("template", template)

	var token models.Token
	if err := c.do(req, http.MethodPost, "/client/sessions/{session_id}/tokens/{template}", &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// GetSession fetches one session of the client.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*models.ClientWrapped[*models.Session], error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id", ErrMissingArgument)
	}
	req := c.request(ctx).SetPathParam("session_id", sessionID)
	return doWrapped[*models.Session](c, req, http.MethodGet, "/client/sessions/{session_id}")
}

// TouchSession marks the session as the client's last active one and, when
// activeOrganizationID is not nil, switches its active organization. A
// pointer to "" selects the personal workspace.
func (c *Client) TouchSession(ctx context.Context, sessionID string, activeOrganizationID *string) (*models.ClientWrapped[*models.Session], error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id", ErrMissingArgument)
	}

	req := c.request(ctx).SetPathParam("session_id", sessionID)
	if activeOrganizationID != nil {
		req.SetFormData(map[string]string{"active_organization_id": *activeOrganizationID})
	}
	return doWrapped[*models.Session](c, req, http.MethodPost, "/client/sessions/{session_id}/touch")
}

// EndSession ends the session but keeps it listed on the client.
func (c *Client) EndSession(ctx context.Context, sessionID string) (*models.ClientWrapped[*models.Session], error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id", ErrMissingArgument)
	}
	req := c.request(ctx).SetPathParam("session_id", sessionID)
	return doWrapped[*models.Session](c, req, http.MethodPost, "/client/sessions/{session_id}/end")
}

// RemoveSession signs the session out and removes it from the client.
func (c *Client) RemoveSession(ctx context.Context, sessionID string) (*models.ClientWrapped[*models.Session], error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id", ErrMissingArgument)
	}
	req := c.request(ctx).SetPathParam("session_id", sessionID)
	return doWrapped[*models.Session](c, req, http.MethodPost, "/client/sessions/{session_id}/remove")
}

// RemoveClientSessions signs every session of the client out.
func (c *Client) RemoveClientSessions(ctx context.Context) (*models.ClientWrapped[*models.Client], error) {
	return doWrapped[*models.Client](c, c.request(ctx), http.MethodDelete, "/client/sessions")
}
