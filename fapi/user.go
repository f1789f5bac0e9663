package fapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

// UpdateUserParams holds the profile fields UpdateUser may change. Nil
// fields are left untouched.
type UpdateUserParams struct {
	FirstName *string
	LastName  *string
	Username  *string
}

// GetUser fetches the user of the active session.
func (c *Client) GetUser(ctx context.Context) (*models.ClientWrapped[*models.User], error) {
	return doWrapped[*models.User](c, c.request(ctx), http.MethodGet, "/me")
}

// UpdateUser patches the profile of the active session's user.
func (c *Client) UpdateUser(ctx context.Context, params UpdateUserParams) (*models.ClientWrapped[*models.User], error) {
	form := make(map[string]string, 3)
	if params.FirstName != nil {
		form["first_name"] = *params.FirstName
	}
	if params.LastName != nil {
		form["last_name"] = *params.LastName
	}
	if params.Username != nil {
		form["username"] = *params.Username
	}

	req := c.request(ctx).SetFormData(form)
	return doWrapped[*models.User](c, req, http.MethodPatch, "/me")
}

// GetOrganizationMemberships lists the organizations of the active session's
// user. limit <= 0 keeps the server default.
func (c *Client) GetOrganizationMemberships(ctx context.Context, limit, offset int) (*models.ClientWrapped[*models.OrganizationMemberships], error) {
	req := c.request(ctx)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		req.SetQueryParam("offset", strconv.Itoa(offset))
	}
	return doWrapped[*models.OrganizationMemberships](c, req, http.MethodGet, "/me/organization_memberships")
}
