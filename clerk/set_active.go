package clerk

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

// SetActiveParams selects the session and organization to switch to.
type SetActiveParams struct {
	// SessionID defaults to the active session.
	SessionID string

	// Organization is an organization id or slug from the memberships of
	// the session user. Empty keeps the current organization.
	Organization string

	// ClearOrganization switches to the personal workspace.
	ClearOrganization bool
}

// SetActive makes a session, and optionally an organization, active. Both
// are looked up in the current snapshot before any request is made; an
// unknown one fails with ErrNotFound and leaves the state untouched.
func (c *Clerk) SetActive(ctx context.Context, p SetActiveParams) error {
	if err := c.requireLoaded(); err != nil {
		return err
	}
	if p.Organization != "" && p.ClearOrganization {
		return fmt.Errorf("%w: organization and clear organization are exclusive", ErrInvalidArgument)
	}

	snapshot := c.state.Client()

	var sess *models.Session
	if p.SessionID == "" {
		if sess = snapshot.ActiveSession(); sess == nil {
			return ErrNoActiveSession
		}
	} else if sess = snapshot.SessionByID(p.SessionID); sess == nil {
		return fmt.Errorf("%w: session %s", ErrNotFound, p.SessionID)
	}
	if sess.Status != models.SessionStatusActive {
		return fmt.Errorf("%w: session %s is %s", ErrInvalidArgument, sess.ID, sess.Status)
	}

	var orgID *string
	switch {
	case p.ClearOrganization:
		orgID = new(string)
	case p.Organization != "":
		org := sess.User.OrganizationByIDOrSlug(p.Organization)
		if org == nil {
			return fmt.Errorf("%w: organization %s", ErrNotFound, p.Organization)
		}
		orgID = &org.ID
	}

	ctx, report := withPersistReport(ctx)
	_, err := c.fapi.TouchSession(ctx, sess.ID, orgID)
	if err != nil {
		return mapFapiError(err)
	}

	c.logger.Debug().
		Str("func", "Clerk.SetActive").
		Str("session_id", sess.ID).
		Str("organization_id", deref(orgID)).
		Msg("session activated")
	return report.result(nil)
}
