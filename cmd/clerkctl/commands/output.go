package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

// render writes v as indented JSON with -o json, or calls text otherwise.
func (rt *runtime) render(v any, text func(w io.Writer)) error {
	switch rt.output {
	case "json":
		enc := json.NewEncoder(rt.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "", "text":
		text(rt.out)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", rt.output)
	}
}

// identity is the summary printed by whoami, load and watch.
type identity struct {
	ClientID       string `json:"client_id"`
	SessionID      string `json:"session_id,omitempty"`
	UserID         string `json:"user_id,omitempty"`
	Email          string `json:"email,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
	Organization   string `json:"organization,omitempty"`
}

func newIdentity(client models.Client, sess *models.Session, user *models.User, org *models.Organization) identity {
	id := identity{ClientID: client.ID}
	if sess != nil {
		id.SessionID = sess.ID
	}
	if user != nil {
		id.UserID = user.ID
		id.Email = user.PrimaryEmailAddress()
	}
	if org != nil {
		id.OrganizationID = org.ID
		id.Organization = org.Slug
	}
	return id
}

func (id identity) writeText(w io.Writer) {
	if id.SessionID == "" {
		fmt.Fprintf(w, "client %s: signed out\n", id.ClientID)
		return
	}
	fmt.Fprintf(w, "user:         %s (%s)\n", id.Email, id.UserID)
	fmt.Fprintf(w, "session:      %s\n", id.SessionID)
	if id.OrganizationID != "" {
		fmt.Fprintf(w, "organization: %s (%s)\n", id.Organization, id.OrganizationID)
	} else {
		fmt.Fprintln(w, "organization: personal")
	}
}
