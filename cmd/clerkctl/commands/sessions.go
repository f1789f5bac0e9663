package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clerk-fapi/internal/client"
)

type sessionRow struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Active         bool   `json:"active"`
	Email          string `json:"email,omitempty"`
	OrganizationID string `json:"organization_id,omitempty"`
}

func sessionsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List the sessions of the client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(_ context.Context, a *client.App) error {
				snapshot := a.Clerk.Client()
				active := a.Clerk.Session()

				rows := make([]sessionRow, 0, len(snapshot.Sessions))
				for _, s := range snapshot.Sessions {
					row := sessionRow{
						ID:     s.ID,
						Status: s.Status,
						Active: active != nil && active.ID == s.ID,
						Email:  s.User.PrimaryEmailAddress(),
					}
					if s.LastActiveOrganizationID != nil {
						row.OrganizationID = *s.LastActiveOrganizationID
					}
					rows = append(rows, row)
				}

				return rt.render(rows, func(w io.Writer) {
					if len(rows) == 0 {
						fmt.Fprintln(w, "no sessions")
						return
					}
					for _, r := range rows {
						marker := " "
						if r.Active {
							marker = "*"
						}
						fmt.Fprintf(w, "%s %s\t%s\t%s\n", marker, r.ID, r.Status, r.Email)
					}
				})
			})
		},
	}
}
