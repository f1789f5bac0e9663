package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clerk-fapi/clerk"
	"github.com/MKhiriev/go-clerk-fapi/internal/client"
)

func whoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the active user, session and organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(_ context.Context, a *client.App) error {
				c := a.Clerk
				if c.Session() == nil {
					return clerk.ErrNoActiveSession
				}
				id := newIdentity(*c.Client(), c.Session(), c.User(), c.Organization())
				return rt.render(id, id.writeText)
			})
		},
	}
}
