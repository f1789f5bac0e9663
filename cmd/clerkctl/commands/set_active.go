package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clerk-fapi/clerk"
	"github.com/MKhiriev/go-clerk-fapi/internal/client"
)

func setActiveCmd(rt *runtime) *cobra.Command {
	var p clerk.SetActiveParams

	cmd := &cobra.Command{
		Use:   "set-active",
		Short: "Switch the active session or organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(ctx context.Context, a *client.App) error {
				if err := a.Clerk.SetActive(ctx, p); err != nil && !clerk.IsWarning(err) {
					return err
				}

				c := a.Clerk
				id := newIdentity(*c.Client(), c.Session(), c.User(), c.Organization())
				return rt.render(id, id.writeText)
			})
		},
	}

	cmd.Flags().StringVar(&p.SessionID, "session", "", "Session id, defaults to the active session")
	cmd.Flags().StringVar(&p.Organization, "org", "", "Organization id or slug")
	cmd.Flags().BoolVar(&p.ClearOrganization, "personal", false, "Switch to the personal workspace")
	cmd.MarkFlagsMutuallyExclusive("org", "personal")
	return cmd
}
