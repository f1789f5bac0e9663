package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clerk-fapi/clerk"
	"github.com/MKhiriev/go-clerk-fapi/internal/client"
)

func signOutCmd(rt *runtime) *cobra.Command {
	var (
		sessionID string
		all       bool
	)

	cmd := &cobra.Command{
		Use:   "sign-out",
		Short: "Sign out of the active session, one session or all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []clerk.SignOutOption
			switch {
			case all:
				opts = append(opts, clerk.SignOutAll())
			case sessionID != "":
				opts = append(opts, clerk.SignOutSession(sessionID))
			}

			return rt.withApp(cmd, func(ctx context.Context, a *client.App) error {
				if err := a.Clerk.SignOut(ctx, opts...); err != nil && !clerk.IsWarning(err) {
					return err
				}

				out := struct {
					SignedIn []string `json:"signed_in"`
				}{SignedIn: a.Clerk.Client().SignedInSessions()}
				return rt.render(out, func(w io.Writer) {
					fmt.Fprintf(w, "signed out (%d sessions left)\n", len(out.SignedIn))
				})
			})
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Session id to sign out of")
	cmd.Flags().BoolVar(&all, "all", false, "Sign out of every session")
	cmd.MarkFlagsMutuallyExclusive("session", "all")
	return cmd
}
