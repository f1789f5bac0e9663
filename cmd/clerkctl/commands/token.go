// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clerk-fapi/clerk"
	"github.com/MKhiriev/go-clerk-fapi/internal/client"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

func tokenCmd(rt *runtime) *cobra.Command {
	var (
		template  string
		org       string
		personal  bool
		skipCache bool
		copyOut   bool
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a session token for the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []clerk.TokenOption
			if template != "" {
				opts = append(opts, clerk.WithTemplate(template))
			}
			if org != "" || personal {
				opts = append(opts, clerk.WithOrganization(org))
			}
			if skipCache {
				opts = append(opts, clerk.SkipCache())
			}

			return rt.withApp(cmd, func(ctx context.Context, a *client.App) error {
				jwt, err := a.Clerk.GetToken(ctx, opts...)
				if err != nil {
					return err
				}

				if copyOut {
					if err = copyToClipboard(jwt); err != nil {
						return fmt.Errorf("copy token: %w", err)
					}
					rt.logger.Info().Msg("token copied to clipboard")
				}

				out := struct {
					JWT string `json:"jwt"`
				}{JWT: jwt}
				return rt.render(out, func(w io.Writer) {
					if copyOut {
						fmt.Fprintln(w, "token copied to clipboard")
						return
					}
					fmt.Fprintln(w, jwt)
				})
			})
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "JWT template name")
	cmd.Flags().StringVar(&org, "org", "", "Organization id to scope the token to")
	cmd.Flags().BoolVar(&personal, "personal", false, "Scope the token to the personal workspace")
	cmd.Flags().BoolVar(&skipCache, "skip-cache", false, "Always mint a new token")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the token to the clipboard instead of printing it")
	cmd.MarkFlagsMutuallyExclusive("org", "personal")
	return cmd
}
