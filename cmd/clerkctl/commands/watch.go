// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clerk-fapi/clerk"
	"github.com/MKhiriev/go-clerk-fapi/internal/client"
	"github.com/MKhiriev/go-clerk-fapi/internal/workers"
	"github.com/MKhiriev/go-clerk-fapi/models"
)

func watchCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Refresh the client periodically and print every change",
		Long: `Print the current identity, then refresh the client every
--poll-interval and print it again whenever the active session, user or
organization changes. Stops on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withApp(cmd, func(ctx context.Context, a *client.App) error {
				var (
					mu   sync.Mutex
					last *identity
				)
				handle := a.Clerk.AddListener(func(client models.Client, sess *models.Session, user *models.User, org *models.Organization) {
					id := newIdentity(client, sess, user, org)

					mu.Lock()
					defer mu.Unlock()
					if last != nil && *last == id {
						return
					}
					last = &id
					if err := rt.render(id, func(w io.Writer) {
						id.writeText(w)
						fmt.Fprintln(w, "---")
					}); err != nil {
						rt.logger.Warn().Err(err).Msg("error printing update")
					}
				}, clerk.WithCurrentState())
				defer handle.Remove()

				jobs := workers.New(workers.NewPoller(a.Clerk, rt.cfg.Workers.PollInterval, rt.logger))
				jobs.Run(ctx)
				defer jobs.Stop()

				<-ctx.Done()
				return nil
			})
		},
	}
}
