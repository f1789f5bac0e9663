package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clerk-fapi/internal/client"
)

func loadCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the client and print what was loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := rt.logger.WithContext(cmd.Context())

			a, err := client.NewApp(ctx, rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Load(ctx, rt.cached)
			if err != nil {
				return err
			}
			return rt.renderLoad(a, res.EnvironmentFromCache, res.ClientFromCache)
		},
	}
}

func (rt *runtime) renderLoad(a *client.App, envCached, clientCached bool) error {
	c := a.Clerk
	id := newIdentity(*c.Client(), c.Session(), c.User(), c.Organization())

	out := struct {
		Status               string   `json:"status"`
		EnvironmentFromCache bool     `json:"environment_from_cache"`
		ClientFromCache      bool     `json:"client_from_cache"`
		Identity             identity `json:"identity"`
	}{
		Status:               c.Status().String(),
		EnvironmentFromCache: envCached,
		ClientFromCache:      clientCached,
		Identity:             id,
	}

	return rt.render(out, func(w io.Writer) {
		fmt.Fprintf(w, "status:       %s (environment cached: %t, client cached: %t)\n",
			out.Status, envCached, clientCached)
		id.writeText(w)
	})
}
