package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clerk-fapi/internal/client"
	"github.com/MKhiriev/go-clerk-fapi/internal/fapitest"
)

func fakeCmd(rt *runtime) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "fake",
		Short: "Serve the fake Frontend API with a demo account",
		Long: `Serve an in-memory Frontend API until interrupted. Point other
clerkctl runs at it with --proxy-url and the printed publishable key, then
sign in with the demo account.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// no publishable key is needed to serve
			rt.flags.Dev = true
			return rt.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dev, err := client.NewDevServer(ctx, addr, rt.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "proxy url:       %s\n", dev.URL())
			fmt.Fprintf(out, "publishable key: %s\n", fapitest.PublishableKey)
			fmt.Fprintf(out, "demo account:    %s / %s (email code %s)\n", client.DevEmail, client.DevPassword, fapitest.DevCode)

			return dev.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8787", "Listen address")
	return cmd
}
