// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-clerk-fapi/internal/app"
	"github.com/MKhiriev/go-clerk-fapi/internal/client"
	"github.com/MKhiriev/go-clerk-fapi/internal/config"
	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
)

// BuildInfo is stamped in by the linker.
type BuildInfo struct {
	Version string
	Date    string
	Commit  string
}

// runtime is what every subcommand shares.
type runtime struct {
	flags  *config.StructuredConfig
	cfg    *config.StructuredConfig
	logger *logger.Logger

	cached bool
	output string

	in  io.Reader
	out io.Writer
}

// Execute runs clerkctl until it finishes or the process is interrupted.
func Execute(info BuildInfo) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	cmd, err := NewRootCommand(info, os.Stdin, os.Stdout).ExecuteContextC(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s: %v\n", app.Message(err), err)
	}
	return err
}

// NewRootCommand builds the command tree reading from in and writing
// command output to out.
func NewRootCommand(info BuildInfo, in io.Reader, out io.Writer) *cobra.Command {
	rt := &runtime{in: in, out: out}

	root := &cobra.Command{
		Use:           "clerkctl",
		Short:         "Drive a Clerk Frontend API client from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.setup()
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	rt.flags = config.BindFlags(root)
	root.PersistentFlags().BoolVar(&rt.cached, "cached", false, "Prefer the stored snapshot over a network load")
	root.PersistentFlags().StringVarP(&rt.output, "output", "o", "text", "Output format: text or json")

	root.AddCommand(
		loadCmd(rt),
		whoamiCmd(rt),
		sessionsCmd(rt),
		tokenCmd(rt),
		signInCmd(rt),
		signOutCmd(rt),
		setActiveCmd(rt),
		watchCmd(rt),
		fakeCmd(rt),
		versionCmd(info),
	)
	return root
}

// setup resolves the configuration and the logger.
func (rt *runtime) setup() error {
	cfg, err := config.Load(rt.flags)
	if err != nil {
		return err
	}
	rt.cfg = cfg

	level := zerolog.WarnLevel
	if cfg.Log.Debug {
		level = zerolog.DebugLevel
	}
	log := logger.NewFileLogger("clerkctl", cfg.Log.File)
	log.Logger = log.Level(level)
	rt.logger = log

	log.Debug().Any("config", redacted(cfg)).Msg("received configs")
	return nil
}

// withApp opens and loads a client.App for the duration of fn.
func (rt *runtime) withApp(cmd *cobra.Command, fn func(ctx context.Context, a *client.App) error) error {
	ctx := rt.logger.WithContext(cmd.Context())

	a, err := client.NewApp(ctx, rt.cfg, rt.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			rt.logger.Warn().Err(err).Msg("error closing app")
		}
	}()

	if _, err = a.Load(ctx, rt.cached); err != nil {
		return err
	}
	return fn(ctx, a)
}

func redacted(cfg *config.StructuredConfig) config.StructuredConfig {
	c := *cfg
	if c.Storage.Passphrase != "" {
		c.Storage.Passphrase = "***"
	}
	return c
}
