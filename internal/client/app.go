// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-clerk-fapi/clerk"
	"github.com/MKhiriev/go-clerk-fapi/internal/config"
	"github.com/MKhiriev/go-clerk-fapi/internal/fapitest"
	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
)

// App is one clerkctl run: a Clerk instance over the configured store, plus
// the in-process fake when running with --dev.
type App struct {
	Clerk *clerk.Clerk
	Dev   *DevServer

	closeStore func() error
	logger     *logger.Logger
}

// NewApp opens the store and builds the Clerk instance. It does not load.
//
// With cfg.Dev a fake Frontend API is started on a loopback port and the
// demo account is signed in, unless cfg.FAPI.ProxyURL already points
// somewhere else.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	app := &App{logger: log}

	clerkCfg := cfg.ClerkConfig()
	if cfg.Dev && clerkCfg.ProxyURL == "" {
		dev, err := NewDevServer(ctx, "127.0.0.1:0", log)
		if err != nil {
			return nil, err
		}
		dev.Fake.StartSession(dev.User.ID)
		dev.Start()

		app.Dev = dev
		clerkCfg.ProxyURL = dev.URL()
		if clerkCfg.PublishableKey == "" {
			clerkCfg.PublishableKey = fapitest.PublishableKey
		}
		log.Debug().Str("func", "NewApp").Str("url", dev.URL()).Msg("fake frontend api started")
	}

	st, closeStore, err := openStore(ctx, cfg.Storage, log)
	if err != nil {
		app.stopDev()
		return nil, err
	}
	app.closeStore = closeStore
	clerkCfg.Store = st
	clerkCfg.Logger = &log.Logger

	c, err := clerk.New(clerkCfg)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("create clerk: %w", err)
	}
	app.Clerk = c
	return app, nil
}

// Load loads the instance, preferring the stored snapshot when useCached.
// Store warnings are logged and not returned.
func (a *App) Load(ctx context.Context, useCached bool) (clerk.LoadResult, error) {
	res, err := a.Clerk.Load(ctx, useCached)
	return res, a.warn(err)
}

// warn logs and swallows warnings.
func (a *App) warn(err error) error {
	if clerk.IsWarning(err) {
		a.logger.Warn().Err(err).Msg("state was updated but not persisted")
		return nil
	}
	return err
}

// Close stops background work, the dev server and the store.
func (a *App) Close() error {
	if a.Clerk != nil {
		a.Clerk.StopPolling()
	}
	a.stopDev()

	var err error
	if a.closeStore != nil {
		err = a.closeStore()
	}
	return err
}

func (a *App) stopDev() {
	if a.Dev == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	a.Dev.Shutdown(ctx)
}
