// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clerk

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/go-clerk-fapi/fapi"
	"github.com/MKhiriev/go-clerk-fapi/models"
	"github.com/MKhiriev/go-clerk-fapi/store"
)

// LoadResult tells where Load took its data from.
type LoadResult struct {
	EnvironmentFromCache bool
	ClientFromCache      bool
}

// Load fetches the environment and the client snapshot.
//
// With useCached and persistence enabled, values found in the store are used
// instead of the network. Store read or decode failures are logged and fall
// back to the network. Concurrent calls with the same useCached share one
// load; a caller whose ctx ends stops waiting without cancelling the load
// for the others.
//
// A *PersistError is returned, and the instance is loaded, when only the
// store write failed.
func (c *Clerk) Load(ctx context.Context, useCached bool) (LoadResult, error) {
	key := "network"
	if useCached {
		key = "cached"
	}

	v, err := c.loads.do(ctx, key, func(ctx context.Context) (any, error) {
		return c.load(ctx, useCached)
	})
	res, _ := v.(LoadResult)
	return res, err
}

func (c *Clerk) load(ctx context.Context, useCached bool) (LoadResult, error) {
	c.markLoading()

	ctx, report := withPersistReport(ctx)
	res, err := c.fetch(ctx, useCached && c.persist)
	if err != nil {
		// a loaded instance keeps serving its snapshot, including one loaded
		// by a concurrent call while this one was running
		c.status.CompareAndSwap(int32(StatusLoading), int32(StatusLoadFailed))
		c.logger.Error().
			Err(err).
			Str("func", "Clerk.Load").
			Bool("use_cached", useCached).
			Msg("load failed")
		return LoadResult{}, err
	}

	c.status.Store(int32(StatusLoaded))
	c.logger.Debug().
		Str("func", "Clerk.Load").
		Bool("environment_from_cache", res.EnvironmentFromCache).
		Bool("client_from_cache", res.ClientFromCache).
		Msg("loaded")
	return res, report.result(nil)
}

// markLoading moves the instance to StatusLoading unless it is loaded.
func (c *Clerk) markLoading() {
	for {
		s := c.status.Load()
		if Status(s) == StatusLoaded || c.status.CompareAndSwap(s, int32(StatusLoading)) {
			return
		}
	}
}

func (c *Clerk) fetch(ctx context.Context, fromCache bool) (LoadResult, error) {
	var (
		res    LoadResult
		env    *models.Environment
		client *models.Client
	)

	if fromCache {
		env, client = c.loadCached(ctx)
		res.EnvironmentFromCache = env != nil
		res.ClientFromCache = client != nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if env == nil {
		g.Go(func() error {
			e, err := c.fapi.GetEnvironment(gctx)
			if err != nil && res.ClientFromCache {
				// the cached client is usable on its own
				c.logger.Warn().Err(err).Str("func", "Clerk.fetch").Msg("environment unavailable")
				return nil
			}
			if err != nil {
				return fmt.Errorf("fetching environment: %w", err)
			}
			env = e
			return nil
		})
	}
	if client == nil {
		g.Go(func() error {
			// applied below, after the environment
			wrapped, err := c.fapi.GetClient(fapi.WithoutClientUpdate(gctx))
			if err != nil {
				return fmt.Errorf("fetching client: %w", err)
			}
			client = wrapped.Response
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return LoadResult{}, networkError(err)
	}

	if env != nil {
		c.state.SetEnvironment(env)
	}
	if env != nil && !res.EnvironmentFromCache {
		c.reportPersist(ctx, c.persistEnvironment(ctx, env))
	}

	if res.ClientFromCache {
		c.state.Update(client)
	} else {
		c.applyClient(ctx, client)
	}
	return res, nil
}

// loadCached returns whatever the store holds. Failures are logged and
// count as a miss.
func (c *Clerk) loadCached(ctx context.Context) (*models.Environment, *models.Client) {
	var env models.Environment
	envOK, err := c.readCached(ctx, store.KeyEnvironment, &env)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "Clerk.loadCached").Msg("ignoring cached environment")
	}

	var client models.Client
	clientOK, err := c.readCached(ctx, store.KeyClient, &client)
	if err != nil {
		c.logger.Warn().Err(err).Str("func", "Clerk.loadCached").Msg("ignoring cached client")
	}

	var (
		envPtr    *models.Environment
		clientPtr *models.Client
	)
	if envOK {
		envPtr = &env
	}
	if clientOK {
		clientPtr = &client
	}
	return envPtr, clientPtr
}

// SetLoaded initialises the instance from data fetched elsewhere, e.g. by a
// server that rendered the page. Either argument may be nil to keep the
// current value.
func (c *Clerk) SetLoaded(ctx context.Context, env *models.Environment, client *models.Client) error {
	ctx, report := withPersistReport(ctx)

	if env != nil {
		c.state.SetEnvironment(env)
		c.reportPersist(ctx, c.persistEnvironment(ctx, env))
	}
	if client != nil {
		c.applyClient(ctx, client)
	}
	c.status.Store(int32(StatusLoaded))
	return report.result(nil)
}

// Refresh re-fetches the client snapshot.
func (c *Clerk) Refresh(ctx context.Context) error {
	if err := c.requireLoaded(); err != nil {
		return err
	}

	ctx, report := withPersistReport(ctx)
	_, err := c.fapi.GetClient(ctx)
	return report.result(mapFapiError(err))
}
