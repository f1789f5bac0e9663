// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clerk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-clerk-fapi/models"
	"github.com/MKhiriev/go-clerk-fapi/store"
)

type persistReportKey struct{}

// persistReport collects store failures of one facade call so the call can
// return them as a PersistError.
type persistReport struct {
	mu   sync.Mutex
	errs []error
}

func withPersistReport(ctx context.Context) (context.Context, *persistReport) {
	r := &persistReport{}
	return context.WithValue(ctx, persistReportKey{}, r), r
}

func (r *persistReport) add(err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

// result returns err unless it is nil, in which case any collected store
// failure is returned as a warning.
func (r *persistReport) result(err error) error {
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errs) == 0 {
		return nil
	}
	return &PersistError{Err: errors.Join(r.errs...)}
}

// onClientUpdate is the single path through which server snapshots reach
// the state container.
func (c *Clerk) onClientUpdate(ctx context.Context, client *models.Client) {
	c.applyClient(ctx, client)
}

// applyClient publishes client, then persists it. The store write never
// rolls back the update.
func (c *Clerk) applyClient(ctx context.Context, client *models.Client) {
	c.state.Update(client)
	c.reportPersist(ctx, c.persistClient(ctx, client))
}

func (c *Clerk) reportPersist(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if r, ok := ctx.Value(persistReportKey{}).(*persistReport); ok {
		r.add(err)
		return
	}
	c.logger.Warn().
		Err(err).
		Str("func", "Clerk.reportPersist").
		Msg("state updated but not persisted")
}

func (c *Clerk) persistClient(ctx context.Context, client *models.Client) error {
	if !c.persist {
		return nil
	}

	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	// a newer snapshot has been published and persists itself
	if c.state.Client() != client {
		return nil
	}
	return c.writeJSON(ctx, store.KeyClient, client)
}

func (c *Clerk) persistEnvironment(ctx context.Context, env *models.Environment) error {
	if !c.persist {
		return nil
	}
	return c.writeJSON(ctx, store.KeyEnvironment, env)
}

func (c *Clerk) writeJSON(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	if err = c.store.Set(ctx, store.Key(c.cfg.StorePrefix, name), data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// readCached decodes the value persisted under name into v. A miss returns
// false and no error.
func (c *Clerk) readCached(ctx context.Context, name string, v any) (bool, error) {
	data, ok, err := c.store.Get(ctx, store.Key(c.cfg.StorePrefix, name))
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", name, err)
	}
	if !ok || len(data) == 0 {
		return false, nil
	}
	if err = json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", name, err)
	}
	return true, nil
}
