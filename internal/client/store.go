// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-clerk-fapi/internal/config"
	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
	"github.com/MKhiriev/go-clerk-fapi/store"
)

// openStore builds the store selected by cfg. The returned close function
// is never nil.
func openStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (store.Store, func() error, error) {
	noop := func() error { return nil }
	ctx = log.WithContext(ctx)

	switch cfg.Kind {
	case "", config.StoreMemory:
		return store.NewMemoryStore(), noop, nil

	case config.StoreFile:
		var opts []store.FileOption
		if cfg.Passphrase != "" {
			opts = append(opts, store.WithPassphrase(cfg.Passphrase))
		}
		fs, err := store.NewFileStore(cfg.DSN, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return fs, noop, nil

	case config.StoreSQLite:
		s, err := store.NewSQLiteStore(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, s.Close, nil

	case config.StorePostgres:
		s, err := store.NewPostgresStore(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, s.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Kind)
	}
}
