// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged configuration before it is used.
func (cfg *StructuredConfig) validate() error {
	if cfg.FAPI.PublishableKey == "" && !cfg.Dev {
		return fmt.Errorf("%w: publishable key is required", ErrInvalidFAPIConfigs)
	}
	switch cfg.FAPI.Kind {
	case "", KindNative, KindBrowser:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidFAPIConfigs, cfg.FAPI.Kind)
	}
	if cfg.FAPI.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidFAPIConfigs)
	}

	switch cfg.Storage.Kind {
	case "", StoreMemory:
	case StoreFile, StoreSQLite, StorePostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s store needs a dsn", ErrInvalidStorageConfigs, cfg.Storage.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown store kind %q", ErrInvalidStorageConfigs, cfg.Storage.Kind)
	}
	if cfg.Storage.Passphrase != "" && cfg.Storage.Kind != StoreFile {
		return fmt.Errorf("%w: passphrase is only supported by the file store", ErrInvalidStorageConfigs)
	}

	if cfg.Workers.PollInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
