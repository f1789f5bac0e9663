// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [Load] when the merged configuration is
// incomplete or inconsistent.
var (
	// ErrInvalidFAPIConfigs indicates a missing publishable key or an
	// unknown client kind.
	ErrInvalidFAPIConfigs = errors.New("invalid frontend api configuration")
	// ErrInvalidStorageConfigs indicates an unknown store kind or a missing
	// DSN for a store that needs one.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates a negative poll interval.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
