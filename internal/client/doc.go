// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the clerkctl application runtime.
//
// It turns a [config.StructuredConfig] into a ready clerk.Clerk: it opens the
// configured store, optionally starts the in-process fake Frontend API for
// --dev runs, and drives the interactive sign-in flows that go through the
// raw Frontend API client.
package client
