package config

import (
	"github.com/MKhiriev/go-clerk-fapi/clerk"
)

// ClerkConfig maps the connection settings onto a clerk.Config. Store and
// Logger are left for the caller to wire.
func (cfg *StructuredConfig) ClerkConfig() clerk.Config {
	kind := clerk.KindNative
	if cfg.FAPI.Kind == KindBrowser {
		kind = clerk.KindBrowser
	}

	persistence := clerk.PersistenceAuto
	if cfg.Storage.Kind != "" && cfg.Storage.Kind != StoreMemory {
		// an explicit durable store is always used for snapshots
		persistence = clerk.PersistenceEnabled
	}

	return clerk.Config{
		PublishableKey: cfg.FAPI.PublishableKey,
		ProxyURL:       cfg.FAPI.ProxyURL,
		Domain:         cfg.FAPI.Domain,
		StorePrefix:    cfg.Storage.Prefix,
		Kind:           kind,
		Persistence:    persistence,
		UserAgent:      "clerkctl",
		RequestTimeout: cfg.FAPI.RequestTimeout,
	}
}
