package fapi

import (
	"context"

	"github.com/MKhiriev/go-clerk-fapi/internal/utils"
)

// WithoutClientUpdate marks ctx so that client snapshots embedded in the
// responses of calls made with it are not handed to the update hook.
func WithoutClientUpdate(ctx context.Context) context.Context {
	return utils.WithSkipClientUpdate(ctx)
}

// WithRequestID makes every request issued with ctx carry id as its
// X-Request-ID instead of a generated one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return utils.WithRequestID(ctx, id)
}
