package clerk

import "context"

// AuthorizationHeader returns the Authorization header value a native
// instance sends with every request.
func (c *Clerk) AuthorizationHeader(ctx context.Context) (string, bool, error) {
	return c.fapi.AuthorizationHeader(ctx)
}

// SetAuthorizationHeader replaces the stored Authorization header value,
// e.g. to hand over a session obtained elsewhere. An empty value removes it.
func (c *Clerk) SetAuthorizationHeader(ctx context.Context, value string) error {
	return c.fapi.SetAuthorizationHeader(ctx, value)
}
