// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package clerk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clerk-fapi/internal/fapitest"
	"github.com/MKhiriev/go-clerk-fapi/models"
	"github.com/MKhiriev/go-clerk-fapi/store"
)

const testPrefix = "test_"

func newFake(t *testing.T) *fapitest.Server {
	t.Helper()
	srv := fapitest.NewServer()
	t.Cleanup(srv.Close)
	return srv
}

// newClerk points a native instance at srv. Options tweak the config.
func newClerk(t *testing.T, srv *fapitest.Server, opts ...func(*Config)) *Clerk {
	t.Helper()
	cfg := Config{
		PublishableKey: fapitest.PublishableKey,
		ProxyURL:       srv.URL,
		StorePrefix:    testPrefix,
		RequestTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	c, err := New(cfg)
	require.NoError(t, err)
	return c
}

func loadedClerk(t *testing.T, srv *fapitest.Server, opts ...func(*Config)) *Clerk {
	t.Helper()
	c := newClerk(t, srv, opts...)
	_, err := c.Load(context.Background(), false)
	require.NoError(t, err)
	return c
}

func withStore(st store.Store) func(*Config) {
	return func(c *Config) { c.Store = st }
}

// signIn creates a user on srv with the given organizations and starts an
// active session for it.
func signIn(srv *fapitest.Server, email string, orgs ...models.Organization) (models.User, string) {
	u := srv.AddUser(email, "secret-password", orgs...)
	return u, srv.StartSession(u.ID)
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNew_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing key", cfg: Config{}},
		{name: "blank key", cfg: Config{PublishableKey: "   "}},
		{name: "unknown prefix", cfg: Config{PublishableKey: "sk_test_Y2xlcmsuZXhhbXBsZS5jb20k"}},
		{name: "not base64", cfg: Config{PublishableKey: "pk_test_!!!"}},
		{name: "bad proxy", cfg: Config{PublishableKey: fapitest.PublishableKey, ProxyURL: "http://[::1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			require.ErrorIs(t, err, ErrConfiguration)
			assert.Nil(t, c)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(Config{PublishableKey: fapitest.PublishableKey})
	require.NoError(t, err)

	assert.Equal(t, StatusUnloaded, c.Status())
	assert.False(t, c.Loaded())
	assert.Equal(t, "https://clerk.example.com/v1", c.GetFapiClient().BaseURL())
	assert.True(t, c.GetFapiClient().Native())
	assert.Equal(t, defaultTokenLeeway, c.Config().TokenLeeway)
	assert.NotNil(t, c.Config().Store)

	assert.Nil(t, c.Client())
	assert.Nil(t, c.Session())
	assert.Nil(t, c.User())
	assert.Nil(t, c.Organization())
	assert.Nil(t, c.Environment())
}

func TestNew_DomainAndKind(t *testing.T) {
	c, err := New(Config{PublishableKey: fapitest.PublishableKey, Domain: "auth.example.org", Kind: KindBrowser})
	require.NoError(t, err)

	assert.Equal(t, "https://clerk.auth.example.org/v1", c.GetFapiClient().BaseURL())
	assert.False(t, c.GetFapiClient().Native())
}

func TestConfig_PersistenceEnabled(t *testing.T) {
	tests := []struct {
		kind        Kind
		persistence Persistence
		want        bool
	}{
		{KindNative, PersistenceAuto, true},
		{KindBrowser, PersistenceAuto, false},
		{KindBrowser, PersistenceEnabled, true},
		{KindNative, PersistenceDisabled, false},
	}
	for _, tt := range tests {
		cfg := Config{Kind: tt.kind, Persistence: tt.persistence}
		assert.Equal(t, tt.want, cfg.persistenceEnabled(), "%s/%d", tt.kind, tt.persistence)
	}
}

func TestStatusAndKind_String(t *testing.T) {
	assert.Equal(t, "unloaded", StatusUnloaded.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "load_failed", StatusLoadFailed.String())
	assert.Equal(t, "status(9)", Status(9).String())

	assert.Equal(t, "native", KindNative.String())
	assert.Equal(t, "browser", KindBrowser.String())
	assert.Equal(t, "unknown", Kind(7).String())
}

func TestNotLoaded(t *testing.T) {
	srv := newFake(t)
	c := newClerk(t, srv)
	ctx := context.Background()

	_, err := c.GetToken(ctx)
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.ErrorIs(t, c.SignOut(ctx), ErrNotLoaded)
	assert.ErrorIs(t, c.SetActive(ctx, SetActiveParams{SessionID: "sess_1"}), ErrNotLoaded)
	assert.ErrorIs(t, c.Refresh(ctx), ErrNotLoaded)

	assert.Empty(t, srv.Requests(), "nothing reaches the network")
}

// ── authorization header ─────────────────────────────────────────────────────

func TestAuthorizationHeader_NativeRoundTrip(t *testing.T) {
	srv := newFake(t)
	st := store.NewMemoryStore()
	c := loadedClerk(t, srv, withStore(st))
	ctx := context.Background()

	v, ok, err := c.AuthorizationHeader(ctx)
	require.NoError(t, err)
	require.True(t, ok, "the fake hands out an Authorization header to native clients")
	assert.NotEmpty(t, v)

	raw, ok, err := st.Get(ctx, testPrefix+store.KeyAuthorization)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, v, string(raw))

	require.NoError(t, c.SetAuthorizationHeader(ctx, "Bearer handed-over"))
	v, _, _ = c.AuthorizationHeader(ctx)
	assert.Equal(t, "Bearer handed-over", v)

	require.NoError(t, c.SetAuthorizationHeader(ctx, ""))
	_, ok, err = c.AuthorizationHeader(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
