package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clerk-fapi/clerk"
	"github.com/MKhiriev/go-clerk-fapi/internal/config"
	"github.com/MKhiriev/go-clerk-fapi/internal/fapitest"
)

func fakeConfig(fake *fapitest.Server) *config.StructuredConfig {
	return &config.StructuredConfig{
		FAPI: config.FAPI{
			PublishableKey: fapitest.PublishableKey,
			ProxyURL:       fake.URL,
			Kind:           config.KindNative,
		},
		Storage: config.Storage{Kind: config.StoreMemory, Prefix: "test_"},
	}
}

func newTestApp(t *testing.T, cfg *config.StructuredConfig) *App {
	t.Helper()
	app, err := NewApp(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestNewApp_DevModeSignsInDemoUser(t *testing.T) {
	app := newTestApp(t, &config.StructuredConfig{Dev: true})
	require.NotNil(t, app.Dev)

	_, err := app.Load(context.Background(), false)
	require.NoError(t, err)

	require.NotNil(t, app.Clerk.User())
	assert.Equal(t, DevEmail, app.Clerk.User().PrimaryEmailAddress())
	assert.Equal(t, app.Dev.URL()+"/v1", app.Clerk.GetFapiClient().BaseURL())
}

func TestNewApp_DevModeKeepsExplicitProxy(t *testing.T) {
	fake := fapitest.NewServer()
	defer fake.Close()

	cfg := fakeConfig(fake)
	cfg.Dev = true
	app := newTestApp(t, cfg)

	assert.Nil(t, app.Dev)
}

func TestNewApp_UnknownStore(t *testing.T) {
	fake := fapitest.NewServer()
	defer fake.Close()

	cfg := fakeConfig(fake)
	cfg.Storage.Kind = "redis"

	app, err := NewApp(context.Background(), cfg, nil)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, ErrUnknownStore)
}

func TestNewApp_InvalidKey(t *testing.T) {
	cfg := &config.StructuredConfig{FAPI: config.FAPI{PublishableKey: "nope"}}

	app, err := NewApp(context.Background(), cfg, nil)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, clerk.ErrConfiguration)
}

func TestApp_SealedFileStoreSurvivesRestart(t *testing.T) {
	fake := fapitest.NewServer()
	user := fake.AddUser("ada@example.com", "hunter2")
	sessionID := fake.StartSession(user.ID)

	cfg := fakeConfig(fake)
	cfg.Storage = config.Storage{
		Kind:       config.StoreFile,
		DSN:        filepath.Join(t.TempDir(), "clerkctl.json"),
		Prefix:     "test_",
		Passphrase: "correct horse",
	}

	first := newTestApp(t, cfg)
	_, err := first.Load(context.Background(), false)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// the second run works offline from the sealed file
	fake.Close()

	second := newTestApp(t, cfg)
	res, err := second.Load(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, res.ClientFromCache)
	assert.True(t, res.EnvironmentFromCache)
	require.NotNil(t, second.Clerk.Session())
	assert.Equal(t, sessionID, second.Clerk.Session().ID)
}

func TestApp_SQLiteStore(t *testing.T) {
	fake := fapitest.NewServer()
	defer fake.Close()
	user := fake.AddUser("ada@example.com", "hunter2")
	fake.StartSession(user.ID)

	cfg := fakeConfig(fake)
	cfg.Storage = config.Storage{
		Kind:   config.StoreSQLite,
		DSN:    filepath.Join(t.TempDir(), "clerk.db"),
		Prefix: "test_",
	}

	app := newTestApp(t, cfg)
	_, err := app.Load(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, user.ID, app.Clerk.User().ID)
}
