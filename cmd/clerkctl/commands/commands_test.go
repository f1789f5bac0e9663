package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clerk-fapi/clerk"
	"github.com/MKhiriev/go-clerk-fapi/internal/client"
	"github.com/MKhiriev/go-clerk-fapi/internal/config"
	"github.com/MKhiriev/go-clerk-fapi/internal/fapitest"
)

func execute(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CLERK_PUBLISHABLE_KEY", "")
	t.Setenv("CONFIG", "")

	var out bytes.Buffer
	cmd := NewRootCommand(BuildInfo{Version: "1.2.3"}, strings.NewReader(stdin), &out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return execute(t, context.Background(), "", args...)
}

func TestVersion_NeedsNoConfig(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version: 1.2.3")
	assert.Contains(t, out, "Build date: N/A")
}

func TestMissingPublishableKey(t *testing.T) {
	_, err := run(t, "whoami")
	assert.ErrorIs(t, err, config.ErrInvalidFAPIConfigs)
}

func TestLoad(t *testing.T) {
	out, err := run(t, "--dev", "load")
	require.NoError(t, err)
	assert.Contains(t, out, "status:       loaded")
	assert.Contains(t, out, client.DevEmail)
}

func TestWhoami(t *testing.T) {
	out, err := run(t, "--dev", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, client.DevEmail)
	assert.Contains(t, out, "organization: personal")
}

func TestWhoami_JSON(t *testing.T) {
	out, err := run(t, "--dev", "-o", "json", "whoami")
	require.NoError(t, err)

	var id identity
	require.NoError(t, json.Unmarshal([]byte(out), &id))
	assert.Equal(t, client.DevEmail, id.Email)
	assert.NotEmpty(t, id.SessionID)
	assert.NotEmpty(t, id.ClientID)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "--dev", "-o", "yaml", "whoami")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestSessions(t *testing.T) {
	out, err := run(t, "--dev", "sessions")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "* "), out)
	assert.Contains(t, out, "active")
}

func TestToken(t *testing.T) {
	out, err := run(t, "--dev", "token")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "."), "a JWT")
}

func TestToken_Copy(t *testing.T) {
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyToClipboard = orig })

	out, err := run(t, "--dev", "token", "--copy", "--skip-cache")
	require.NoError(t, err)
	assert.Contains(t, out, "copied")
	assert.Equal(t, 2, strings.Count(copied, "."))
}

func TestToken_OrgAndPersonalConflict(t *testing.T) {
	_, err := run(t, "--dev", "token", "--org", "org_1", "--personal")
	assert.Error(t, err)
}

func TestSetActive_Organization(t *testing.T) {
	out, err := run(t, "--dev", "set-active", "--org", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "organization: acme")
}

func TestSetActive_UnknownOrganization(t *testing.T) {
	_, err := run(t, "--dev", "set-active", "--org", "initech")
	assert.ErrorIs(t, err, clerk.ErrNotFound)
}

func TestSignOut(t *testing.T) {
	out, err := run(t, "--dev", "sign-out")
	require.NoError(t, err)
	assert.Contains(t, out, "signed out (0 sessions left)")
}

func TestSignIn_Password(t *testing.T) {
	out, err := run(t, "--dev", "sign-in", "-i", client.DevEmail, "--password", client.DevPassword)
	require.NoError(t, err)
	assert.Contains(t, out, client.DevEmail)
}

func TestSignIn_EmailCodeFromStdin(t *testing.T) {
	out, err := execute(t, context.Background(), fapitest.DevCode+"\n", "--dev", "sign-in", "-i", client.DevEmail)
	require.NoError(t, err)
	assert.Contains(t, out, client.DevEmail)
}

func TestSignIn_WrongCode(t *testing.T) {
	_, err := execute(t, context.Background(), "000000\n", "--dev", "sign-in", "-i", client.DevEmail)
	assert.Error(t, err)
}

func TestWatch_PrintsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	out, err := execute(t, ctx, "", "--dev", "--poll-interval", "20ms", "watch")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, client.DevEmail), "unchanged refreshes are not printed")
}

func TestFake_ServesUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	out, err := execute(t, ctx, "", "fake", "--addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, out, "proxy url:       http://127.0.0.1:")
	assert.Contains(t, out, fapitest.PublishableKey)
}

func TestLinePrompt(t *testing.T) {
	var out bytes.Buffer
	prompt := linePrompt(strings.NewReader("123456"), &out)

	got, err := prompt(context.Background(), "Code")
	require.NoError(t, err)
	assert.Equal(t, "123456", got)
	assert.Equal(t, "Code: ", out.String())

	_, err = prompt(context.Background(), "Code")
	assert.ErrorIs(t, err, io.EOF)
}

func TestDefaultStrategy(t *testing.T) {
	assert.Equal(t, "ticket", defaultStrategy(client.SignInParams{Ticket: "t", Password: "p"}))
	assert.Equal(t, "password", defaultStrategy(client.SignInParams{Password: "p"}))
	assert.Equal(t, "email_code", defaultStrategy(client.SignInParams{}))
}
