package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clerk-fapi/fapi"
	"github.com/MKhiriev/go-clerk-fapi/internal/fapitest"
	"github.com/MKhiriev/go-clerk-fapi/models"
)

func loadedTestApp(t *testing.T) (*App, *fapitest.Server) {
	t.Helper()
	fake := fapitest.NewServer()
	t.Cleanup(fake.Close)

	app := newTestApp(t, fakeConfig(fake))
	_, err := app.Load(context.Background(), false)
	require.NoError(t, err)
	require.Nil(t, app.Clerk.Session())
	return app, fake
}

func TestSignIn_Password(t *testing.T) {
	app, fake := loadedTestApp(t)
	user := fake.AddUser("ada@example.com", "hunter2")

	sess, err := app.SignIn(context.Background(), SignInParams{
		Strategy:   models.StrategyPassword,
		Identifier: "ada@example.com",
		Password:   "hunter2",
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, app.Clerk.Session())
	assert.Equal(t, sess.ID, app.Clerk.Session().ID)
	assert.Equal(t, user.ID, app.Clerk.User().ID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	app, fake := loadedTestApp(t)
	fake.AddUser("ada@example.com", "hunter2")

	_, err := app.SignIn(context.Background(), SignInParams{
		Strategy:   models.StrategyPassword,
		Identifier: "ada@example.com",
		Password:   "wrong",
	}, nil)

	var apiErr *fapi.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "form_password_incorrect", apiErr.Code())
	assert.Nil(t, app.Clerk.Session())
}

func TestSignIn_EmailCode(t *testing.T) {
	app, fake := loadedTestApp(t)
	user := fake.AddUser("ada@example.com", "")

	var label string
	prompt := PromptFunc(func(_ context.Context, l string) (string, error) {
		label = l
		return " " + fapitest.DevCode + "\n", nil
	})

	_, err := app.SignIn(context.Background(), SignInParams{
		Strategy:   models.StrategyEmailCode,
		Identifier: "ada@example.com",
	}, prompt)
	require.NoError(t, err)

	assert.Contains(t, label, "ada@example.com")
	assert.Equal(t, user.ID, app.Clerk.User().ID)
	assert.Equal(t, 1, fake.Count("POST", "/v1/client/sign_ins/{sign_in_id}/prepare_first_factor"))
}

func TestSignIn_EmailCodePromptFails(t *testing.T) {
	app, fake := loadedTestApp(t)
	fake.AddUser("ada@example.com", "")

	boom := errors.New("stdin closed")
	_, err := app.SignIn(context.Background(), SignInParams{
		Strategy:   models.StrategyEmailCode,
		Identifier: "ada@example.com",
	}, PromptFunc(func(context.Context, string) (string, error) { return "", boom }))

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, app.Clerk.Session())
}

func TestSignIn_EmailCodeNeedsPrompt(t *testing.T) {
	app, _ := loadedTestApp(t)

	_, err := app.SignIn(context.Background(), SignInParams{Strategy: models.StrategyEmailCode}, nil)
	assert.ErrorIs(t, err, ErrPromptRequired)
}

func TestSignIn_Ticket(t *testing.T) {
	app, fake := loadedTestApp(t)
	user := fake.AddUser("ada@example.com", "")
	ticket := fake.IssueTicket(user.ID)

	_, err := app.SignIn(context.Background(), SignInParams{Strategy: models.StrategyTicket, Ticket: ticket}, nil)
	require.NoError(t, err)
	assert.Equal(t, user.ID, app.Clerk.User().ID)

	// tickets are single use
	_, err = app.SignIn(context.Background(), SignInParams{Strategy: models.StrategyTicket, Ticket: ticket}, nil)
	assert.ErrorIs(t, err, fapi.ErrUnprocessable)
}

func TestSignIn_UnsupportedStrategy(t *testing.T) {
	app, _ := loadedTestApp(t)

	_, err := app.SignIn(context.Background(), SignInParams{Strategy: "oauth_google"}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedStrategy)
}
