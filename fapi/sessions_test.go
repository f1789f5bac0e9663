// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-clerk-fapi/internal/fapitest"
	"github.com/MKhiriev/go-clerk-fapi/internal/utils"
	"github.com/MKhiriev/go-clerk-fapi/models"
)

func TestCreateSessionToken(t *testing.T) {
	srv := newFake(t)
	u := srv.AddUser("alice@example.com", "pw", models.Organization{ID: "org_1", Name: "Acme", Slug: "acme"})
	sessID := srv.StartSession(u.ID)
	c, rec := newTestClient(t, srv.URL, true, nil)
	ctx := context.Background()

	token, err := c.CreateSessionToken(ctx, sessID, nil)
	require.NoError(t, err)
	claims, err := utils.ParseSessionClaims(token.JWT)
	require.NoError(t, err)
	assert.Equal(t, sessID, claims.SessionID)
	assert.Equal(t, u.ID, claims.Subject)
	assert.Empty(t, claims.OrganizationID)
	assert.Zero(t, rec.count(), "token responses carry no client")

	org := "org_1"
	token, err = c.CreateSessionToken(ctx, sessID, &org)
	require.NoError(t, err)
	claims, err = utils.ParseSessionClaims(token.JWT)
	require.NoError(t, err)
	assert.Equal(t, "org_1", claims.OrganizationID)

	reqs := srv.Requests()
	assert.Equal(t, "org_1", reqs[len(reqs)-1].Form["organization_id"])
}

func TestCreateSessionToken_Errors(t *testing.T) {
	srv := newFake(t)
	c, _ := newTestClient(t, srv.URL, true, nil)

	_, err := c.CreateSessionToken(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = c.CreateSessionToken(context.Background(), "sess_missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSessionTokenWithTemplate(t *testing.T) {
	srv := newFake(t)
	u := srv.AddUser("alice@example.com", "pw")
	sessID := srv.StartSession(u.ID)
	c, _ := newTestClient(t, srv.URL, true, nil)

	token, err := c.CreateSessionTokenWithTemplate(context.Background(), sessID, "hasura")
	require.NoError(t, err)

	claims, err := utils.ParseSessionClaims(token.JWT)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/templates/hasura", claims.Issuer)
	assert.Equal(t, 1, srv.Count(http.MethodPost, "/v1/client/sessions/{session_id}/tokens/{template}"))

	_, err = c.CreateSessionTokenWithTemplate(context.Background(), sessID, "")
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestTouchSession_SwitchesOrganization(t *testing.T) {
	srv := newFake(t)
	u := srv.AddUser("alice@example.com", "pw", models.Organization{ID: "org_1", Name: "Acme", Slug: "acme"})
	sessID := srv.StartSession(u.ID)
	c, rec := newTestClient(t, srv.URL, true, nil)
	ctx := context.Background()

	org := "org_1"
	resp, err := c.TouchSession(ctx, sessID, &org)
	require.NoError(t, err)
	require.NotNil(t, resp.Response)
	assert.Equal(t, "org_1", *resp.Response.LastActiveOrganizationID)

	require.Equal(t, 1, rec.count())
	active := rec.last().ActiveSession()
	require.NotNil(t, active)
	require.NotNil(t, active.ActiveOrganization())
	assert.Equal(t, "acme", active.ActiveOrganization().Slug)

	personal := ""
	resp, err = c.TouchSession(ctx, sessID, &personal)
	require.NoError(t, err)
	assert.Nil(t, resp.Response.LastActiveOrganizationID)

	missing := "org_missing"
	_, err = c.TouchSession(ctx, sessID, &missing)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, rec.count(), "failed calls do not reach the hook")
}

func TestEndAndRemoveSession(t *testing.T) {
	srv := newFake(t)
	alice := srv.AddUser("alice@example.com", "pw")
	bob := srv.AddUser("bob@example.com", "pw")
	s1 := srv.StartSession(alice.ID)
	s2 := srv.StartSession(bob.ID)
	c, rec := newTestClient(t, srv.URL, true, nil)
	ctx := context.Background()

	resp, err := c.RemoveSession(ctx, s2)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusRemoved, resp.Response.Status)
	assert.Equal(t, s1, rec.last().ActiveSession().ID, "the remaining session becomes active")

	resp, err = c.EndSession(ctx, s1)
	require.NoError(t, err)
	assert.Equal(t, models.SessionStatusEnded, resp.Response.Status)
	assert.Nil(t, rec.last().ActiveSession())

	_, err = c.GetSession(ctx, s1)
	require.NoError(t, err)
	_, err = c.RemoveSession(ctx, "")
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestRemoveClientSessions(t *testing.T) {
	srv := newFake(t)
	alice := srv.AddUser("alice@example.com", "pw")
	bob := srv.AddUser("bob@example.com", "pw")
	srv.StartSession(alice.ID)
	srv.StartSession(bob.ID)
	c, rec := newTestClient(t, srv.URL, true, nil)

	_, err := c.RemoveClientSessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.last().SignedInSessions())
	assert.Nil(t, rec.last().LastActiveSessionID)
}

func TestSignInWithEmailCode(t *testing.T) {
	srv := newFake(t)
	srv.AddUser("alice@example.com", "")
	c, rec := newTestClient(t, srv.URL, true, nil)
	ctx := context.Background()

	created, err := c.CreateSignIn(ctx, models.SignInParams{Strategy: models.StrategyEmailCode, Identifier: "alice@example.com"})
	require.NoError(t, err)
	signIn := created.Response
	assert.Equal(t, models.SignInStatusNeedsFirstFactor, signIn.Status)
	require.NotEmpty(t, signIn.SupportedFirstFactors)

	_, err = c.PrepareSignInFactorOne(ctx, signIn.ID, signIn.SupportedFirstFactors[0])
	require.NoError(t, err)

	_, err = c.AttemptSignInFactorOne(ctx, signIn.ID, models.AttemptFactorParams{Strategy: models.StrategyEmailCode, Code: "000000"})
	assert.ErrorIs(t, err, ErrUnprocessable)

	done, err := c.AttemptSignInFactorOne(ctx, signIn.ID, models.AttemptFactorParams{Strategy: models.StrategyEmailCode, Code: fapitest.DevCode})
	require.NoError(t, err)
	assert.Equal(t, models.SignInStatusComplete, done.Response.Status)
	require.NotNil(t, done.Response.CreatedSessionID)
	assert.Equal(t, *done.Response.CreatedSessionID, rec.last().ActiveSession().ID)
}

func TestSignInWithTicketAndPassword(t *testing.T) {
	srv := newFake(t)
	u := srv.AddUser("alice@example.com", "s3cret")
	c, rec := newTestClient(t, srv.URL, true, nil)
	ctx := context.Background()

	_, err := c.CreateSignIn(ctx, models.SignInParams{Strategy: models.StrategyPassword, Identifier: "alice@example.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrUnprocessable)

	resp, err := c.CreateSignIn(ctx, models.SignInParams{Strategy: models.StrategyPassword, Identifier: "alice@example.com", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, models.SignInStatusComplete, resp.Response.Status)

	resp, err = c.CreateSignIn(ctx, models.SignInParams{Strategy: models.StrategyTicket, Ticket: srv.IssueTicket(u.ID)})
	require.NoError(t, err)
	assert.Equal(t, models.SignInStatusComplete, resp.Response.Status)
	assert.Equal(t, u.ID, rec.last().ActiveSession().User.ID)
}

func TestSignUpAndMe(t *testing.T) {
	srv := newFake(t)
	c, _ := newTestClient(t, srv.URL, true, nil)
	ctx := context.Background()

	_, err := c.GetUser(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	resp, err := c.CreateSignUp(ctx, models.SignUpParams{EmailAddress: "carol@example.com", Password: "pw", FirstName: "Carol"})
	require.NoError(t, err)
	assert.Equal(t, models.SignUpStatusComplete, resp.Response.Status)

	_, err = c.CreateSignUp(ctx, models.SignUpParams{EmailAddress: "carol@example.com"})
	assert.ErrorIs(t, err, ErrUnprocessable)

	me, err := c.GetUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "carol@example.com", me.Response.PrimaryEmailAddress())
	require.NotNil(t, me.Response.FirstName)
	assert.Equal(t, "Carol", *me.Response.FirstName)

	last := "Jones"
	updated, err := c.UpdateUser(ctx, UpdateUserParams{LastName: &last})
	require.NoError(t, err)
	require.NotNil(t, updated.Response.LastName)
	assert.Equal(t, "Jones", *updated.Response.LastName)
	assert.Equal(t, "Jones", *updated.Client.ActiveSession().User.LastName)
}

func TestGetOrganizationMemberships(t *testing.T) {
	srv := newFake(t)
	u := srv.AddUser("alice@example.com", "pw",
		models.Organization{ID: "org_1", Slug: "one"},
		models.Organization{ID: "org_2", Slug: "two"},
		models.Organization{ID: "org_3", Slug: "three"},
	)
	srv.StartSession(u.ID)
	c, _ := newTestClient(t, srv.URL, true, nil)

	resp, err := c.GetOrganizationMemberships(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Response.TotalCount)
	require.Len(t, resp.Response.Data, 2)
	assert.Equal(t, "org_2", resp.Response.Data[0].Organization.ID)
	assert.Equal(t, "org_3", resp.Response.Data[1].Organization.ID)
}
