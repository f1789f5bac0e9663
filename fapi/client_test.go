// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/go-clerk-fapi/internal/fapitest"
	"github.com/MKhiriev/go-clerk-fapi/internal/utils"
	"github.com/MKhiriev/go-clerk-fapi/models"
	"github.com/MKhiriev/go-clerk-fapi/store"
)

// hookRecorder collects every snapshot handed to the update hook.
type hookRecorder struct {
	mu      sync.Mutex
	clients []*models.Client
}

func (h *hookRecorder) hook(_ context.Context, c *models.Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients = append(h.clients, c)
}

func (h *hookRecorder) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *hookRecorder) last() *models.Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) == 0 {
		return nil
	}
	return h.clients[len(h.clients)-1]
}

func newTestClient(t *testing.T, baseURL string, native bool, st store.Store) (*Client, *hookRecorder) {
	t.Helper()
	rec := &hookRecorder{}
	c, err := New(Config{
		BaseURL:        baseURL,
		Native:         native,
		Store:          st,
		StorePrefix:    "test_",
		OnClientUpdate: rec.hook,
	})
	require.NoError(t, err)
	return c, rec
}

func newFake(t *testing.T) *fapitest.Server {
	t.Helper()
	srv := fapitest.NewServer()
	t.Cleanup(srv.Close)
	return srv
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: ""})
	assert.ErrorIs(t, err, ErrInvalidBaseURL)
}

func TestNew_AppendsAPIVersion(t *testing.T) {
	c, err := New(Config{BaseURL: "https://clerk.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://clerk.example.com/v1", c.BaseURL())
	assert.False(t, c.Native())
}

// ── environment & client ─────────────────────────────────────────────────────

func TestGetEnvironment_Success(t *testing.T) {
	srv := newFake(t)
	c, rec := newTestClient(t, srv.URL, true, nil)

	env, err := c.GetEnvironment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "environment", env.Object)
	assert.Equal(t, "fapitest", env.DisplayConfig.ApplicationName)
	assert.Zero(t, rec.count(), "environment responses carry no client")
}

func TestGetClient_RoutesSnapshotToHook(t *testing.T) {
	srv := newFake(t)
	u := srv.AddUser("alice@example.com", "pw")
	sessID := srv.StartSession(u.ID)

	c, rec := newTestClient(t, srv.URL, true, nil)
	resp, err := c.GetClient(context.Background())
	require.NoError(t, err)

	require.NotNil(t, resp.Response)
	assert.Equal(t, sessID, resp.Response.ActiveSession().ID)
	require.Equal(t, 1, rec.count())
	assert.Equal(t, sessID, *rec.last().LastActiveSessionID)
}

func TestGetClient_WithoutClientUpdate(t *testing.T) {
	srv := newFake(t)
	c, rec := newTestClient(t, srv.URL, true, nil)

	resp, err := c.GetClient(WithoutClientUpdate(context.Background()))
	require.NoError(t, err)
	assert.NotNil(t, resp.Response)
	assert.Zero(t, rec.count())
}

func TestGetClient_NullResponseIsEmptyClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":null,"client":null}`))
	}))
	defer srv.Close()

	c, rec := newTestClient(t, srv.URL, true, nil)
	resp, err := c.GetClient(context.Background())
	require.NoError(t, err)
	require.NotNil(t, resp.Response)
	assert.Empty(t, resp.Response.Sessions)
	assert.Nil(t, resp.Response.ActiveSession())
	assert.Equal(t, 1, rec.count())
}

func TestDeleteClient(t *testing.T) {
	srv := newFake(t)
	u := srv.AddUser("alice@example.com", "pw")
	srv.StartSession(u.ID)

	c, _ := newTestClient(t, srv.URL, true, nil)
	_, err := c.DeleteClient(context.Background())
	require.NoError(t, err)

	resp, err := c.GetClient(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Response.Sessions)

	created, err := c.CreateClient(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, created.Response.ID)
}

// ── native markers & authorization ───────────────────────────────────────────

func TestNative_RequestMarkersAndAuthorizationRoundTrip(t *testing.T) {
	srv := newFake(t)
	st := store.NewMemoryStore()
	c, _ := newTestClient(t, srv.URL, true, st)
	ctx := context.Background()

	_, err := c.GetEnvironment(ctx)
	require.NoError(t, err)

	// the fake hands out a credential on the first request
	auth, ok, err := c.AuthorizationHeader(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	raw, ok, err := st.Get(ctx, "test_authorization")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, auth, string(raw))

	_, err = c.GetClient(ctx)
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Empty(t, reqs[0].Authorization)
	assert.Equal(t, auth, reqs[1].Authorization)
	for _, r := range reqs {
		assert.Equal(t, "_is_native=1", r.Query)
		assert.Equal(t, "1", r.Mobile)
		assert.Equal(t, "1", r.NoOrigin)
		assert.NotEmpty(t, r.RequestID)
	}
}

func TestBrowser_NoNativeMarkersUsesCookies(t *testing.T) {
	srv := newFake(t)
	st := store.NewMemoryStore()
	c, _ := newTestClient(t, srv.URL, false, st)
	ctx := context.Background()

	_, err := c.GetEnvironment(ctx)
	require.NoError(t, err)
	_, err = c.GetClient(ctx)
	require.NoError(t, err)

	_, ok, err := st.Get(ctx, "test_authorization")
	require.NoError(t, err)
	assert.False(t, ok, "browser clients keep the credential in the cookie jar")

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	for _, r := range reqs {
		assert.Empty(t, r.Query)
		assert.Empty(t, r.Mobile)
		assert.Empty(t, r.Authorization)
	}
	assert.Equal(t, 2, srv.Count(http.MethodGet, "/v1/environment")+srv.Count(http.MethodGet, "/v1/client"))
}

func TestSetAuthorizationHeader(t *testing.T) {
	c, _ := newTestClient(t, "https://clerk.example.com", true, nil)
	ctx := context.Background()

	require.NoError(t, c.SetAuthorizationHeader(ctx, "client_jwt"))
	v, ok, err := c.AuthorizationHeader(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "client_jwt", v)

	require.NoError(t, c.SetAuthorizationHeader(ctx, ""))
	_, ok, err = c.AuthorizationHeader(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRequestIDAndTraceparent(t *testing.T) {
	srv := newFake(t)
	c, _ := newTestClient(t, srv.URL, true, nil)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = WithRequestID(ctx, "req-123")

	_, err := c.GetEnvironment(ctx)
	require.NoError(t, err)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "req-123", reqs[0].RequestID)
	assert.Equal(t, "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01", reqs[0].Traceparent)
}

// ── errors ───────────────────────────────────────────────────────────────────

func TestAPIError_MapsSentinels(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusUnprocessableEntity, ErrUnprocessable},
		{http.StatusTooManyRequests, ErrTooManyRequests},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadGateway, ErrBadGateway},
	}

	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := newFake(t)
			srv.FailNext(http.MethodGet, "/v1/environment", tc.status)
			c, _ := newTestClient(t, srv.URL, true, nil)

			_, err := c.GetEnvironment(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.Status)
			assert.Equal(t, "injected_failure", apiErr.Code())
			assert.NotEmpty(t, apiErr.TraceID)
		})
	}
}

func TestAPIError_PlainBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, true, nil)
	_, err := c.GetEnvironment(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Contains(t, apiErr.Error(), "upstream down")
	assert.Nil(t, apiErr.Unwrap())
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := newTestClient(t, url, true, nil)
	_, err := c.GetEnvironment(context.Background())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestCancelledContext(t *testing.T) {
	srv := newFake(t)
	srv.DelayNext(http.MethodGet, "/v1/client", time.Second)
	c, rec := newTestClient(t, srv.URL, true, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetClient(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Zero(t, rec.count(), "a cancelled call never reaches the hook")
}

func TestDecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":`))
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, true, nil)
	_, err := c.GetClient(context.Background())
	assert.ErrorIs(t, err, ErrDecodeResponse)
}

// ── utils glue ───────────────────────────────────────────────────────────────

func TestWithoutClientUpdate_MarksContext(t *testing.T) {
	assert.False(t, utils.SkipClientUpdate(context.Background()))
	assert.True(t, utils.SkipClientUpdate(WithoutClientUpdate(context.Background())))
}
