// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package fapi is a typed client for a subset of the Clerk Frontend API.
//
// Almost every endpoint answers with an envelope holding the per-call
// payload and the client snapshot after the call. The Client hands every
// such snapshot to a single [ClientUpdateHook] before returning, so state
// kept by the caller stays in sync no matter which method produced the
// response. Contexts marked with [WithoutClientUpdate] bypass the hook.
//
// Native clients (Config.Native) authenticate with an Authorization header
// that is read from, and written back to, the configured store. Browser-like
// clients rely on the cookie jar of the underlying resty client.
package fapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-clerk-fapi/internal/logger"
	"github.com/MKhiriev/go-clerk-fapi/internal/utils"
	"github.com/MKhiriev/go-clerk-fapi/models"
	"github.com/MKhiriev/go-clerk-fapi/store"
)

const (
	apiVersionPath   = "/v1"
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "go-clerk-fapi"
)

// ClientUpdateHook receives every client snapshot embedded in a response.
type ClientUpdateHook func(ctx context.Context, client *models.Client)

// Config configures a Client.
type Config struct {
	// BaseURL is the Frontend API origin, e.g. https://clerk.example.com.
	// Use ResolveBaseURL to derive it from a publishable key.
	BaseURL string

	// Native switches on the non-browser request markers and the
	// store-backed Authorization header.
	Native bool

	// Store holds the Authorization header of native clients. Defaults to a
	// MemoryStore.
	Store       store.Store
	StorePrefix string

	UserAgent string
	Timeout   time.Duration
	Logger    *zerolog.Logger

	OnClientUpdate ClientUpdateHook
}

// Client is the typed Frontend API transport. It is safe for concurrent use.
type Client struct {
	http *utils.HTTPClient

	native      bool
	store       store.Store
	storePrefix string

	onClientUpdate ClientUpdateHook
	uuid           *utils.UUIDGenerator
	logger         *logger.Logger
}

// New builds a Client. It fails only when BaseURL is not a usable URL.
func New(cfg Config) (*Client, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Store == nil {
		cfg.Store = store.NewMemoryStore()
	}

	c := &Client{
		http:           utils.NewHTTPClient(baseURL+apiVersionPath, cfg.Timeout, cfg.UserAgent),
		native:         cfg.Native,
		store:          cfg.Store,
		storePrefix:    cfg.StorePrefix,
		onClientUpdate: cfg.OnClientUpdate,
		uuid:           utils.NewUUIDGenerator(),
		logger:         logger.Wrap(cfg.Logger),
	}

	if c.native {
		// native clients carry their session in the Authorization header
		c.http.SetCookieJar(nil)
	}
	c.http.OnBeforeRequest(c.prepareRequest)
	c.http.OnAfterResponse(c.captureResponse)

	return c, nil
}

// BaseURL returns the versioned API root every path is resolved against.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Native reports whether the client sends native request markers.
func (c *Client) Native() bool {
	return c.native
}

// AuthorizationHeader returns the stored Authorization header value of a
// native client.
func (c *Client) AuthorizationHeader(ctx context.Context) (string, bool, error) {
	v, ok, err := c.store.Get(ctx, c.authorizationKey())
	if err != nil || !ok {
		return "", false, err
	}
	return string(v), true, nil
}

// SetAuthorizationHeader replaces the stored Authorization header value. An
// empty value removes it.
func (c *Client) SetAuthorizationHeader(ctx context.Context, value string) error {
	if value == "" {
		return c.store.Remove(ctx, c.authorizationKey())
	}
	return c.store.Set(ctx, c.authorizationKey(), []byte(value))
}

func (c *Client) authorizationKey() string {
	return store.Key(c.storePrefix, store.KeyAuthorization)
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// dispatchClient routes an embedded snapshot to the update hook.
func (c *Client) dispatchClient(ctx context.Context, client *models.Client) {
	if client == nil || c.onClientUpdate == nil || utils.SkipClientUpdate(ctx) {
		return
	}
	c.onClientUpdate(ctx, client)
}

// do executes the request and decodes a 2xx body into result.
func (c *Client) do(req *resty.Request, method, path string, result any) error {
	resp, err := req.Execute(method, path)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("%s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if result == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err = json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrDecodeResponse, method, path, err)
	}
	return nil
}

// doWrapped executes a client-scoped request, hands the embedded snapshot to
// the update hook and returns the envelope.
func doWrapped[T any](c *Client, req *resty.Request, method, path string) (*models.ClientWrapped[T], error) {
	var envelope models.ClientWrapped[T]
	if err := c.do(req, method, path, &envelope); err != nil {
		return nil, err
	}

	c.dispatchClient(req.Context(), envelope.Client)
	return &envelope, nil
}
