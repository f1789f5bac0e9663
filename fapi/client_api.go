// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fapi

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

// GetEnvironment fetches the instance configuration. The response is not
// wrapped in an envelope.
func (c *Client) GetEnvironment(ctx context.Context) (*models.Environment, error) {
	var env models.Environment
	if err := c.do(c.request(ctx), http.MethodGet, "/environment", &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// GetClient fetches the current client. A null response is returned as an
// empty client, which is what a device without any session looks like.
func (c *Client) GetClient(ctx context.Context) (*models.ClientWrapped[*models.Client], error) {
	return c.clientScoped(ctx, http.MethodGet)
}

// CreateClient starts a fresh client, replacing any previous one.
func (c *Client) CreateClient(ctx context.Context) (*models.ClientWrapped[*models.Client], error) {
	return c.clientScoped(ctx, http.MethodPost)
}

// clientScoped handles /client endpoints, whose payload is the client itself.
func (c *Client) clientScoped(ctx context.Context, method string) (*models.ClientWrapped[*models.Client], error) {
	var envelope models.ClientWrapped[*models.Client]
	if err := c.do(c.request(ctx), method, "/client", &envelope); err != nil {
		return nil, err
	}

	if envelope.Response == nil {
		envelope.Response = envelope.Client
	}
	if envelope.Response == nil {
		envelope.Response = &models.Client{}
	}
	envelope.Client = envelope.Response

	c.dispatchClient(ctx, envelope.Client)
	return &envelope, nil
}

// DeleteClient ends every session of the client and deletes it.
func (c *Client) DeleteClient(ctx context.Context) (*models.ClientWrapped[*models.Client], error) {
	return doWrapped[*models.Client](c, c.request(ctx), http.MethodDelete, "/client")
}
