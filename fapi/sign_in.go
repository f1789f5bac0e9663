package fapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

// CreateSignIn starts a sign-in attempt on the client.
func (c *Client) CreateSignIn(ctx context.Context, params models.SignInParams) (*models.ClientWrapped[*models.SignIn], error) {
	form := formData(map[string]string{
		"strategy":   params.Strategy,
		"identifier": params.Identifier,
		"password":   params.Password,
		"ticket":     params.Ticket,
	})
	req := c.request(ctx).SetFormData(form)
	return doWrapped[*models.SignIn](c, req, http.MethodPost, "/client/sign_ins")
}

// PrepareSignInFactorOne asks the server to send the first factor challenge,
// e.g. an email code.
func (c *Client) PrepareSignInFactorOne(ctx context.Context, signInID string, factor models.Factor) (*models.ClientWrapped[*models.SignIn], error) {
	if signInID == "" {
		return nil, fmt.Errorf("%w: sign in id", ErrMissingArgument)
	}

	form := formData(map[string]string{
		"strategy":         factor.Strategy,
		"email_address_id": factor.EmailAddressID,
	})
	req := c.request(ctx).
		SetPathParam("sign_in_id", signInID).
		SetFormData(form)
	return doWrapped[*models.SignIn](c, req, http.MethodPost, "/client/sign_ins/{sign_in_id}/prepare_first_factor")
}

// AttemptSignInFactorOne answers the first factor challenge. On success the
// returned client carries the new session.
func (c *Client) AttemptSignInFactorOne(ctx context.Context, signInID string, params models.AttemptFactorParams) (*models.ClientWrapped[*models.SignIn], error) {
	if signInID == "" {
		return nil, fmt.Errorf("%w: sign in id", ErrMissingArgument)
	}

	form := formData(map[string]string{
		"strategy": params.Strategy,
		"code":     params.Code,
		"password": params.Password,
	})
	req := c.request(ctx).
		SetPathParam("sign_in_id", signInID).
		SetFormData(form)
	return doWrapped[*models.SignIn](c, req, http.MethodPost, "/client/sign_ins/{sign_in_id}/attempt_first_factor")
}

// CreateSignUp starts a sign-up attempt on the client.
func (c *Client) CreateSignUp(ctx context.Context, params models.SignUpParams) (*models.ClientWrapped[*models.SignUp], error) {
	form := formData(map[string]string{
		"email_address": params.EmailAddress,
		"password":      params.Password,
		"first_name":    params.FirstName,
		"last_name":     params.LastName,
		"username":      params.Username,
		"ticket":        params.Ticket,
		"strategy":      params.Strategy,
	})
	req := c.request(ctx).SetFormData(form)
	return doWrapped[*models.SignUp](c, req, http.MethodPost, "/client/sign_ups")
}

// formData drops empty fields so that the server applies its defaults.
func formData(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
