// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-clerk-fapi/models"
)

// SignInParams selects a first-factor strategy and its credentials.
type SignInParams struct {
	// Strategy is password, email_code or ticket.
	Strategy   string
	Identifier string
	Password   string
	Ticket     string
}

// SignIn runs a sign-in through the raw Frontend API client and returns the
// session it created. Every response embeds the client, so the Clerk state
// follows the flow without a reload. prompt is only consulted by email_code.
func (a *App) SignIn(ctx context.Context, p SignInParams, prompt Prompter) (*models.Session, error) {
	f := a.Clerk.GetFapiClient()

	var (
		resp *models.ClientWrapped[*models.SignIn]
		err  error
	)
	switch p.Strategy {
	case models.StrategyPassword:
		resp, err = f.CreateSignIn(ctx, models.SignInParams{
			Strategy:   models.StrategyPassword,
			Identifier: p.Identifier,
			Password:   p.Password,
		})

	case models.StrategyTicket:
		resp, err = f.CreateSignIn(ctx, models.SignInParams{
			Strategy: models.StrategyTicket,
			Ticket:   p.Ticket,
		})

	case models.StrategyEmailCode:
		if prompt == nil {
			return nil, ErrPromptRequired
		}
		resp, err = a.signInWithEmailCode(ctx, p.Identifier, prompt)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, p.Strategy)
	}
	if err != nil {
		return nil, err
	}

	si := resp.Response
	if si == nil || si.Status != models.SignInStatusComplete || si.CreatedSessionID == nil {
		status := ""
		if si != nil {
			status = si.Status
		}
		return nil, fmt.Errorf("%w: status %q", ErrSignInIncomplete, status)
	}

	a.logger.Info().
		Str("func", "App.SignIn").
		Str("strategy", p.Strategy).
		Str("session_id", *si.CreatedSessionID).
		Msg("signed in")

	if sess := a.Clerk.Client().SessionByID(*si.CreatedSessionID); sess != nil {
		return sess, nil
	}
	return &models.Session{ID: *si.CreatedSessionID, Status: models.SessionStatusActive}, nil
}

func (a *App) signInWithEmailCode(ctx context.Context, identifier string, prompt Prompter) (*models.ClientWrapped[*models.SignIn], error) {
	f := a.Clerk.GetFapiClient()

	resp, err := f.CreateSignIn(ctx, models.SignInParams{Identifier: identifier})
	if err != nil {
		return nil, err
	}
	if resp.Response == nil {
		return nil, fmt.Errorf("%w: empty sign-in", ErrSignInIncomplete)
	}
	si := resp.Response
	if si.Status == models.SignInStatusComplete {
		return resp, nil
	}

	var factor *models.Factor
	for i := range si.SupportedFirstFactors {
		if si.SupportedFirstFactors[i].Strategy == models.StrategyEmailCode {
			factor = &si.SupportedFirstFactors[i]
			break
		}
	}
	if factor == nil {
		return nil, fmt.Errorf("%w: email_code is not offered for %s", ErrUnsupportedStrategy, identifier)
	}

	if _, err = f.PrepareSignInFactorOne(ctx, si.ID, *factor); err != nil {
		return nil, err
	}

	code, err := prompt.Prompt(ctx, "Code sent to "+factor.SafeIdentifier)
	if err != nil {
		return nil, fmt.Errorf("read code: %w", err)
	}

	return f.AttemptSignInFactorOne(ctx, si.ID, models.AttemptFactorParams{
		Strategy: models.StrategyEmailCode,
		Code:     strings.TrimSpace(code),
	})
}
