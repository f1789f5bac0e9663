// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Prompter asks the user for a value during an interactive flow, such as
// the one-time code of an email_code sign-in.
type Prompter interface {
	Prompt(ctx context.Context, label string) (string, error)
}

// PromptFunc adapts a function to [Prompter].
type PromptFunc func(ctx context.Context, label string) (string, error)

func (f PromptFunc) Prompt(ctx context.Context, label string) (string, error) {
	return f(ctx, label)
}
