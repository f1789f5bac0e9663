package client

import "errors"

var (
	ErrUnknownStore        = errors.New("unknown store kind")
	ErrUnsupportedStrategy = errors.New("unsupported sign-in strategy")
	ErrSignInIncomplete    = errors.New("sign-in did not complete")
	ErrPromptRequired      = errors.New("a prompt is required for this strategy")
)
