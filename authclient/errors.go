package authclient

import (
	"errors"
	"fmt"
)

var (
	ErrAuthorizationDenied = errors.New("authorization denied")
	ErrMissingCode         = errors.New("missing authorization code")
	ErrStateMismatch       = errors.New("state parameter mismatch")
	ErrMissingVerifier     = errors.New("missing code verifier")
	ErrTokenExchangeFailed = errors.New("token exchange failed")
)

// TokenExchangeError is returned when the token endpoint rejects the code
// exchange. Code carries the server-provided OAuth2 error code
// (e.g. "invalid_grant").
type TokenExchangeError struct {
	Code        string
	Description string
	StatusCode  int
}

func (e *TokenExchangeError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("token exchange failed: %s - %s", e.Code, e.Description)
	}
	return fmt.Sprintf("token exchange failed: %s", e.Code)
}

func (e *TokenExchangeError) Unwrap() error {
	return ErrTokenExchangeFailed
}
