package strava

import (
	"errors"
	"fmt"
)

// ErrAuthorizationDenied is returned when the user declines the browser
// authorization. The current run cannot proceed.
var ErrAuthorizationDenied = errors.New("authorization denied by user")

// ErrTokenRefresh marks a rejected refresh grant. Recoverable: a full
// interactive reauthorization can still produce a usable token.
var ErrTokenRefresh = errors.New("token refresh rejected")

// AuthorizationFailedError carries the upstream error text reported on
// the interactive flow's callback.
type AuthorizationFailedError struct {
	Reason string
}

func (e *AuthorizationFailedError) Error() string {
	return "authorization failed: " + e.Reason
}

// TokenExchangeError marks a rejected authorization-code grant. This
// means broken client credentials, so there is no retry path.
type TokenExchangeError struct {
	Err error
}

func (e *TokenExchangeError) Error() string {
	return fmt.Sprintf("token exchange failed: %v", e.Err)
}

func (e *TokenExchangeError) Unwrap() error {
	return e.Err
}

// APIError is any non-authorization HTTP failure from the activities
// endpoint.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("strava api: status %d: %s", e.Status, e.Body)
}
