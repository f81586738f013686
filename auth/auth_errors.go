package auth

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by TokenService matches exactly one of
// these with errors.Is.
var (
	// ErrValidation means caller input was missing; no remote call was made.
	ErrValidation = errors.New("validation error")
	// ErrUpstreamFailure means Pocket could not issue a request token.
	ErrUpstreamFailure = errors.New("upstream failure")
	// ErrExchangeFailed means Pocket did not convert the request token. Nothing was persisted.
	ErrExchangeFailed = errors.New("access token conversion failed")
	// ErrPersistenceFailed means the exchange succeeded but the credential was not stored.
	ErrPersistenceFailed = errors.New("access token persistence failed")
)

const (
	OpObtainRequestToken = "obtain_request_token"
	OpExchangeAndPersist = "exchange_and_persist"
)

// Error carries the failed operation, its kind, the state the exchange ended
// in and the underlying cause.
type Error struct {
	Op    string
	Kind  error
	State ExchangeState
	Err   error
}

func (e *Error) Error() string {
	if e.Op == OpExchangeAndPersist {
		return fmt.Sprintf("%s: %v (%s): %v", e.Op, e.Kind, e.State, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
