package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/pocket-auth-server/credentials"
	"github.com/jrsteele09/pocket-auth-server/pocket"
	"github.com/rs/zerolog"
)

// TokenService runs the two legs of the Pocket authorization flow: issuing a
// request token, then exchanging it for an access token that is persisted.
//
// Each call is attempted exactly once against Pocket and the store. Calls are
// not cancelable once issued: the caller's context supplies values only.
type TokenService struct {
	authorizer pocket.Authorizer
	repo       credentials.Repo
	validator  *Validator
}

func NewTokenService(authorizer pocket.Authorizer, repo credentials.Repo) (*TokenService, error) {
	if authorizer == nil {
		return nil, errors.New("missing pocket authorizer")
	}
	if repo == nil {
		return nil, errors.New("missing credential repo")
	}
	return &TokenService{
		authorizer: authorizer,
		repo:       repo,
		validator:  NewValidator(),
	}, nil
}

// ObtainRequestToken asks Pocket for a request token bound to redirectURI and
// returns it untouched. The store is never accessed.
func (s *TokenService) ObtainRequestToken(ctx context.Context, redirectURI string) (*pocket.RequestToken, error) {
	if err := s.validator.ValidateRedirectURI(redirectURI); err != nil {
		return nil, &Error{Op: OpObtainRequestToken, Kind: ErrValidation, Err: err}
	}

	token, err := s.authorizer.ObtainRequestToken(context.WithoutCancel(ctx), redirectURI)
	if err != nil {
		return nil, &Error{Op: OpObtainRequestToken, Kind: ErrUpstreamFailure, Err: err}
	}
	if token == nil {
		return nil, &Error{Op: OpObtainRequestToken, Kind: ErrUpstreamFailure, Err: pocket.ErrMalformedResponse}
	}
	return token, nil
}

// ExchangeAndPersist converts requestToken into an access credential and writes
// it to the credential slot, replacing whatever was there.
//
// A failed exchange returns ErrExchangeFailed and nothing is written. A failed
// write returns ErrPersistenceFailed together with the credential, since the
// exchange itself succeeded and the token cannot be exchanged again.
func (s *TokenService) ExchangeAndPersist(ctx context.Context, requestToken string) (*credentials.Credential, error) {
	logger := zerolog.Ctx(ctx)
	ctx = context.WithoutCancel(ctx)

	state := StateStart
	transition := func(next ExchangeState) {
		event := logger.Debug()
		if next.Terminal() {
			event = logger.Info()
		}
		event.Stringer("from", state).Stringer("to", next).Msg("access token exchange")
		state = next
	}

	if err := s.validator.ValidateRequestToken(requestToken); err != nil {
		return nil, &Error{Op: OpExchangeAndPersist, Kind: ErrValidation, State: state, Err: err}
	}

	transition(StateExchanging)
	credential, err := s.authorizer.ExchangeRequestToken(ctx, requestToken)
	if err == nil && credential == nil {
		err = pocket.ErrMalformedResponse
	}
	if err != nil {
		transition(StateExchangeFailed)
		return nil, &Error{Op: OpExchangeAndPersist, Kind: ErrExchangeFailed, State: state, Err: err}
	}
	transition(StateExchanged)

	transition(StatePersisting)
	if err := s.repo.Upsert(ctx, credential); err != nil {
		transition(StatePersistFailed)
		return credential, &Error{Op: OpExchangeAndPersist, Kind: ErrPersistenceFailed, State: state, Err: fmt.Errorf("store credential for %s: %w", credential.Username, err)}
	}
	transition(StatePersisted)

	return credential, nil
}
