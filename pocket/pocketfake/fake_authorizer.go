package pocketfake

import (
	"context"
	"errors"
	"sync"

	"github.com/jrsteele09/pocket-auth-server/credentials"
	"github.com/jrsteele09/pocket-auth-server/pocket"
)

var _ pocket.Authorizer = (*FakeAuthorizer)(nil)

var ErrNotScripted = errors.New("fake authorizer: no result scripted")

// FakeAuthorizer returns scripted results and records how it was called.
type FakeAuthorizer struct {
	RequestToken string
	RequestErr   error
	Credential   *credentials.Credential
	ExchangeErr  error

	requestCalls     int
	exchangeCalls    int
	lastRedirectURI  string
	lastRequestToken string
	lock             sync.Mutex
}

func NewFakeAuthorizer() *FakeAuthorizer {
	return &FakeAuthorizer{}
}

func (f *FakeAuthorizer) ObtainRequestToken(_ context.Context, redirectURI string) (*pocket.RequestToken, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.requestCalls++
	f.lastRedirectURI = redirectURI
	if f.RequestErr != nil {
		return nil, f.RequestErr
	}
	if f.RequestToken == "" {
		return nil, ErrNotScripted
	}
	return &pocket.RequestToken{Code: f.RequestToken, RedirectURI: redirectURI}, nil
}

func (f *FakeAuthorizer) ExchangeRequestToken(_ context.Context, requestToken string) (*credentials.Credential, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.exchangeCalls++
	f.lastRequestToken = requestToken
	if f.ExchangeErr != nil {
		return nil, f.ExchangeErr
	}
	if f.Credential == nil {
		return nil, ErrNotScripted
	}
	c := *f.Credential
	return &c, nil
}

func (f *FakeAuthorizer) RequestCalls() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.requestCalls
}

func (f *FakeAuthorizer) ExchangeCalls() int {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.exchangeCalls
}

func (f *FakeAuthorizer) LastRedirectURI() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.lastRedirectURI
}

func (f *FakeAuthorizer) LastRequestToken() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.lastRequestToken
}
