package fakerepo

import (
	"context"
	"sync"

	"github.com/jrsteele09/pocket-auth-server/credentials"
)

var _ credentials.Repo = (*FakeCredentialRepo)(nil)

// FakeCredentialRepo is an in-memory single-slot repo. UpsertErr, when set, is
// returned from every Upsert without touching the slot.
type FakeCredentialRepo struct {
	credential *credentials.Credential
	upserts    int
	UpsertErr  error
	lock       sync.RWMutex
}

func NewFakeCredentialRepo() *FakeCredentialRepo {
	return &FakeCredentialRepo{}
}

func (r *FakeCredentialRepo) Upsert(_ context.Context, credential *credentials.Credential) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.upserts++
	if r.UpsertErr != nil {
		return r.UpsertErr
	}
	if _, err := credentials.Encode(credential); err != nil {
		return err
	}
	stored := *credential
	r.credential = &stored
	return nil
}

func (r *FakeCredentialRepo) Get(_ context.Context) (*credentials.Credential, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if r.credential == nil {
		return nil, credentials.ErrNotFound
	}
	stored := *r.credential
	return &stored, nil
}

// Upserts reports how many writes were attempted.
func (r *FakeCredentialRepo) Upserts() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.upserts
}
