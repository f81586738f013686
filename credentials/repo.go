package credentials

import "context"

// Repo stores the current credential.
type Repo interface {
	// Upsert unconditionally replaces the stored credential.
	Upsert(ctx context.Context, credential *Credential) error
	// Get returns the stored credential or ErrNotFound.
	Get(ctx context.Context) (*Credential, error)
}

const (
	DefaultKey   = "access_token"
	DefaultField = "data"
)

// Slot addresses the hash field holding the credential.
type Slot struct {
	Key   string
	Field string
}

// DefaultSlot is the single global record the service writes.
var DefaultSlot = Slot{Key: DefaultKey, Field: DefaultField}
