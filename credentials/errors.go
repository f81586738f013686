package credentials

import (
	"errors"
	"fmt"

	apperrors "github.com/jrsteele09/pocket-auth-server/internal/errors"
)

var (
	// ErrEncode means the credential could not be serialised for storage.
	ErrEncode = errors.New("credential encode failed")
	// ErrDecode means the stored blob is not a credential.
	ErrDecode = errors.New("credential decode failed")
	// ErrStoreUnavailable means the key-value store rejected or could not serve the call.
	ErrStoreUnavailable = errors.New("credential store unavailable")
	// ErrNotFound means the slot holds no credential yet.
	ErrNotFound = fmt.Errorf("credential %w", apperrors.ErrNotFound)
)
