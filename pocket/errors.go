package pocket

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport means the request never produced an HTTP response.
	ErrTransport = errors.New("pocket transport error")
	// ErrMalformedResponse means Pocket answered 200 with an unusable body.
	ErrMalformedResponse = errors.New("pocket malformed response")
)

// APIError is a non-2xx answer from Pocket. Pocket reports the reason in the
// X-Error-Code and X-Error response headers.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" && e.Message == "" {
		return fmt.Sprintf("pocket api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("pocket api error: status %d, code %s: %s", e.StatusCode, e.Code, e.Message)
}
