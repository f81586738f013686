// Package credentials persists the Pocket access credential obtained at the end
// of the authorization flow.
//
// The service keeps a single global credential slot. Every successful exchange
// overwrites it in place; there is no history and no compare-and-swap, so two
// concurrent exchanges race and the last writer wins.
package credentials

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Credential is the durable result of a successful token exchange.
type Credential struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// Encode serialises a credential into the blob stored in the slot.
func Encode(c *Credential) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: nil credential", ErrEncode)
	}
	if c.AccessToken == "" {
		return "", fmt.Errorf("%w: empty access token", ErrEncode)
	}
	if !utf8.ValidString(c.AccessToken) || !utf8.ValidString(c.Username) {
		return "", fmt.Errorf("%w: credential is not valid UTF-8", ErrEncode)
	}

	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return string(b), nil
}

// Decode is the inverse of Encode.
func Decode(blob string) (*Credential, error) {
	var c Credential
	if err := json.Unmarshal([]byte(blob), &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &c, nil
}
