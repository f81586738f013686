package tokenmodel

import "github.com/jrsteele09/pocket-auth-server/credentials"

const (
	MessageAccessTokenSaved  = "Pocket access token saved successfully."
	ErrorConversionFailed    = "Access Token Conversion Failed"
	ErrorStoreFailed         = "Failed to store access token in Redis"
	ErrorInvalidTokenRequest = "Invalid request"
)

// SaveAccessTokenRequest is the body of POST /save-access-token.
type SaveAccessTokenRequest struct {
	// RequestToken is the token obtained from /authenticate, after the user
	// authorized it on Pocket.
	// Required: Yes
	// Example: "dcba4321-dcba-4321-dcba-4321dc"
	// Usage: Exchanged once for an access token, then becomes invalid
	RequestToken string `json:"request_token" validate:"required"`
}

// AccessTokenResponse echoes the credential Pocket issued.
type AccessTokenResponse struct {
	// AccessToken authorizes calls to the Pocket API on behalf of Username.
	// Security: Long-lived; treat as a secret
	AccessToken string `json:"access_token"`
	Username    string `json:"username"`
}

// SaveAccessTokenResponse is used for both outcomes of /save-access-token.
// On failure AccessTokenResponse still carries whatever credential was
// obtained, so a failed write can be recovered by hand.
type SaveAccessTokenResponse struct {
	Success             bool                 `json:"success"`
	Message             string               `json:"message,omitempty"`
	Error               string               `json:"error,omitempty"`
	AccessTokenResponse *AccessTokenResponse `json:"access_token_response"`
}

// NewAccessTokenResponse returns nil for a nil credential.
func NewAccessTokenResponse(c *credentials.Credential) *AccessTokenResponse {
	if c == nil {
		return nil
	}
	return &AccessTokenResponse{
		AccessToken: c.AccessToken,
		Username:    c.Username,
	}
}
