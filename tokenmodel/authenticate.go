package tokenmodel

// AuthenticateRequest is the body of POST /authenticate.
type AuthenticateRequest struct {
	// RedirectURI is where Pocket sends the user after they grant access.
	// Required: Yes
	// Example: "http://example.com" or "pocketapp1234:authorizationFinished"
	// Validation: Non-empty only; Pocket decides whether the URI is acceptable
	RedirectURI string `json:"redirect_uri" validate:"required"`
}

// AuthenticateResponse is returned when Pocket issued a request token.
type AuthenticateResponse struct {
	Success bool `json:"success"`

	// RequestToken is the value Pocket returned, unmodified.
	// Example: "dcba4321-dcba-4321-dcba-4321dc"
	// Usage: Sent to the user's browser for the authorize step, then back to /save-access-token
	// Lifespan: Short-lived and single use, by Pocket's policy
	RequestToken string `json:"request_token"`
}
