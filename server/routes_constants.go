package server

// Route path constants
const (
	// Pocket authorization flow
	RouteAuthenticate    = "/authenticate"
	RouteSaveAccessToken = "/save-access-token"

	// Operations
	RouteHealth = "/healthz"
)
