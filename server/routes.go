package server

import "net/http"

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("POST "+RouteAuthenticate, ChainMiddleware(s.AuthenticateHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteSaveAccessToken, ChainMiddleware(s.SaveAccessTokenHandler(), s.APIMiddleware()...))

	// CORS preflight; CorsMiddleware answers these without reaching the handler
	s.RegisterRouteHandler("OPTIONS "+RouteAuthenticate, ChainMiddleware(preflightHandler, s.APIMiddleware()...))
	s.RegisterRouteHandler("OPTIONS "+RouteSaveAccessToken, ChainMiddleware(preflightHandler, s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteHealth, ChainMiddleware(s.HealthHandler(), s.RecoverMiddleware))
}

func preflightHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
