package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jrsteele09/pocket-auth-server/auth"
	"github.com/jrsteele09/pocket-auth-server/credentials"
	"github.com/jrsteele09/pocket-auth-server/internal/config"
	"github.com/jrsteele09/pocket-auth-server/pocket"
	"github.com/rs/zerolog/log"
)

// TokenService is the authorization workflow behind the HTTP endpoints.
type TokenService interface {
	ObtainRequestToken(ctx context.Context, redirectURI string) (*pocket.RequestToken, error)
	ExchangeAndPersist(ctx context.Context, requestToken string) (*credentials.Credential, error)
}

// HealthChecker reports whether the credential store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

var _ TokenService = (*auth.TokenService)(nil)

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	tokens    TokenService
	health    HealthChecker
	validator *auth.Validator
}

func New(config config.Config, tokens TokenService, health HealthChecker) (*Server, error) {
	if tokens == nil {
		return nil, errors.New("[Server New] missing token service")
	}
	if health == nil {
		return nil, errors.New("[Server New] missing health checker")
	}

	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		tokens:    tokens,
		health:    health,
		validator: auth.NewValidator(),
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			log.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route")
		} else {
			log.Info().Str("path", parts[0]).Msg("route")
		}
	}
}
