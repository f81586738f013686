package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/jrsteele09/pocket-auth-server/auth"
	"github.com/jrsteele09/pocket-auth-server/tokenmodel"
	"github.com/rs/zerolog"
)

const (
	contentTypeJSON = "application/json; charset=utf-8"
	maxBodyBytes    = 1 << 20
)

// AuthenticateHandler issues a Pocket request token for the posted redirect URI.
// Every failure is an empty 500.
func (s *Server) AuthenticateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		var req tokenmodel.AuthenticateRequest
		if err := s.decodeRequest(w, r, &req); err != nil {
			logger.Error().Err(err).Msg("Invalid authenticate request")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		logger.Info().Str("redirect_uri", req.RedirectURI).Msg("Received authenticate request")

		token, err := s.tokens.ObtainRequestToken(r.Context(), req.RedirectURI)
		if err != nil {
			logger.Error().Err(err).Msg("Error obtaining request token")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		logger.Info().Msg("Sending request token")
		writeJSON(w, http.StatusOK, tokenmodel.AuthenticateResponse{
			Success:      true,
			RequestToken: token.Code,
		})
	}
}

// SaveAccessTokenHandler exchanges the posted request token and stores the
// resulting access token.
func (s *Server) SaveAccessTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		var req tokenmodel.SaveAccessTokenRequest
		if err := s.decodeRequest(w, r, &req); err != nil {
			logger.Error().Err(err).Msg("Invalid save access token request")
			writeJSON(w, http.StatusInternalServerError, tokenmodel.SaveAccessTokenResponse{
				Error: tokenmodel.ErrorInvalidTokenRequest,
			})
			return
		}
		logger.Info().Msg("Received save access token request")

		credential, err := s.tokens.ExchangeAndPersist(r.Context(), req.RequestToken)
		switch {
		case err == nil:
			logger.Info().Str("username", credential.Username).Msg("Pocket access token saved")
			writeJSON(w, http.StatusOK, tokenmodel.SaveAccessTokenResponse{
				Success:             true,
				Message:             tokenmodel.MessageAccessTokenSaved,
				AccessTokenResponse: tokenmodel.NewAccessTokenResponse(credential),
			})

		case errors.Is(err, auth.ErrPersistenceFailed):
			logger.Error().Err(err).Msg(tokenmodel.ErrorStoreFailed)
			writeJSON(w, http.StatusInternalServerError, tokenmodel.SaveAccessTokenResponse{
				Error:               tokenmodel.ErrorStoreFailed,
				AccessTokenResponse: tokenmodel.NewAccessTokenResponse(credential),
			})

		case errors.Is(err, auth.ErrValidation):
			logger.Error().Err(err).Msg("Invalid save access token request")
			writeJSON(w, http.StatusInternalServerError, tokenmodel.SaveAccessTokenResponse{
				Error: tokenmodel.ErrorInvalidTokenRequest,
			})

		default:
			logger.Error().Err(err).Msg(tokenmodel.ErrorConversionFailed)
			writeJSON(w, http.StatusInternalServerError, tokenmodel.SaveAccessTokenResponse{
				Error: tokenmodel.ErrorConversionFailed,
			})
		}
	}
}

// HealthHandler reports whether the credential store answers.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.health.Ping(r.Context()); err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// decodeRequest reads a JSON body into dst and applies its validate tags.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return s.validator.ValidateStruct(dst)
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
