package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/pocket-auth-server/auth"
	"github.com/jrsteele09/pocket-auth-server/credentials"
	"github.com/jrsteele09/pocket-auth-server/internal/config"
	"github.com/jrsteele09/pocket-auth-server/pocket"
	"github.com/jrsteele09/pocket-auth-server/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

const testConsumerKey = "80908-test"

// pocketStub plays the Pocket OAuth endpoints
type pocketStub struct {
	requestStatus   int
	requestBody     string
	authorizeStatus int
	authorizeBody   string
	calls           atomic.Int32
}

func (p *pocketStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.calls.Add(1)
	switch r.URL.Path {
	case "/v3/oauth/request":
		w.WriteHeader(p.requestStatus)
		_, _ = w.Write([]byte(p.requestBody))
	case "/v3/oauth/authorize":
		if p.authorizeStatus != http.StatusOK {
			w.Header().Set("X-Error-Code", "158")
			w.Header().Set("X-Error", "User rejected code.")
		}
		w.WriteHeader(p.authorizeStatus)
		_, _ = w.Write([]byte(p.authorizeBody))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// testFixture holds all test dependencies
type testFixture struct {
	pocket *pocketStub
	redis  *miniredis.Miniredis
	server *server.Server
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	t.Setenv("POCKET_CONSUMER_KEY", testConsumerKey)
	t.Setenv("REDIS_URL", "redis://unused:6379")
	t.Setenv("ENV", "TEST")
	t.Setenv("ALLOWED_ORIGINS", "http://app.example")
	cfg, err := config.Load()
	require.NoError(t, err)

	stub := &pocketStub{
		requestStatus:   http.StatusOK,
		requestBody:     `{"code":"abc123","state":null}`,
		authorizeStatus: http.StatusOK,
		authorizeBody:   `{"access_token":"tok-xyz","username":"alice"}`,
	}
	pocketServer := httptest.NewServer(stub)
	t.Cleanup(pocketServer.Close)

	mr := miniredis.RunT(t)
	client, err := credentials.NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	repo := credentials.NewRedisRepo(client)

	tokens, err := auth.NewTokenService(pocket.NewClient(testConsumerKey, pocket.WithBaseURL(pocketServer.URL)), repo)
	require.NoError(t, err)

	s, err := server.New(cfg, tokens, repo)
	require.NoError(t, err)

	return &testFixture{pocket: stub, redis: mr, server: s}
}

func (f *testFixture) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthenticate(t *testing.T) {
	t.Run("returns the request token from pocket", func(t *testing.T) {
		f := setupTestFixture(t)

		rec := f.post(t, server.RouteAuthenticate, `{"redirect_uri":"http://example.com"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"success":true,"request_token":"abc123"}`, rec.Body.String())
		require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		require.Empty(t, f.redis.Keys(), "issuing a token never touches the store")
	})

	t.Run("pocket rejection is an empty 500", func(t *testing.T) {
		f := setupTestFixture(t)
		f.pocket.requestStatus = http.StatusForbidden
		f.pocket.requestBody = ""

		rec := f.post(t, server.RouteAuthenticate, `{"redirect_uri":"not a uri"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Empty(t, rec.Body.String())
		require.EqualValues(t, 1, f.pocket.calls.Load())
	})

	t.Run("malformed pocket payload is an empty 500", func(t *testing.T) {
		f := setupTestFixture(t)
		f.pocket.requestBody = `{"state":null}`

		rec := f.post(t, server.RouteAuthenticate, `{"redirect_uri":"http://example.com"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("empty redirect uri never reaches pocket", func(t *testing.T) {
		f := setupTestFixture(t)

		rec := f.post(t, server.RouteAuthenticate, `{"redirect_uri":""}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Empty(t, rec.Body.String())
		require.Zero(t, f.pocket.calls.Load())
	})

	t.Run("invalid json", func(t *testing.T) {
		f := setupTestFixture(t)

		rec := f.post(t, server.RouteAuthenticate, `{`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Zero(t, f.pocket.calls.Load())
	})
}

func TestSaveAccessToken(t *testing.T) {
	t.Run("saves the access token", func(t *testing.T) {
		f := setupTestFixture(t)

		rec := f.post(t, server.RouteSaveAccessToken, `{"request_token":"abc123"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{
			"success": true,
			"message": "Pocket access token saved successfully.",
			"access_token_response": {"access_token": "tok-xyz", "username": "alice"}
		}`, rec.Body.String())
		require.JSONEq(t, `{"access_token":"tok-xyz","username":"alice"}`, f.redis.HGet("access_token", "data"))
	})

	t.Run("store failure echoes the credential", func(t *testing.T) {
		f := setupTestFixture(t)
		f.redis.SetError("ERR store down")

		rec := f.post(t, server.RouteSaveAccessToken, `{"request_token":"abc123"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, false, body["success"])
		require.Equal(t, "Failed to store access token in Redis", body["error"])
		require.Equal(t, map[string]any{"access_token": "tok-xyz", "username": "alice"}, body["access_token_response"])
	})

	t.Run("rejected exchange writes nothing", func(t *testing.T) {
		f := setupTestFixture(t)
		f.pocket.authorizeStatus = http.StatusForbidden
		f.pocket.authorizeBody = ""

		rec := f.post(t, server.RouteSaveAccessToken, `{"request_token":"abc123"}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, false, body["success"])
		require.Equal(t, "Access Token Conversion Failed", body["error"])
		require.Contains(t, body, "access_token_response")
		require.Empty(t, f.redis.Keys())
	})

	t.Run("empty request token", func(t *testing.T) {
		f := setupTestFixture(t)

		rec := f.post(t, server.RouteSaveAccessToken, `{"request_token":""}`)
		require.Equal(t, http.StatusInternalServerError, rec.Code)

		body := decodeBody(t, rec)
		require.Equal(t, false, body["success"])
		require.Equal(t, "Invalid request", body["error"])
		require.Zero(t, f.pocket.calls.Load())
		require.Empty(t, f.redis.Keys())
	})

	t.Run("second save overwrites the first", func(t *testing.T) {
		f := setupTestFixture(t)

		require.Equal(t, http.StatusOK, f.post(t, server.RouteSaveAccessToken, `{"request_token":"first"}`).Code)
		f.pocket.authorizeBody = `{"access_token":"tok-second","username":"bob"}`
		require.Equal(t, http.StatusOK, f.post(t, server.RouteSaveAccessToken, `{"request_token":"second"}`).Code)

		require.JSONEq(t, `{"access_token":"tok-second","username":"bob"}`, f.redis.HGet("access_token", "data"))
	})
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	f := setupTestFixture(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteAuthenticate, nil)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCors(t *testing.T) {
	f := setupTestFixture(t)

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, server.RouteSaveAccessToken, nil)
		req.Header.Set("Origin", "http://app.example")
		rec := httptest.NewRecorder()
		f.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "http://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("unknown origin gets no cors headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, server.RouteAuthenticate, bytes.NewBufferString(`{"redirect_uri":"http://example.com"}`))
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		f.server.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestHealth(t *testing.T) {
	f := setupTestFixture(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteHealth, nil)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	f.redis.Close()
	rec = httptest.NewRecorder()
	f.server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, server.RouteHealth, nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNew_ListsRoutesInDev(t *testing.T) {
	var out bytes.Buffer
	previous := log.Logger
	log.Logger = zerolog.New(&out).Level(zerolog.InfoLevel)
	t.Cleanup(func() { log.Logger = previous })

	t.Setenv("POCKET_CONSUMER_KEY", testConsumerKey)
	t.Setenv("REDIS_URL", "redis://unused:6379")
	t.Setenv("ENV", "DEV")
	cfg, err := config.Load()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client, err := credentials.NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	repo := credentials.NewRedisRepo(client)
	tokens, err := auth.NewTokenService(pocket.NewClient(testConsumerKey), repo)
	require.NoError(t, err)

	_, err = server.New(cfg, tokens, repo)
	require.NoError(t, err)

	require.Contains(t, out.String(), `"level":"info"`)
	require.Contains(t, out.String(), `"path":"`+server.RouteAuthenticate+`"`)
	require.Contains(t, out.String(), `"path":"`+server.RouteSaveAccessToken+`"`)
}
