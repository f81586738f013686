// Package pocket talks to the Pocket authentication API: it obtains request
// tokens and converts authorized request tokens into access tokens.
package pocket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jrsteele09/pocket-auth-server/credentials"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://getpocket.com"

	requestTokenPath = "/v3/oauth/request"
	authorizePath    = "/v3/oauth/authorize"
	userAuthorizeURL = "/auth/authorize"

	headerErrorCode = "X-Error-Code"
	headerError     = "X-Error"

	maxResponseBytes = 1 << 20
)

// Authorizer is the remote half of the flow.
type Authorizer interface {
	ObtainRequestToken(ctx context.Context, redirectURI string) (*RequestToken, error)
	ExchangeRequestToken(ctx context.Context, requestToken string) (*credentials.Credential, error)
}

// RequestToken identifies one authorization attempt. Pocket calls it "code".
type RequestToken struct {
	Code        string
	RedirectURI string
}

var _ Authorizer = (*Client)(nil)

// Client is safe for concurrent use.
type Client struct {
	consumerKey string
	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds each call to Pocket, including reading the body. It
// applies to the client given by WithHTTPClient regardless of option order;
// that client is copied, not modified.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

func NewClient(consumerKey string, opts ...ClientOption) *Client {
	c := &Client{
		consumerKey: consumerKey,
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{},
		timeout:     10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		httpClient := *c.httpClient
		httpClient.Timeout = c.timeout
		c.httpClient = &httpClient
	}
	return c
}

// ObtainRequestToken asks Pocket for a request token bound to redirectURI.
func (c *Client) ObtainRequestToken(ctx context.Context, redirectURI string) (*RequestToken, error) {
	body, err := c.post(ctx, requestTokenPath, map[string]string{
		"consumer_key": c.consumerKey,
		"redirect_uri": redirectURI,
	})
	if err != nil {
		return nil, err
	}

	code := gjson.GetBytes(body, "code")
	if code.Type != gjson.String || code.String() == "" {
		return nil, fmt.Errorf("%w: missing code", ErrMalformedResponse)
	}
	return &RequestToken{Code: code.String(), RedirectURI: redirectURI}, nil
}

// ExchangeRequestToken converts an authorized request token into an access token.
func (c *Client) ExchangeRequestToken(ctx context.Context, requestToken string) (*credentials.Credential, error) {
	body, err := c.post(ctx, authorizePath, map[string]string{
		"consumer_key": c.consumerKey,
		"code":         requestToken,
	})
	if err != nil {
		return nil, err
	}

	fields := gjson.GetManyBytes(body, "access_token", "username")
	if fields[0].Type != gjson.String || fields[0].String() == "" {
		return nil, fmt.Errorf("%w: missing access_token", ErrMalformedResponse)
	}
	return &credentials.Credential{
		AccessToken: fields[0].String(),
		Username:    fields[1].String(),
	}, nil
}

// AuthorizeURL is the page the end user visits to grant access.
func (c *Client) AuthorizeURL(requestToken, redirectURI string) string {
	q := url.Values{}
	q.Set("request_token", requestToken)
	q.Set("redirect_uri", redirectURI)
	return c.baseURL + userAuthorizeURL + "?" + q.Encode()
}

func (c *Client) post(ctx context.Context, path string, payload map[string]string) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s response: %w", ErrTransport, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       resp.Header.Get(headerErrorCode),
			Message:    resp.Header.Get(headerError),
		}
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json from %s", ErrMalformedResponse, path)
	}
	return body, nil
}
