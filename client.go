package ondilo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

const (
	// DefaultHost is the root of the Ondilo interop service. The customer
	// API and the OAuth2 endpoints both live under it.
	DefaultHost = "https://interop.ondilo.com"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultClientID is the shared client ID Ondilo issues for the
	// customer API.
	DefaultClientID = "customer_api"

	// DefaultClientSecret is empty; the customer API client has no secret.
	DefaultClientSecret = ""

	// DefaultScope is the only scope the customer API supports.
	DefaultScope = "api"

	apiPrefix     = "/api/customer/v1"
	authorizePath = "/oauth2/authorize"
	tokenPath     = "/oauth2/token"
)

// Config holds the OAuth2 application settings for a client.
// It is read once at construction and never mutated afterwards.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
}

// TokenUpdater is invoked synchronously with the new token set whenever a
// refresh succeeds. It is the notification surface for persisting tokens
// externally. The callback must not call back into the client.
type TokenUpdater func(*oauth2.Token)

// Client is an Ondilo customer API client.
//
// A client holds at most one live token set. Concurrent calls are safe:
// token state is guarded by a mutex so only one refresh is in flight at a
// time.
type Client struct {
	host         string
	config       Config
	httpClient   *http.Client
	logger       *slog.Logger
	tokenUpdater TokenUpdater
	tokenStore   TokenStore

	mu    sync.Mutex
	token *oauth2.Token
	state string
}

// Option configures a Client.
type Option func(*Client)

// WithHost sets a custom host for both the API and the OAuth2 endpoints.
func WithHost(host string) Option {
	return func(c *Client) {
		for len(host) > 0 && host[len(host)-1] == '/' {
			host = host[:len(host)-1]
		}
		c.host = host
	}
}

// WithHTTPClient sets a custom HTTP client. It is used for resource calls
// and for token-endpoint calls alike.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP request timeout.
// This option can be applied in any order relative to other options.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithToken resumes a session from a previously saved token set.
func WithToken(token *oauth2.Token) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTokenUpdater sets the callback invoked with the new token set after
// every successful refresh.
func WithTokenUpdater(updater TokenUpdater) Option {
	return func(c *Client) {
		c.tokenUpdater = updater
	}
}

// WithTokenStore wires a TokenStore into the client: a saved token is loaded
// at construction (unless WithToken already supplied one) and every refreshed
// token is persisted before any WithTokenUpdater callback runs.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) {
		c.tokenStore = store
	}
}

// NewClient creates a new Ondilo customer API client. cfg may be nil, in
// which case the shared customer API credentials are used. Zero-value fields
// fall back to the same defaults.
func NewClient(cfg *Config, opts ...Option) *Client {
	c := &Client{
		host: DefaultHost,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	if cfg != nil {
		c.config = *cfg
		c.config.Scopes = append([]string(nil), cfg.Scopes...)
	}
	if c.config.ClientID == "" {
		c.config.ClientID = DefaultClientID
	}
	if len(c.config.Scopes) == 0 {
		c.config.Scopes = []string{DefaultScope}
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.tokenStore != nil {
		if c.token == nil {
			if tok, err := c.tokenStore.LoadToken(context.Background()); err == nil {
				c.token = tok
			}
		}
		c.tokenUpdater = persistingUpdater(c.tokenStore, c.tokenUpdater, c.logger)
	}

	return c
}

// persistingUpdater saves each refreshed token to the store, then hands it
// to the user's updater. Save failures are logged, not fatal: the refreshed
// token is still live in memory.
func persistingUpdater(store TokenStore, next TokenUpdater, logger *slog.Logger) TokenUpdater {
	return func(tok *oauth2.Token) {
		if err := store.SaveToken(context.Background(), tok); err != nil && logger != nil {
			logger.LogAttrs(context.Background(), slog.LevelWarn, "token_store_save_failed",
				slog.String("error", err.Error()),
			)
		}
		if next != nil {
			next(tok)
		}
	}
}

// Token returns a copy of the current token set, or nil if the client is
// not authenticated.
func (c *Client) Token() *oauth2.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneToken(c.token)
}

// SetToken replaces the current token set.
func (c *Client) SetToken(token *oauth2.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// IsAuthenticated returns true if a token set is present and its access
// token has not expired.
func (c *Client) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token.Valid()
}

// do performs an authenticated request against the customer API and returns
// the response body.
//
// Auth failure is handled with at most one refresh per invocation: an access
// token already expired locally is refreshed before the first attempt;
// otherwise a 401 response triggers one refresh and one identical retry.
// A second auth failure propagates as *APIError, never a second refresh.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	tok := c.Token()
	if tok == nil {
		return nil, ErrNotAuthenticated
	}

	refreshed := false
	if !tok.Valid() && tok.RefreshToken != "" {
		var err error
		if tok, err = c.RefreshToken(ctx); err != nil {
			return nil, err
		}
		refreshed = true
	}

	data, err := c.roundTrip(ctx, method, path, query, body, tok.AccessToken)
	if IsUnauthorized(err) && !refreshed {
		if tok, err = c.RefreshToken(ctx); err != nil {
			return nil, err
		}
		data, err = c.roundTrip(ctx, method, path, query, body, tok.AccessToken)
	}
	return data, err
}

// roundTrip issues a single HTTP request. Non-2xx statuses become *APIError
// carrying the raw response body.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any, accessToken string) ([]byte, error) {
	u := c.host + apiPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ondilo: failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ondilo: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	c.logRequest(ctx, method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logResponse(ctx, method, path, 0, time.Since(start), err)
		return nil, fmt.Errorf("ondilo: request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ondilo: failed to read response body: %w", err)
	}

	c.logResponse(ctx, method, path, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

// get performs an authenticated GET request.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// put performs an authenticated PUT request.
func (c *Client) put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// cloneToken returns a shallow copy to prevent external mutation of the
// client's token state.
func cloneToken(tok *oauth2.Token) *oauth2.Token {
	if tok == nil {
		return nil
	}
	copied := *tok
	return &copied
}
