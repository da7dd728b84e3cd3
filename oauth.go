package ondilo

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// oauthConfig builds the x/oauth2 configuration for the client's host.
// Client credentials go in the POST body (the Ondilo token endpoint does not
// accept HTTP Basic auth).
func (c *Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.config.ClientID,
		ClientSecret: c.config.ClientSecret,
		RedirectURL:  c.config.RedirectURI,
		Scopes:       c.config.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.host + authorizePath,
			TokenURL:  c.host + tokenPath,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// httpContext routes x/oauth2's token-endpoint calls through the client's
// HTTP client.
func (c *Client) httpContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// AuthorizationURL returns the URL to redirect the user to for the
// authorization code grant flow. A fresh anti-forgery state parameter is
// generated on every call and remembered for validation of the callback.
func (c *Client) AuthorizationURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = uuid.NewString()
	return c.oauthConfig().AuthCodeURL(c.state)
}

// ExchangeCode exchanges an authorization code for a token set. On success
// the token set is stored on the client and returned.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	if code == "" {
		return nil, ErrMissingAuthorizationCode
	}

	tok, err := c.oauthConfig().Exchange(c.httpContext(ctx), code)
	if err != nil {
		return nil, authError(err)
	}

	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()

	return cloneToken(tok), nil
}

// ExchangeAuthorizationResponse extracts the authorization code from the
// full redirect callback URL and exchanges it for a token set. A provider
// error embedded in the callback surfaces as *AuthError; a state parameter
// that does not match the one issued by AuthorizationURL fails with
// ErrStateMismatch.
func (c *Client) ExchangeAuthorizationResponse(ctx context.Context, authorizationResponse string) (*oauth2.Token, error) {
	if authorizationResponse == "" {
		return nil, ErrMissingAuthorizationCode
	}

	u, err := url.Parse(authorizationResponse)
	if err != nil {
		return nil, fmt.Errorf("ondilo: invalid authorization response URL: %w", err)
	}
	q := u.Query()

	if errCode := q.Get("error"); errCode != "" {
		return nil, &AuthError{Code: errCode, Description: q.Get("error_description")}
	}

	c.mu.Lock()
	state := c.state
	c.mu.Unlock()
	if state != "" && q.Get("state") != state {
		return nil, ErrStateMismatch
	}

	code := q.Get("code")
	if code == "" {
		return nil, ErrMissingAuthorizationCode
	}

	return c.ExchangeCode(ctx, code)
}

// RefreshToken exchanges the stored refresh token for a new token set. The
// stored token set is replaced and the TokenUpdater, if configured, is
// invoked with the new token set before RefreshToken returns.
//
// A rejection by the provider means the grant is gone; the caller must
// restart the flow from AuthorizationURL.
func (c *Client) RefreshToken(ctx context.Context) (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token == nil {
		return nil, ErrNotAuthenticated
	}
	if c.token.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	// Seeding the token source with only the refresh token forces an
	// immediate grant_type=refresh_token exchange.
	src := c.oauthConfig().TokenSource(c.httpContext(ctx), &oauth2.Token{
		RefreshToken: c.token.RefreshToken,
	})
	tok, err := src.Token()
	if err != nil {
		return nil, authError(err)
	}

	// Ondilo does not rotate refresh tokens on every exchange; keep the
	// old one when the response omits it.
	if tok.RefreshToken == "" {
		tok.RefreshToken = c.token.RefreshToken
	}
	c.token = tok

	if c.tokenUpdater != nil {
		c.tokenUpdater(cloneToken(tok))
	}

	return cloneToken(tok), nil
}

// authError maps a token-endpoint failure to *AuthError where the provider
// rejected the grant, and wraps transport-level failures otherwise.
func authError(err error) error {
	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		ae := &AuthError{
			Code:        re.ErrorCode,
			Description: re.ErrorDescription,
		}
		if re.Response != nil {
			ae.StatusCode = re.Response.StatusCode
		}
		if ae.Code == "" && len(re.Body) > 0 {
			ae.Description = string(re.Body)
		}
		return ae
	}
	return fmt.Errorf("ondilo: token request failed: %w", err)
}
