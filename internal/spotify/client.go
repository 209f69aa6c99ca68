// Package spotify is a minimal client for the Spotify Web API covering
// authorization, profile lookup and track search.
package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resonate/internal/cache"
	"resonate/internal/models"
)

const (
	defaultAccountsURL = "https://accounts.spotify.com"
	defaultAPIURL      = "https://api.spotify.com"

	// Scopes requested during the authorization code flow.
	authScopes = "user-read-private user-read-email user-top-read playlist-read-private"

	searchLimit = 5
)

// Config holds the Spotify application credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// AccountsURL and APIURL override the Spotify endpoints, used in tests.
	AccountsURL string
	APIURL      string
}

// Client talks to the Spotify accounts service and Web API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a Spotify client with sane HTTP timeouts.
func NewClient(cfg Config) *Client {
	if cfg.AccountsURL == "" {
		cfg.AccountsURL = defaultAccountsURL
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// TokenResponse is the accounts service token payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// Profile is the subset of the Spotify user profile we expose.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Country     string `json:"country"`
	Product     string `json:"product"`
}

// AuthorizeURL builds the authorization redirect for the code flow.
func (c *Client) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.cfg.ClientID)
	q.Set("scope", authScopes)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("state", state)
	return c.cfg.AccountsURL + "/authorize?" + q.Encode()
}

func (c *Client) basicAuth() string {
	creds := c.cfg.ClientID + ":" + c.cfg.ClientSecret
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(creds))
}

func (c *Client) postToken(ctx context.Context, form url.Values) (*TokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.AccountsURL+"/api/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.basicAuth())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewUpstreamError("spotify token request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, models.NewUpstreamError("spotify token request failed",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	var tok TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, models.NewUpstreamError("spotify token response malformed", err)
	}
	return &tok, nil
}

// ExchangeCode trades an authorization code for user tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	return c.postToken(ctx, form)
}

// ClientToken returns a client-credentials access token, cached in Redis for
// slightly less than its one hour validity.
func (c *Client) ClientToken(ctx context.Context) (string, error) {
	var cached string
	if cache.GetJSON(ctx, cache.SpotifyTokenKey, &cached) && cached != "" {
		return cached, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	tok, err := c.postToken(ctx, form)
	if err != nil {
		return "", err
	}

	cache.SetJSON(ctx, cache.SpotifyTokenKey, tok.AccessToken, cache.SpotifyTokenTTL)
	return tok.AccessToken, nil
}

func (c *Client) getJSON(ctx context.Context, path, accessToken string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.NewUpstreamError("spotify request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return models.NewUpstreamError("spotify request failed",
			fmt.Errorf("status %d: %s", resp.StatusCode, body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return models.NewUpstreamError("spotify response malformed", err)
	}
	return nil
}

// CurrentProfile fetches the profile of the user the access token belongs to.
func (c *Client) CurrentProfile(ctx context.Context, accessToken string) (*Profile, error) {
	var p Profile
	if err := c.getJSON(ctx, "/v1/me", accessToken, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchTracks searches the catalogue for the top matching tracks. The
// provider's response body is returned untouched so callers see the full
// result objects.
func (c *Client) SearchTracks(ctx context.Context, query string) (json.RawMessage, error) {
	token, err := c.ClientToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "track")
	q.Set("limit", fmt.Sprintf("%d", searchLimit))

	var raw json.RawMessage
	if err := c.getJSON(ctx, "/v1/search?"+q.Encode(), token, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}
