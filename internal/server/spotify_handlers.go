package server

import (
	"crypto/rand"
	"math/big"
	"time"

	"resonate/internal/models"

	"github.com/gofiber/fiber/v2"
)

const spotifyStateCookie = "spotify_auth_state"

const stateChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randomState generates the OAuth state token set before redirecting to the
// authorization endpoint.
func randomState(n int) string {
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(stateChars))))
		if err != nil {
			// crypto/rand failing is unrecoverable for this process
			panic(err)
		}
		b[i] = stateChars[idx.Int64()]
	}
	return string(b)
}

// SpotifyLogin handles GET /api/spotify/login. Sets the state cookie and
// redirects to the provider's authorization page.
func (s *Server) SpotifyLogin(c *fiber.Ctx) error {
	if !s.config.SpotifyConfigured() {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewUpstreamError("spotify is not configured", nil))
	}

	state := randomState(16)
	c.Cookie(&fiber.Cookie{
		Name:     spotifyStateCookie,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Redirect(s.spotifyClient.AuthorizeURL(state), fiber.StatusFound)
}

// SpotifyCallback handles GET /api/spotify/callback. Verifies the state
// cookie and exchanges the authorization code for tokens.
func (s *Server) SpotifyCallback(c *fiber.Ctx) error {
	state := c.Query("state")
	stored := c.Cookies(spotifyStateCookie)
	if state == "" || stored == "" || state != stored {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("state mismatch"))
	}

	// State is single-use.
	c.Cookie(&fiber.Cookie{
		Name:     spotifyStateCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	code := c.Query("code")
	if code == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("code is required"))
	}

	tok, err := s.spotifyClient.ExchangeCode(c.Context(), code)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	profile, err := s.spotifyClient.CurrentProfile(c.Context(), tok.AccessToken)
	if err != nil {
		return respondUpstreamError(c, err)
	}

	return c.JSON(fiber.Map{
		"access_token":  tok.AccessToken,
		"refresh_token": tok.RefreshToken,
		"expires_in":    tok.ExpiresIn,
		"profile":       profile,
	})
}

// SpotifyToken handles GET /api/spotify/token, issuing a client-credentials
// token for anonymous catalogue queries.
func (s *Server) SpotifyToken(c *fiber.Ctx) error {
	token, err := s.spotifyClient.ClientToken(c.Context())
	if err != nil {
		return respondUpstreamError(c, err)
	}
	return c.JSON(fiber.Map{
		"access_token": token,
	})
}

// SpotifySearch handles GET /api/spotify/search?q=...
func (s *Server) SpotifySearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("q is required"))
	}

	results, err := s.spotifyClient.SearchTracks(c.Context(), query)
	if err != nil {
		return respondUpstreamError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(results)
}

// respondUpstreamError maps provider failures to a 500 with a generic message.
func respondUpstreamError(c *fiber.Ctx, err error) error {
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
