package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpotifyLogin_SetsStateAndRedirects(t *testing.T) {
	app := fiber.New()
	s := newTestServer(new(MockUserRepository), new(MockPokeRepository), new(MockMessageRepository))
	app.Get("/spotify/login", s.SpotifyLogin)

	req := httptest.NewRequest(http.MethodGet, "/spotify/login", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusFound, resp.StatusCode)

	var state string
	for _, c := range resp.Cookies() {
		if c.Name == spotifyStateCookie {
			state = c.Value
		}
	}
	require.Len(t, state, 16)

	location := resp.Header.Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://accounts.spotify.com/authorize?"))
	assert.Contains(t, location, "state="+state)
	assert.Contains(t, location, "client_id=client-id")
}

func TestSpotifyCallback_StateMismatch(t *testing.T) {
	app := fiber.New()
	s := newTestServer(new(MockUserRepository), new(MockPokeRepository), new(MockMessageRepository))
	app.Get("/spotify/callback", s.SpotifyCallback)

	t.Run("No Cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/spotify/callback?state=abc&code=xyz", nil)
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Mismatched State", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/spotify/callback?state=abc&code=xyz", nil)
		req.AddCookie(&http.Cookie{Name: spotifyStateCookie, Value: "different"})
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing Code", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/spotify/callback?state=abc", nil)
		req.AddCookie(&http.Cookie{Name: spotifyStateCookie, Value: "abc"})
		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSpotifySearch_MissingQuery(t *testing.T) {
	app := fiber.New()
	s := newTestServer(new(MockUserRepository), new(MockPokeRepository), new(MockMessageRepository))
	app.Get("/spotify/search", withUser(1), s.SpotifySearch)

	req := httptest.NewRequest(http.MethodGet, "/spotify/search", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRandomState(t *testing.T) {
	a := randomState(16)
	b := randomState(16)
	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	for _, r := range a {
		assert.Contains(t, stateChars, string(r))
	}
}
