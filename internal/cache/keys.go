package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache TTLs.
const (
	UserTTL         = 5 * time.Minute
	SpotifyTokenTTL = 50 * time.Minute
)

// UserKey is the cache key for a user profile by ID.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// SpotifyTokenKey caches the client-credentials access token.
const SpotifyTokenKey = "spotify:client_token"

// InvalidateUser drops the cached profile for a user. Best-effort.
func InvalidateUser(ctx context.Context, id uint) {
	if Client == nil {
		return
	}
	Client.Del(ctx, UserKey(id))
}
