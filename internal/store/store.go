package store

import (
	"context"
	"errors"
)

// Key identifies one persisted credential entry. The client keeps
// exactly three: the access token, the refresh token, and the
// serialized identity record.
type Key string

const (
	KeyAccessToken  Key = "access_token"
	KeyRefreshToken Key = "refresh_token"
	KeyIdentity     Key = "identity"
)

// Keys lists every credential entry, in the order they are cleared
var Keys = []Key{KeyAccessToken, KeyRefreshToken, KeyIdentity}

// ErrNotFound is returned when a key has no persisted value
var ErrNotFound = errors.New("credential not found")

// Store persists session credentials across client restarts. All
// three entries are cleared together on logout or irrecoverable
// refresh failure.
type Store interface {
	Get(ctx context.Context, key Key) (string, error)
	Set(ctx context.Context, key Key, value string) error
	Delete(ctx context.Context, key Key) error
	// Clear removes every credential entry. It must succeed even when
	// some entries are already absent.
	Clear(ctx context.Context) error
}
