package oauthstate

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a state nonce is unknown, expired, or
// already consumed.
var ErrNotFound = errors.New("oauthstate: unknown or expired state")

// Store persists in-flight flows for the redirect round-trip.
type Store interface {
	Save(ctx context.Context, state, codeVerifier string) error
	// Consume returns the verifier for state and deletes it, so a
	// state nonce authorizes exactly one callback.
	Consume(ctx context.Context, state string) (string, error)
}
