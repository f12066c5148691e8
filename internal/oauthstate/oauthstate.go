// Package oauthstate holds the transient state of in-flight OAuth
// authorization flows: the anti-CSRF state nonce mapped to its PKCE
// code verifier. Entries live for minutes and are consumed exactly
// once; this is flow state, not a session store.
package oauthstate

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"
)

// TTL bounds how long a login redirect may take before the callback
// is rejected.
const TTL = 5 * time.Minute

// Flow carries the per-attempt secrets. The challenge goes to the
// provider; the verifier stays server-side keyed by state.
type Flow struct {
	State         string
	CodeVerifier  string
	CodeChallenge string
}

// NewFlow generates the state nonce and PKCE S256 pair.
// 32 bytes = 256 bits of entropy each.
func NewFlow() (Flow, error) {
	state, err := randomToken()
	if err != nil {
		return Flow{}, err
	}

	verifier, err := randomToken()
	if err != nil {
		return Flow{}, err
	}

	sum := sha256.Sum256([]byte(verifier))

	return Flow{
		State:         state,
		CodeVerifier:  verifier,
		CodeChallenge: base64.RawURLEncoding.EncodeToString(sum[:]),
	}, nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("oauthstate: failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
