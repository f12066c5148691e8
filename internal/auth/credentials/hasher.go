package credentials

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/UduakOkonah/coopconnect/internal/account"
)

// HashPassword hashes a plaintext password using bcrypt with the
// default work factor. It fails only on empty input; length policy is
// enforced at the request boundary.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}

	bytes, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", err
	}

	return string(bytes), nil
}

// MatchPassword reports whether plaintext matches the stored hash.
// Accounts that are not local, or that have no stored hash, never
// match regardless of input; no comparison is attempted for them.
func MatchPassword(password string, a *account.Account) bool {
	if a == nil || a.Provider != account.ProviderLocal {
		return false
	}
	if !a.PasswordHash.Valid || a.PasswordHash.String == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(
		[]byte(a.PasswordHash.String),
		[]byte(password),
	) == nil
}

// UnusablePassword returns a bcrypt hash of 32 random bytes. It is
// stored on external accounts so the column is populated but can never
// be produced by any login attempt.
func UnusablePassword() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return HashPassword(base64.RawURLEncoding.EncodeToString(b))
}
