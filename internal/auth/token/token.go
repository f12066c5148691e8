// Package token mints and verifies the bearer tokens that carry
// account identity and role between requests. There is no revocation:
// a token stays valid until expiry, and rotating the signing secret
// invalidates every outstanding token at once.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned when the signature does not validate.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenMalformed is returned when required claims are missing.
	ErrTokenMalformed = errors.New("malformed token claims")
	// ErrSecretTooShort is returned for HMAC keys under 256 bits.
	ErrSecretTooShort = errors.New("signing secret must be at least 32 bytes")
)

const minSecretLen = 32

// DefaultTTL is the canonical token lifetime for the whole API.
const DefaultTTL = 7 * 24 * time.Hour

// Claims is the canonical token payload: account id and role plus the
// registered time claims.
type Claims struct {
	jwt.RegisteredClaims
	ID   string `json:"id"`
	Role string `json:"role"`
}

// Service signs and verifies HS256 tokens.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) (*Service, error) {
	if len(secret) < minSecretLen {
		return nil, ErrSecretTooShort
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue mints a signed token for the account.
func (s *Service) Issue(accountID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		ID:   accountID,
		Role: role,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token string.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.ID == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
