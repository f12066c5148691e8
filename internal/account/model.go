package account

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Provider string

const (
	ProviderLocal  Provider = "local"
	ProviderGoogle Provider = "google"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleManager Role = "cooperativeManager"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// Account is one row of the users table. PasswordHash is write-only:
// it never appears in views or tokens.
type Account struct {
	ID            uuid.UUID
	Name          string
	Email         string
	PasswordHash  sql.NullString
	Provider      Provider
	GoogleID      sql.NullString
	Role          Role
	CooperativeID uuid.NullUUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

var (
	ErrMissingEmail = errors.New("account: email is required")
	ErrMissingHash  = errors.New("account: local account requires a password hash")
	ErrMissingSub   = errors.New("account: external account requires a provider subject id")
)

// NormalizeEmail lowercases and trims an email so the LOWER(email)
// unique index and every lookup agree on the key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewLocal builds a local-provider account. The hash must already be
// computed; a local account without one is unconstructible.
func NewLocal(name, email, passwordHash string, role Role) (*Account, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrMissingEmail
	}
	if passwordHash == "" {
		return nil, ErrMissingHash
	}
	return &Account{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: sql.NullString{String: passwordHash, Valid: true},
		Provider:     ProviderLocal,
		Role:         role,
	}, nil
}

// NewExternal builds a google-provider account. placeholderHash is a
// random unusable credential; external accounts never authenticate by
// password.
func NewExternal(name, email, googleID, placeholderHash string, role Role) (*Account, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrMissingEmail
	}
	if googleID == "" {
		return nil, ErrMissingSub
	}
	return &Account{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: sql.NullString{String: placeholderHash, Valid: placeholderHash != ""},
		Provider:     ProviderGoogle,
		GoogleID:     sql.NullString{String: googleID, Valid: true},
		Role:         role,
	}, nil
}

// View is the public representation of an account.
type View struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Provider      Provider  `json:"provider"`
	Role          Role      `json:"role"`
	CooperativeID *string   `json:"cooperativeId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Public strips the credential and internal linkage fields.
func (a *Account) Public() View {
	v := View{
		ID:        a.ID.String(),
		Name:      a.Name,
		Email:     a.Email,
		Provider:  a.Provider,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.CooperativeID.Valid {
		id := a.CooperativeID.UUID.String()
		v.CooperativeID = &id
	}
	return v
}

// Views maps a slice of accounts to public views.
func Views(accounts []Account) []View {
	out := make([]View, 0, len(accounts))
	for i := range accounts {
		out = append(out, accounts[i].Public())
	}
	return out
}
