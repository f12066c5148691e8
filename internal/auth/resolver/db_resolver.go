package resolver

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/UduakOkonah/coopconnect/internal/account"
	"github.com/UduakOkonah/coopconnect/internal/auth"
	"github.com/UduakOkonah/coopconnect/internal/auth/credentials"
)

// DBResolver resolves external identities against the account store.
type DBResolver struct {
	accounts *account.Store
}

func NewDBResolver(accounts *account.Store) *DBResolver {
	return &DBResolver{accounts: accounts}
}

// Resolve finds or creates the account for a verified external
// identity. Lookup order is provider subject id, then email. An
// email-only match is linked: the account's provider flips to google
// and the subject id is stored, so the old password hash stays on the
// row but can never authenticate again. When neither key matches, a
// fresh account is created with an unusable placeholder credential.
func (r *DBResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
) (*account.Account, error) {

	if identity == nil {
		return nil, errors.New("identity is nil")
	}

	a, err := r.accounts.ByGoogleID(ctx, identity.ProviderUserID)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	a, err = r.accounts.ByEmail(ctx, identity.Email)
	if err == nil {
		if err := r.accounts.LinkGoogle(ctx, a.ID, identity.ProviderUserID); err != nil {
			return nil, err
		}
		a.Provider = account.ProviderGoogle
		a.GoogleID = sql.NullString{String: identity.ProviderUserID, Valid: true}
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	role, err := r.accounts.ResolveRole(ctx, "", false)
	if err != nil {
		return nil, err
	}

	placeholder, err := credentials.UnusablePassword()
	if err != nil {
		return nil, err
	}

	a, err = account.NewExternal(
		displayName(identity),
		identity.Email,
		identity.ProviderUserID,
		placeholder,
		role,
	)
	if err != nil {
		return nil, err
	}

	if err := r.accounts.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func displayName(identity *auth.Identity) string {
	if identity.Name != "" {
		return identity.Name
	}
	if at := strings.IndexByte(identity.Email, '@'); at > 0 {
		return identity.Email[:at]
	}
	return "User"
}
