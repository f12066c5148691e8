package middleware

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/UduakOkonah/coopconnect/internal/account"
	"github.com/UduakOkonah/coopconnect/internal/auth/token"
	"github.com/UduakOkonah/coopconnect/internal/httperr"
)

// AccountSource is the slice of the account store the gate needs.
type AccountSource interface {
	ByID(ctx context.Context, id uuid.UUID) (*account.Account, error)
}

// Auth is the two-stage request gate: Authenticate establishes
// identity, Authorize checks role membership. Both are explicit guard
// functions returning a result, composed by the router adapters.
type Auth struct {
	tokens   *token.Service
	accounts AccountSource
}

func NewAuth(tokens *token.Service, accounts AccountSource) *Auth {
	return &Auth{tokens: tokens, accounts: accounts}
}

// Authenticate verifies the Authorization header and resolves the
// account it references. Any token failure and a token referencing a
// deleted account all yield Unauthorized.
func (a *Auth) Authenticate(ctx context.Context, authorization string) (*account.Account, *httperr.Error) {
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil, httperr.Unauthorized("Not authorized, token missing")
	}

	claims, err := a.tokens.Verify(parts[1])
	if err != nil {
		return nil, httperr.Unauthorized("Token is invalid or expired")
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, httperr.Unauthorized("Token is invalid or expired")
	}

	acct, err := a.accounts.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperr.Unauthorized("Not authorized, user not found")
		}
		return nil, httperr.Server(err)
	}

	return acct, nil
}

// Authorize denies accounts whose role is outside the allowed set.
// It assumes identity was already established by Authenticate.
func Authorize(acct *account.Account, allowed ...account.Role) *httperr.Error {
	if acct == nil {
		return httperr.Unauthorized("Not authorized, no user found")
	}
	for _, role := range allowed {
		if acct.Role == role {
			return nil
		}
	}
	return httperr.Forbidden()
}
