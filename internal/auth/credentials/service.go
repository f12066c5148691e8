package credentials

import (
	"context"
	"database/sql"
	"errors"

	"github.com/UduakOkonah/coopconnect/internal/account"
	"github.com/UduakOkonah/coopconnect/internal/httperr"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyRegistered  = errors.New("account already exists")
)

// Service implements local (password) registration and login.
type Service struct {
	accounts *account.Store
}

func NewService(accounts *account.Store) *Service {
	return &Service{accounts: accounts}
}

// Register creates a local account. requestedRole is honored only when
// the acting caller is an admin; the first account ever created becomes
// admin regardless. The existence pre-check is best-effort: two
// concurrent registrations race it, and the LOWER(email) unique index
// is what actually decides, surfacing here as ErrAlreadyRegistered.
func (s *Service) Register(
	ctx context.Context,
	name string,
	email string,
	password string,
	requestedRole account.Role,
	actor *account.Account,
) (*account.Account, error) {

	_, err := s.accounts.ByEmail(ctx, email)
	if err == nil {
		return nil, ErrAlreadyRegistered
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	actorIsAdmin := actor != nil && actor.Role == account.RoleAdmin
	role, err := s.accounts.ResolveRole(ctx, requestedRole, actorIsAdmin)
	if err != nil {
		return nil, err
	}

	// Hashing happens exactly once, here on the persistence path.
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	a, err := account.NewLocal(name, email, hash, role)
	if err != nil {
		return nil, err
	}

	if err := s.accounts.Create(ctx, a); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, ErrAlreadyRegistered
		}
		return nil, err
	}

	return a, nil
}

// Authenticate verifies a local login. Unknown email, non-local
// provider, and password mismatch are indistinguishable to the caller.
func (s *Service) Authenticate(
	ctx context.Context,
	email string,
	password string,
) (*account.Account, error) {

	a, err := s.accounts.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !MatchPassword(password, a) {
		return nil, ErrInvalidCredentials
	}

	return a, nil
}
