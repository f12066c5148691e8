package account

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/UduakOkonah/coopconnect/internal/db"
)

// Store owns all SQL against the users table. Lookups that find
// nothing return sql.ErrNoRows unwrapped; callers map it.
type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

const accountColumns = `
	id, name, email, password_hash, provider, google_id,
	role, cooperative_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*Account, error) {
	var a Account
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.PasswordHash,
		&a.Provider,
		&a.GoogleID,
		&a.Role,
		&a.CooperativeID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the account and fills in the generated id and
// timestamps. Duplicate emails surface as a unique-violation error
// from the LOWER(email) index.
func (s *Store) Create(ctx context.Context, a *Account) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, provider, google_id, role, cooperative_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`,
		a.Name,
		a.Email,
		a.PasswordHash,
		a.Provider,
		a.GoogleID,
		a.Role,
		a.CooperativeID,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (s *Store) ByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	return scanAccount(s.db.QueryRowContext(ctx, `
		SELECT`+accountColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (s *Store) ByEmail(ctx context.Context, email string) (*Account, error) {
	return scanAccount(s.db.QueryRowContext(ctx, `
		SELECT`+accountColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email))
}

func (s *Store) ByGoogleID(ctx context.Context, googleID string) (*Account, error) {
	return scanAccount(s.db.QueryRowContext(ctx, `
		SELECT`+accountColumns+`
		FROM users
		WHERE google_id = $1
	`, googleID))
}

func (s *Store) List(ctx context.Context) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+accountColumns+`
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

// AdminExists answers the first-user bootstrap question as an explicit
// query rather than process state, so multiple instances agree.
func (s *Store) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE role = 'admin'
		)
	`).Scan(&exists)
	return exists, err
}

// ResolveRole applies the bootstrap-or-default policy shared by local
// registration and external account creation: the first account ever
// becomes admin; after that a requested role only sticks when the
// acting caller is an admin.
func (s *Store) ResolveRole(ctx context.Context, requested Role, actorIsAdmin bool) (Role, error) {
	exists, err := s.AdminExists(ctx)
	if err != nil {
		return "", err
	}
	if !exists {
		return RoleAdmin, nil
	}
	if actorIsAdmin && ValidRole(string(requested)) {
		return requested, nil
	}
	return RoleUser, nil
}

// Update persists the mutable profile fields. The password hash is
// deliberately not written here so it is never recomputed or clobbered
// on unrelated updates.
func (s *Store) Update(ctx context.Context, a *Account) error {
	return s.db.QueryRowContext(ctx, `
		UPDATE users
		SET name = $2, email = $3, role = $4, cooperative_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`,
		a.ID,
		a.Name,
		a.Email,
		a.Role,
		a.CooperativeID,
	).Scan(&a.UpdatedAt)
}

// LinkGoogle merges a local account into external-identity
// authentication: provider flips to google and the subject id is
// stored. The existing password hash is left untouched; it becomes
// unusable because MatchPassword rejects non-local providers.
func (s *Store) LinkGoogle(ctx context.Context, id uuid.UUID, googleID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET provider = 'google', google_id = $2, updated_at = NOW()
		WHERE id = $1
	`, id, googleID)
	return err
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM users WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
