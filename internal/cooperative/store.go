package cooperative

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/UduakOkonah/coopconnect/internal/db"
)

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

const cooperativeColumns = `
	id, name, description, location, category, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCooperative(row rowScanner) (*Cooperative, error) {
	var co Cooperative
	err := row.Scan(
		&co.ID,
		&co.Name,
		&co.Description,
		&co.Location,
		&co.Category,
		&co.CreatedAt,
		&co.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &co, nil
}

func (s *Store) Create(ctx context.Context, co *Cooperative) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO cooperatives (name, description, location, category)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`,
		co.Name,
		co.Description,
		co.Location,
		co.Category,
	).Scan(&co.ID, &co.CreatedAt, &co.UpdatedAt)
}

func (s *Store) ByID(ctx context.Context, id uuid.UUID) (*Cooperative, error) {
	return scanCooperative(s.db.QueryRowContext(ctx, `
		SELECT`+cooperativeColumns+`
		FROM cooperatives
		WHERE id = $1
	`, id))
}

func (s *Store) List(ctx context.Context) ([]Cooperative, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+cooperativeColumns+`
		FROM cooperatives
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coops []Cooperative
	for rows.Next() {
		co, err := scanCooperative(rows)
		if err != nil {
			return nil, err
		}
		coops = append(coops, *co)
	}
	return coops, rows.Err()
}

// MembersOf lists the accounts affiliated with the cooperative,
// trimmed to the public member fields.
func (s *Store) MembersOf(ctx context.Context, id uuid.UUID) ([]Member, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email
		FROM users
		WHERE cooperative_id = $1
		ORDER BY created_at
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) Update(ctx context.Context, co *Cooperative) error {
	return s.db.QueryRowContext(ctx, `
		UPDATE cooperatives
		SET name = $2, description = $3, location = $4, category = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`,
		co.ID,
		co.Name,
		co.Description,
		co.Location,
		co.Category,
	).Scan(&co.UpdatedAt)
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM cooperatives WHERE id = $1
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
