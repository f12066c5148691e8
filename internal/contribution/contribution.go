package contribution

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/UduakOkonah/coopconnect/internal/db"
)

// Contribution is a payment a member made to a cooperative.
type Contribution struct {
	ID            uuid.UUID `json:"id"`
	MemberID      uuid.UUID `json:"memberId"`
	CooperativeID uuid.UUID `json:"cooperativeId"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

const contributionColumns = `
	id, member_id, cooperative_id, amount, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContribution(row rowScanner) (*Contribution, error) {
	var co Contribution
	err := row.Scan(
		&co.ID,
		&co.MemberID,
		&co.CooperativeID,
		&co.Amount,
		&co.CreatedAt,
		&co.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &co, nil
}

func (s *Store) Create(ctx context.Context, co *Contribution) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO contributions (member_id, cooperative_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`,
		co.MemberID,
		co.CooperativeID,
		co.Amount,
	).Scan(&co.ID, &co.CreatedAt, &co.UpdatedAt)
}

func (s *Store) ByID(ctx context.Context, id uuid.UUID) (*Contribution, error) {
	return scanContribution(s.db.QueryRowContext(ctx, `
		SELECT`+contributionColumns+`
		FROM contributions
		WHERE id = $1
	`, id))
}

func (s *Store) List(ctx context.Context) ([]Contribution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+contributionColumns+`
		FROM contributions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contributions []Contribution
	for rows.Next() {
		co, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		contributions = append(contributions, *co)
	}
	return contributions, rows.Err()
}

// UpdateAmount is the only mutation: member and cooperative linkage
// is immutable once recorded.
func (s *Store) UpdateAmount(ctx context.Context, id uuid.UUID, amount float64) (*Contribution, error) {
	return scanContribution(s.db.QueryRowContext(ctx, `
		UPDATE contributions
		SET amount = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING`+contributionColumns+`
	`, id, amount))
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM contributions WHERE id = $1
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
