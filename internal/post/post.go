package post

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/UduakOkonah/coopconnect/internal/db"
)

// Post is an announcement published to a cooperative.
type Post struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	AuthorID      uuid.UUID `json:"authorId"`
	CooperativeID uuid.UUID `json:"cooperativeId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Store struct {
	db *db.DB
}

func NewStore(db *db.DB) *Store {
	return &Store{db: db}
}

const postColumns = `
	id, title, content, author_id, cooperative_id, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*Post, error) {
	var p Post
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&p.AuthorID,
		&p.CooperativeID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) Create(ctx context.Context, p *Post) error {
	return s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, content, author_id, cooperative_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`,
		p.Title,
		p.Content,
		p.AuthorID,
		p.CooperativeID,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (s *Store) ByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	return scanPost(s.db.QueryRowContext(ctx, `
		SELECT`+postColumns+`
		FROM posts
		WHERE id = $1
	`, id))
}

func (s *Store) List(ctx context.Context) ([]Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT`+postColumns+`
		FROM posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func (s *Store) Update(ctx context.Context, p *Post) error {
	return s.db.QueryRowContext(ctx, `
		UPDATE posts
		SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`,
		p.ID,
		p.Title,
		p.Content,
	).Scan(&p.UpdatedAt)
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM posts WHERE id = $1
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
