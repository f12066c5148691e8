package db

import (
	"context"
	"database/sql"
)

// Schema for the whole service. Unique indexes are the actual
// enforcement points for the duplicate-email and duplicate-google-id
// rules: concurrent find-then-create races land here as 23505.
const schemaMigration = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS cooperatives (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    name text NOT NULL,
    description text NOT NULL DEFAULT '',
    location text NOT NULL DEFAULT '',
    category text NOT NULL DEFAULT 'other'
        CHECK (category IN ('agriculture', 'finance', 'housing', 'education', 'other')),
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS cooperatives_name_unique
ON cooperatives (name);

CREATE TABLE IF NOT EXISTS users (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    name text NOT NULL DEFAULT '',
    email text NOT NULL,
    password_hash text,
    provider text NOT NULL DEFAULT 'local'
        CHECK (provider IN ('local', 'google')),
    google_id text,
    role text NOT NULL DEFAULT 'user'
        CHECK (role IN ('user', 'cooperativeManager', 'admin')),
    cooperative_id uuid REFERENCES cooperatives(id) ON DELETE SET NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW(),
    CONSTRAINT users_local_has_hash
        CHECK (provider <> 'local' OR password_hash IS NOT NULL)
);

CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_unique
ON users (LOWER(email));

CREATE UNIQUE INDEX IF NOT EXISTS users_google_id_unique
ON users (google_id) WHERE google_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS posts (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    title text NOT NULL,
    content text NOT NULL,
    author_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    cooperative_id uuid NOT NULL REFERENCES cooperatives(id) ON DELETE CASCADE,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS posts_cooperative_id_idx
ON posts (cooperative_id);

CREATE TABLE IF NOT EXISTS contributions (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    member_id uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    cooperative_id uuid NOT NULL REFERENCES cooperatives(id) ON DELETE CASCADE,
    amount numeric(14,2) NOT NULL CHECK (amount > 0),
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS contributions_member_id_idx
ON contributions (member_id);

CREATE INDEX IF NOT EXISTS contributions_cooperative_id_idx
ON contributions (cooperative_id);
`

func RunMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schemaMigration)
	return err
}
