package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ecodonate-backend/internal/logger"
)

// schema is applied in order; every statement is idempotent
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		email         VARCHAR(120) NOT NULL,
		name          VARCHAR(120) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(20)  NOT NULL CHECK (role IN ('donor', 'org_admin', 'admin')),
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (LOWER(email))`,
	`CREATE TABLE IF NOT EXISTS organizations (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT       NOT NULL REFERENCES users(id),
		name        VARCHAR(120) NOT NULL,
		description TEXT         NOT NULL DEFAULT '',
		status      VARCHAR(20)  NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
		created_at  TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS organizations_user_id_key ON organizations (user_id)`,
	`CREATE INDEX IF NOT EXISTS organizations_status_idx ON organizations (status)`,
	`CREATE TABLE IF NOT EXISTS donations (
		id                BIGSERIAL PRIMARY KEY,
		user_id           BIGINT         NOT NULL REFERENCES users(id),
		organization_id   BIGINT         NOT NULL REFERENCES organizations(id),
		amount            NUMERIC(10, 2) NOT NULL CHECK (amount > 0),
		is_anonymous      BOOLEAN        NOT NULL DEFAULT FALSE,
		is_recurring      BOOLEAN        NOT NULL DEFAULT FALSE,
		frequency         VARCHAR(20)    CHECK (frequency IN ('monthly', 'quarterly', 'yearly')),
		status            VARCHAR(20)    NOT NULL CHECK (status IN ('pending', 'completed', 'failed')),
		payment_intent_id VARCHAR(255)   NOT NULL,
		created_at        TIMESTAMPTZ    NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS donations_payment_intent_id_key ON donations (payment_intent_id)`,
	`CREATE INDEX IF NOT EXISTS donations_organization_id_idx ON donations (organization_id)`,
	`CREATE TABLE IF NOT EXISTS stories (
		id              BIGSERIAL PRIMARY KEY,
		organization_id BIGINT       NOT NULL REFERENCES organizations(id),
		title           VARCHAR(200) NOT NULL,
		content         TEXT         NOT NULL,
		image_url       VARCHAR(255),
		created_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS beneficiaries (
		id              BIGSERIAL PRIMARY KEY,
		organization_id BIGINT       NOT NULL REFERENCES organizations(id),
		name            VARCHAR(120) NOT NULL,
		description     TEXT         NOT NULL DEFAULT '',
		created_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS inventory (
		id             BIGSERIAL PRIMARY KEY,
		beneficiary_id BIGINT       NOT NULL REFERENCES beneficiaries(id),
		item_name      VARCHAR(120) NOT NULL,
		quantity       INTEGER      NOT NULL CHECK (quantity >= 0),
		date_sent      TIMESTAMPTZ  NOT NULL,
		created_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables and indexes inside a single transaction
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d failed: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	logger.Info("Database schema is up to date", "statements", len(schema))
	return nil
}
