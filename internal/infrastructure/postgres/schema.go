package postgres

import (
	"context"
	"fmt"
)

// accountsSchema tabla de cuentas. accounts_email_key es la única garantía de unicidad del email.
const accountsSchema = `
CREATE TABLE IF NOT EXISTS accounts (
	id                    UUID PRIMARY KEY,
	name                  TEXT NOT NULL,
	email                 TEXT NOT NULL,
	password_hash         TEXT NOT NULL,
	role                  TEXT NOT NULL,
	status                TEXT NOT NULL,
	company_name          TEXT NOT NULL DEFAULT '',
	business_document_id  TEXT,
	business_document_url TEXT,
	business_data         JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT now(),
	CONSTRAINT accounts_email_key UNIQUE (email),
	CONSTRAINT accounts_status_check CHECK (status IN ('Pending', 'Approved', 'Rejected'))
);
CREATE INDEX IF NOT EXISTS accounts_created_at_idx ON accounts (created_at DESC);
`

// EnsureSchema crea la tabla de cuentas si no existe.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, accountsSchema); err != nil {
		return fmt.Errorf("crear esquema accounts: %w", err)
	}
	return nil
}
