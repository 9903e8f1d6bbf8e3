package postgres

import (
	"context"
	"fmt"
)

// schemaStatements cria o schema completo. Todas as instruções são idempotentes
// para permitir execução em todo boot do processo.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS datasets (
		id UUID PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		source_filename VARCHAR(255),
		status VARCHAR(32) NOT NULL DEFAULT 'ready',
		row_count INTEGER NOT NULL DEFAULT 0,
		date_min DATE,
		date_max DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS sellers (
		id UUID PRIMARY KEY,
		name VARCHAR(120) NOT NULL UNIQUE,
		region VARCHAR(120),
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS records (
		id BIGSERIAL PRIMARY KEY,
		dataset_id UUID NOT NULL REFERENCES datasets (id) ON DELETE CASCADE,
		seller_id UUID REFERENCES sellers (id) ON DELETE SET NULL,
		event_date DATE NOT NULL,
		category VARCHAR(200),
		value NUMERIC(14,2) NOT NULL DEFAULT 0,
		quantity NUMERIC(14,2),
		metadata JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_records_dataset_date ON records (dataset_id, event_date)`,
	`CREATE INDEX IF NOT EXISTS idx_records_seller ON records (seller_id)`,
	`CREATE TABLE IF NOT EXISTS insights (
		id BIGSERIAL PRIMARY KEY,
		dataset_id UUID NOT NULL REFERENCES datasets (id) ON DELETE CASCADE,
		kind VARCHAR(32) NOT NULL,
		title VARCHAR(200) NOT NULL,
		content TEXT NOT NULL,
		severity INTEGER NOT NULL DEFAULT 1,
		payload JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema cria as tabelas e índices caso ainda não existam
func (c *Connection) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := c.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("erro ao criar schema: %w", err)
		}
	}
	return nil
}
