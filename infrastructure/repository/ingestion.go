package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/sales-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-api/internal/domain"
)

// IngestionRepository persiste uma ingestão completa como unidade atômica:
// dataset, vendedores resolvidos por nome, registros e insight de resumo, tudo
// dentro de uma única transação. Qualquer falha desfaz o lote inteiro.
type IngestionRepository interface {
	Ingest(ctx context.Context, dataset *domain.Dataset, rows []domain.NormalizedRow, insight *domain.Insight) (*domain.IngestResult, error)
}

type ingestionRepository struct {
	conn *postgres.Connection
}

func NewIngestionRepository(conn *postgres.Connection) IngestionRepository {
	return &ingestionRepository{conn: conn}
}

func (r *ingestionRepository) Ingest(
	ctx context.Context,
	dataset *domain.Dataset,
	rows []domain.NormalizedRow,
	insight *domain.Insight,
) (*domain.IngestResult, error) {
	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if err := insertDataset(ctx, tx, dataset); err != nil {
			return err
		}

		// Cache nome->id com escopo desta ingestão: evita lookups repetidos do
		// mesmo vendedor dentro do lote, sem substituir a constraint de unicidade
		sellerCache := make(map[string]uuid.UUID)

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO records (dataset_id, seller_id, event_date, category, value, quantity, metadata)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`)
		if err != nil {
			return fmt.Errorf("erro ao preparar inserção de registros: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			var sellerID *uuid.UUID

			if row.SellerName != "" {
				id, cached := sellerCache[row.SellerName]
				if !cached {
					resolved, err := getOrCreateSeller(ctx, tx, row.SellerName)
					if err != nil {
						return err
					}
					sellerCache[row.SellerName] = resolved
					id = resolved
				}
				sellerID = &id
			}

			var metadata []byte
			if row.Metadata != nil {
				metadata, err = json.Marshal(row.Metadata)
				if err != nil {
					return fmt.Errorf("erro ao codificar metadata: %w", err)
				}
			}

			_, err = stmt.ExecContext(ctx,
				dataset.ID,
				sellerID,
				row.EventDate,
				row.Category,
				row.Value,
				row.Quantity,
				metadata,
			)
			if err != nil {
				return fmt.Errorf("erro ao inserir registro: %w", err)
			}
		}

		if err := finalizeDataset(ctx, tx, dataset); err != nil {
			return err
		}

		if insight != nil {
			if err := insertInsight(ctx, tx, insight); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &domain.IngestResult{
		DatasetID:    dataset.ID,
		RowsInserted: len(rows),
	}, nil
}

func insertDataset(ctx context.Context, tx *sql.Tx, dataset *domain.Dataset) error {
	query, args, err := squirrel.
		Insert("datasets").
		Columns("id", "name", "source_filename", "status", "row_count").
		Values(dataset.ID, dataset.Name, dataset.SourceFilename, domain.DatasetStatusProcessing, 0).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir dataset: %w", err)
	}

	return nil
}

// getOrCreateSeller resolve um nome de vendedor para id dentro da transação.
// A criação usa flush na própria transação para obter o id sem commit parcial.
func getOrCreateSeller(ctx context.Context, tx *sql.Tx, name string) (uuid.UUID, error) {
	query, args, err := squirrel.
		Select("s.id").
		From(sellersTable).
		Where(squirrel.Eq{"s.name": name}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var id uuid.UUID
	err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return uuid.Nil, fmt.Errorf("erro ao buscar vendedor: %w", err)
	}

	id = uuid.New()

	insertQuery, insertArgs, err := squirrel.
		Insert("sellers").
		Columns("id", "name", "is_active").
		Values(id, name, true).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		// Ingestões concorrentes do mesmo nome são resolvidas pela constraint
		// de unicidade; a perdedora falha e o lote inteiro é desfeito
		return uuid.Nil, translateSellerError(err)
	}

	return id, nil
}

func finalizeDataset(ctx context.Context, tx *sql.Tx, dataset *domain.Dataset) error {
	query, args, err := squirrel.
		Update("datasets").
		Set("row_count", dataset.RowCount).
		Set("date_min", dataset.DateMin).
		Set("date_max", dataset.DateMax).
		Set("status", domain.DatasetStatusReady).
		Where(squirrel.Eq{"id": dataset.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao finalizar dataset: %w", err)
	}

	dataset.Status = domain.DatasetStatusReady
	return nil
}

func insertInsight(ctx context.Context, tx *sql.Tx, insight *domain.Insight) error {
	var payload []byte
	if insight.Payload != nil {
		encoded, err := json.Marshal(insight.Payload)
		if err != nil {
			return fmt.Errorf("erro ao codificar payload: %w", err)
		}
		payload = encoded
	}

	query, args, err := squirrel.
		Insert("insights").
		Columns("dataset_id", "kind", "title", "content", "severity", "payload").
		Values(insight.DatasetID, insight.Kind, insight.Title, insight.Content, insight.Severity, payload).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("erro ao inserir insight: %w", err)
	}

	return nil
}
