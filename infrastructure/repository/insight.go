package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/sales-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-api/internal/domain"
)

const (
	insightsTable  = "insights i"
	insightColumns = "i.id, i.dataset_id, i.kind, i.title, i.content, i.severity, i.payload, i.created_at"
)

type InsightRepository interface {
	ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]domain.Insight, error)
}

type insightRepository struct {
	conn *postgres.Connection
}

func NewInsightRepository(conn *postgres.Connection) InsightRepository {
	return &insightRepository{conn: conn}
}

func (r *insightRepository) ListByDataset(ctx context.Context, datasetID uuid.UUID) ([]domain.Insight, error) {
	query, args, err := squirrel.
		Select(insightColumns).
		From(insightsTable).
		Where(squirrel.Eq{"i.dataset_id": datasetID}).
		OrderBy("i.created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	insights := make([]domain.Insight, 0)
	for rows.Next() {
		insight := domain.Insight{}
		var payload []byte

		err := rows.Scan(
			&insight.ID,
			&insight.DatasetID,
			&insight.Kind,
			&insight.Title,
			&insight.Content,
			&insight.Severity,
			&payload,
			&insight.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear insight: %w", err)
		}

		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &insight.Payload); err != nil {
				return nil, fmt.Errorf("erro ao decodificar payload: %w", err)
			}
		}

		insights = append(insights, insight)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return insights, nil
}
