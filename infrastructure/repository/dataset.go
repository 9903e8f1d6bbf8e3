// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/vfg2006/sales-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-api/internal/domain"
)

const (
	datasetsTable = "datasets d"

	datasetColumns = "d.id, d.name, d.source_filename, d.status, d.row_count, d.date_min, d.date_max, d.created_at"
)

type DatasetRepository interface {
	List(ctx context.Context) ([]domain.Dataset, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dataset, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id uuid.UUID, update domain.DatasetUpdate) (*domain.Dataset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type datasetRepository struct {
	conn *postgres.Connection
}

func NewDatasetRepository(conn *postgres.Connection) DatasetRepository {
	return &datasetRepository{conn: conn}
}

// List retorna todos os datasets, do mais recente para o mais antigo
func (r *datasetRepository) List(ctx context.Context) ([]domain.Dataset, error) {
	query, args, err := squirrel.
		Select(datasetColumns).
		From(datasetsTable).
		OrderBy("d.created_at DESC").
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

	datasets := make([]domain.Dataset, 0)
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear dataset: %w", err)
		}
		datasets = append(datasets, *ds)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return datasets, nil
}

func (r *datasetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dataset, error) {
	query, args, err := squirrel.
		Select(datasetColumns).
		From(datasetsTable).
		Where(squirrel.Eq{"d.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRowContext(ctx, query, args...)

	ds, err := scanDataset(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrDatasetNotFound
		}
		return nil, fmt.Errorf("erro ao escanear dataset: %w", err)
	}

	return ds, nil
}

func (r *datasetRepository) Count(ctx context.Context) (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From(datasetsTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar datasets: %w", err)
	}

	return count, nil
}

// Update aplica uma atualização parcial de nome/status e retorna o dataset atualizado
func (r *datasetRepository) Update(ctx context.Context, id uuid.UUID, update domain.DatasetUpdate) (*domain.Dataset, error) {
	setMap := map[string]interface{}{}
	if update.Name != nil {
		setMap["name"] = *update.Name
	}
	if update.Status != nil {
		setMap["status"] = *update.Status
	}

	if len(setMap) > 0 {
		query, args, err := squirrel.
			Update("datasets").
			SetMap(setMap).
			Where(squirrel.Eq{"id": id}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("erro ao construir query de atualização: %w", err)
		}

		result, err := r.conn.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("erro ao atualizar dataset: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, domain.ErrDatasetNotFound
		}
	}

	return r.GetByID(ctx, id)
}

// Delete remove o dataset; registros e insights caem em cascata pela FK
func (r *datasetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.
		Delete("datasets").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover dataset: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrDatasetNotFound
	}

	return nil
}

// scanner cobre *sql.Row e *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanDataset(s scanner) (*domain.Dataset, error) {
	ds := &domain.Dataset{}

	var sourceFilename sql.NullString
	var dateMin, dateMax sql.NullTime

	err := s.Scan(
		&ds.ID,
		&ds.Name,
		&sourceFilename,
		&ds.Status,
		&ds.RowCount,
		&dateMin,
		&dateMax,
		&ds.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sourceFilename.Valid {
		ds.SourceFilename = &sourceFilename.String
	}
	if dateMin.Valid {
		ds.DateMin = &dateMin.Time
	}
	if dateMax.Valid {
		ds.DateMax = &dateMax.Time
	}

	return ds, nil
}
