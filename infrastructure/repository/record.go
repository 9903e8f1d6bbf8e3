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

const (
	recordsTable  = "records r"
	recordColumns = "r.id, r.dataset_id, r.seller_id, r.event_date, r.category, r.value, r.quantity, r.metadata, r.created_at"
)

type RecordRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Record, error)
	UpdateSeller(ctx context.Context, id int64, sellerID *uuid.UUID) error
}

type recordRepository struct {
	conn *postgres.Connection
}

func NewRecordRepository(conn *postgres.Connection) RecordRepository {
	return &recordRepository{conn: conn}
}

func (r *recordRepository) GetByID(ctx context.Context, id int64) (*domain.Record, error) {
	query, args, err := squirrel.
		Select(recordColumns).
		From(recordsTable).
		Where(squirrel.Eq{"r.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	record, err := scanRecord(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("erro ao escanear registro: %w", err)
	}

	return record, nil
}

// UpdateSeller reatribui (ou desvincula, com sellerID nulo) o vendedor do registro
func (r *recordRepository) UpdateSeller(ctx context.Context, id int64, sellerID *uuid.UUID) error {
	query, args, err := squirrel.
		Update("records").
		Set("seller_id", sellerID).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de atualização: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar registro: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func scanRecord(s scanner) (*domain.Record, error) {
	record := &domain.Record{}

	var sellerID uuid.NullUUID
	var category sql.NullString
	var quantity sql.NullFloat64
	var metadata []byte

	err := s.Scan(
		&record.ID,
		&record.DatasetID,
		&sellerID,
		&record.EventDate,
		&category,
		&record.Value,
		&quantity,
		&metadata,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sellerID.Valid {
		record.SellerID = &sellerID.UUID
	}
	if category.Valid {
		record.Category = &category.String
	}
	if quantity.Valid {
		record.Quantity = &quantity.Float64
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
			return nil, fmt.Errorf("erro ao decodificar metadata: %w", err)
		}
	}

	return record, nil
}
