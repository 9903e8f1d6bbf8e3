package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vfg2006/sales-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-insights-api/internal/domain"
)

const (
	sellersTable  = "sellers s"
	sellerColumns = "s.id, s.name, s.region, s.is_active, s.created_at"

	// Código de unique_violation do Postgres; a constraint de nome único é a
	// única fonte de verdade contra vendedores duplicados
	pqUniqueViolation = "23505"
)

type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) error
	List(ctx context.Context, nameQuery string) ([]domain.Seller, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error)
	Update(ctx context.Context, id uuid.UUID, update domain.SellerUpdate) (*domain.Seller, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type sellerRepository struct {
	conn *postgres.Connection
}

func NewSellerRepository(conn *postgres.Connection) SellerRepository {
	return &sellerRepository{conn: conn}
}

func (r *sellerRepository) Create(ctx context.Context, seller *domain.Seller) error {
	query, args, err := squirrel.
		Insert("sellers").
		Columns("id", "name", "region", "is_active").
		Values(seller.ID, seller.Name, seller.Region, seller.IsActive).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de inserção: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&seller.CreatedAt)
	if err != nil {
		return translateSellerError(err)
	}

	return nil
}

// List retorna os vendedores em ordem alfabética, com busca opcional por nome
func (r *sellerRepository) List(ctx context.Context, nameQuery string) ([]domain.Seller, error) {
	builder := squirrel.
		Select(sellerColumns).
		From(sellersTable).
		OrderBy("s.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if nameQuery != "" {
		builder = builder.Where(squirrel.ILike{"s.name": "%" + nameQuery + "%"})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sellers := make([]domain.Seller, 0)
	for rows.Next() {
		seller, err := scanSeller(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear vendedor: %w", err)
		}
		sellers = append(sellers, *seller)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sellers, nil
}

func (r *sellerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	query, args, err := squirrel.
		Select(sellerColumns).
		From(sellersTable).
		Where(squirrel.Eq{"s.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	seller, err := scanSeller(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSellerNotFound
		}
		return nil, fmt.Errorf("erro ao escanear vendedor: %w", err)
	}

	return seller, nil
}

func (r *sellerRepository) Update(ctx context.Context, id uuid.UUID, update domain.SellerUpdate) (*domain.Seller, error) {
	setMap := map[string]interface{}{}
	if update.Name != nil {
		setMap["name"] = *update.Name
	}
	if update.Region != nil {
		setMap["region"] = *update.Region
	}
	if update.IsActive != nil {
		setMap["is_active"] = *update.IsActive
	}

	if len(setMap) > 0 {
		query, args, err := squirrel.
			Update("sellers").
			SetMap(setMap).
			Where(squirrel.Eq{"id": id}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("erro ao construir query de atualização: %w", err)
		}

		result, err := r.conn.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, translateSellerError(err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, domain.ErrSellerNotFound
		}
	}

	return r.GetByID(ctx, id)
}

// Delete remove o vendedor; registros vinculados ficam com seller_id nulo (FK SET NULL)
func (r *sellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := squirrel.
		Delete("sellers").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir query de remoção: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao remover vendedor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSellerNotFound
	}

	return nil
}

func scanSeller(s scanner) (*domain.Seller, error) {
	seller := &domain.Seller{}

	var region sql.NullString

	err := s.Scan(
		&seller.ID,
		&seller.Name,
		&region,
		&seller.IsActive,
		&seller.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if region.Valid {
		seller.Region = &region.String
	}

	return seller, nil
}

// translateSellerError converte unique_violation na constraint de nome em erro de domínio
func translateSellerError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolation {
		return domain.ErrSellerNameConflict
	}
	return fmt.Errorf("erro de banco de dados: %w", err)
}
