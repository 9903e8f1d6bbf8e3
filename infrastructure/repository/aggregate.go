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

// AggregateRepository delega ao Postgres todas as agregações do dashboard.
// Todas as consultas aplicam o mesmo conjunto de filtros por AND.
type AggregateRepository interface {
	TotalValue(ctx context.Context, filters domain.RecordFilters) (float64, error)
	DailySeries(ctx context.Context, filters domain.RecordFilters) ([]domain.SeriesPoint, error)
	TopCategories(ctx context.Context, filters domain.RecordFilters, limit int) ([]domain.CategoryTotal, error)
	SellerRanking(ctx context.Context, filters domain.RecordFilters, limit int) ([]domain.SellerRankingItem, error)
	SellersInFilter(ctx context.Context, filters domain.RecordFilters) ([]domain.SellerRef, error)
	FilterOptions(ctx context.Context, datasetID uuid.UUID) (*domain.FilterOptions, error)
}

type aggregateRepository struct {
	conn *postgres.Connection
}

func NewAggregateRepository(conn *postgres.Connection) AggregateRepository {
	return &aggregateRepository{conn: conn}
}

// applyRecordFilters compõe os filtros de dataset, janela de datas e vendedor
func applyRecordFilters(builder squirrel.SelectBuilder, filters domain.RecordFilters) squirrel.SelectBuilder {
	builder = builder.Where(squirrel.Eq{"r.dataset_id": filters.DatasetID})

	if filters.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"r.event_date": *filters.StartDate})
	}
	if filters.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"r.event_date": *filters.EndDate})
	}
	if filters.SellerID != nil {
		builder = builder.Where(squirrel.Eq{"r.seller_id": *filters.SellerID})
	}

	return builder
}

func (r *aggregateRepository) TotalValue(ctx context.Context, filters domain.RecordFilters) (float64, error) {
	builder := squirrel.
		Select("COALESCE(SUM(r.value), 0)").
		From(recordsTable).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := applyRecordFilters(builder, filters).ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var total float64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("erro ao somar valores: %w", err)
	}

	return total, nil
}

// DailySeries retorna um ponto por data distinta, em ordem ascendente de data
func (r *aggregateRepository) DailySeries(ctx context.Context, filters domain.RecordFilters) ([]domain.SeriesPoint, error) {
	builder := squirrel.
		Select("r.event_date", "COALESCE(SUM(r.value), 0) AS value").
		From(recordsTable).
		GroupBy("r.event_date").
		OrderBy("r.event_date ASC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := applyRecordFilters(builder, filters).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	series := make([]domain.SeriesPoint, 0)
	for rows.Next() {
		point := domain.SeriesPoint{}
		if err := rows.Scan(&point.Date, &point.Value); err != nil {
			return nil, fmt.Errorf("erro ao escanear ponto da série: %w", err)
		}
		series = append(series, point)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return series, nil
}

// TopCategories retorna as categorias com maior soma, excluindo registros sem
// categoria. Empates são desfeitos pela ordem alfabética da categoria.
func (r *aggregateRepository) TopCategories(ctx context.Context, filters domain.RecordFilters, limit int) ([]domain.CategoryTotal, error) {
	builder := squirrel.
		Select("r.category", "COALESCE(SUM(r.value), 0) AS value").
		From(recordsTable).
		Where(squirrel.NotEq{"r.category": nil}).
		GroupBy("r.category").
		OrderBy("value DESC", "r.category ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := applyRecordFilters(builder, filters).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	categories := make([]domain.CategoryTotal, 0)
	for rows.Next() {
		category := domain.CategoryTotal{}
		if err := rows.Scan(&category.Category, &category.Value); err != nil {
			return nil, fmt.Errorf("erro ao escanear categoria: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return categories, nil
}

// SellerRanking ordena vendedores com ao menos um registro no filtro por valor
// total decrescente. Empates são desfeitos pelo nome do vendedor.
func (r *aggregateRepository) SellerRanking(ctx context.Context, filters domain.RecordFilters, limit int) ([]domain.SellerRankingItem, error) {
	builder := squirrel.
		Select(
			"s.id",
			"s.name",
			"COALESCE(SUM(r.value), 0) AS total_value",
			"COUNT(DISTINCT r.event_date) AS days",
		).
		From(recordsTable).
		Join("sellers s ON s.id = r.seller_id").
		GroupBy("s.id", "s.name").
		OrderBy("total_value DESC", "s.name ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := applyRecordFilters(builder, filters).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ranking := make([]domain.SellerRankingItem, 0)
	for rows.Next() {
		item := domain.SellerRankingItem{}
		if err := rows.Scan(&item.SellerID, &item.SellerName, &item.TotalValue, &item.Days); err != nil {
			return nil, fmt.Errorf("erro ao escanear item do ranking: %w", err)
		}

		if item.Days > 0 {
			item.AvgDailyValue = item.TotalValue / float64(item.Days)
		}

		ranking = append(ranking, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ranking, nil
}

// SellersInFilter retorna os pares (id, nome) de vendedores presentes no
// conjunto filtrado de registros
func (r *aggregateRepository) SellersInFilter(ctx context.Context, filters domain.RecordFilters) ([]domain.SellerRef, error) {
	builder := squirrel.
		Select("DISTINCT s.id", "s.name").
		From(recordsTable).
		Join("sellers s ON s.id = r.seller_id").
		OrderBy("s.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	query, args, err := applyRecordFilters(builder, filters).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	sellers := make([]domain.SellerRef, 0)
	for rows.Next() {
		ref := domain.SellerRef{}
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("erro ao escanear vendedor: %w", err)
		}
		sellers = append(sellers, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return sellers, nil
}

// FilterOptions calcula os limites de data e os valores filtráveis do dataset
func (r *aggregateRepository) FilterOptions(ctx context.Context, datasetID uuid.UUID) (*domain.FilterOptions, error) {
	options := &domain.FilterOptions{
		Categories: make([]string, 0),
		Sellers:    make([]domain.SellerRef, 0),
	}

	boundsQuery, args, err := squirrel.
		Select("MIN(r.event_date)", "MAX(r.event_date)").
		From(recordsTable).
		Where(squirrel.Eq{"r.dataset_id": datasetID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var dateMin, dateMax sql.NullTime
	if err := r.conn.QueryRowContext(ctx, boundsQuery, args...).Scan(&dateMin, &dateMax); err != nil {
		return nil, fmt.Errorf("erro ao buscar limites de data: %w", err)
	}
	if dateMin.Valid {
		options.DateMin = &dateMin.Time
	}
	if dateMax.Valid {
		options.DateMax = &dateMax.Time
	}

	categoriesQuery, args, err := squirrel.
		Select("DISTINCT r.category").
		From(recordsTable).
		Where(squirrel.Eq{"r.dataset_id": datasetID}).
		Where(squirrel.NotEq{"r.category": nil}).
		OrderBy("r.category ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, categoriesQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar categorias: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("erro ao escanear categoria: %w", err)
		}
		options.Categories = append(options.Categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	sellers, err := r.SellersInFilter(ctx, domain.RecordFilters{DatasetID: datasetID})
	if err != nil {
		return nil, err
	}
	options.Sellers = sellers

	return options, nil
}
