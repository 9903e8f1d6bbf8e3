package dashboarding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository"
	"github.com/vfg2006/sales-insights-api/internal/domain"
	"github.com/vfg2006/sales-insights-api/pkg/log"
	"github.com/vfg2006/sales-insights-api/pkg/utils"
)

// Query são os filtros aceitos pelos endpoints de leitura do dashboard.
// Limites zerados caem nos defaults e são limitados aos tetos do domínio.
type Query struct {
	StartDate     *time.Time
	EndDate       *time.Time
	SellerID      *uuid.UUID
	CategoryLimit int
	RankingLimit  int
}

// Dashboarder calcula os agregados de dashboard de um dataset
type Dashboarder interface {
	Series(ctx context.Context, datasetID uuid.UUID, query Query) ([]domain.SeriesPoint, error)
	KPIs(ctx context.Context, datasetID uuid.UUID, query Query) (*domain.KPIs, error)
	TopCategories(ctx context.Context, datasetID uuid.UUID, query Query) ([]domain.CategoryTotal, error)
	SellerRanking(ctx context.Context, datasetID uuid.UUID, query Query) ([]domain.SellerRankingItem, error)
	Sellers(ctx context.Context, datasetID uuid.UUID, query Query) ([]domain.SellerRef, error)
	FilterOptions(ctx context.Context, datasetID uuid.UUID) (*domain.FilterOptions, error)
	Dashboard(ctx context.Context, datasetID uuid.UUID, query Query) (*domain.Dashboard, error)
	Compare(ctx context.Context, datasetID uuid.UUID, query Query) (*domain.DashboardComparison, error)
	ExportCSV(ctx context.Context, datasetID uuid.UUID, query Query) ([]byte, string, error)
}

type Service struct {
	datasetRepo   repository.DatasetRepository
	aggregateRepo repository.AggregateRepository
}

func NewService(
	datasetRepo repository.DatasetRepository,
	aggregateRepo repository.AggregateRepository,
) Dashboarder {
	return &Service{
		datasetRepo:   datasetRepo,
		aggregateRepo: aggregateRepo,
	}
}

// filters valida o dataset e monta o conjunto de filtros normalizado aplicado
// de forma idêntica a todas as consultas agregadas
func (s *Service) filters(ctx context.Context, datasetID uuid.UUID, query Query) (domain.RecordFilters, error) {
	dataset, err := s.datasetRepo.GetByID(ctx, datasetID)
	if err != nil {
		return domain.RecordFilters{}, err
	}

	start, end, err := normalizeRange(query.StartDate, query.EndDate, dataset)
	if err != nil {
		return domain.RecordFilters{}, err
	}

	return domain.RecordFilters{
		DatasetID: datasetID,
		StartDate: start,
		EndDate:   end,
		SellerID:  query.SellerID,
	}, nil
}

func clampLimit(value, fallback, max int) int {
	if value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

func (s *Service) Series(ctx context.Context, datasetID uuid.UUID, query Query) ([]domain.SeriesPoint, error) {
	filters, err := s.filters(ctx, datasetID, query)
	if err != nil {
		return nil, err
	}
	return s.aggregateRepo.DailySeries(ctx, filters)
}

func (s *Service) KPIs(ctx context.Context, datasetID uuid.UUID, query Query) (*domain.KPIs, error) {
	filters, err := s.filters(ctx, datasetID, query)
	if err != nil {
		return nil, err
	}
	return s.computeKPIs(ctx, filters)
}

func (s *Service) computeKPIs(ctx context.Context, filters domain.RecordFilters) (*domain.KPIs, error) {
	total, err := s.aggregateRepo.TotalValue(ctx, filters)
	if err != nil {
		return nil, err
	}

	series, err := s.aggregateRepo.DailySeries(ctx, filters)
	if err != nil {
		return nil, err
	}

	kpis := buildKPIs(total, series)
	return &kpis, nil
}

// buildKPIs monta os KPIs a partir do total e da série diária. A série chega
// em ordem ascendente de data e as comparações são estritas, então empates de
// soma diária ficam com a data mais antiga.
func buildKPIs(total float64, series []domain.SeriesPoint) domain.KPIs {
	kpis := domain.KPIs{
		TotalValue: total,
		Days:       len(series),
	}

	if len(series) == 0 {
		return kpis
	}

	kpis.AvgDailyValue = total / float64(len(series))

	best := domain.DayValue{Date: series[0].Date, Value: series[0].Value}
	worst := best

	for _, point := range series[1:] {
		if point.Value > best.Value {
			best = domain.DayValue{Date: point.Date, Value: point.Value}
		}
		if point.Value < worst.Value {
			worst = domain.DayValue{Date: point.Date, Value: point.Value}
		}
	}

	kpis.BestDay = &best
	kpis.WorstDay = &worst

	return kpis
}

func (s *Service) TopCategories(ctx context.Context, datasetID uuid.UUID, query Query) ([]domain.CategoryTotal, error) {
	filters, err := s.filters(ctx, datasetID, query)
	if err != nil {
		return nil, err
	}

	limit := clampLimit(query.CategoryLimit, domain.DefaultCategoryLimit, domain.MaxCategoryLimit)
	return s.aggregateRepo.TopCategories(ctx, filters, limit)
}

func (s *Service) SellerRanking(ctx context.Context, datasetID uuid.UUID, query Query) ([]domain.SellerRankingItem, error) {
	filters, err := s.filters(ctx, datasetID, query)
	if err != nil {
		return nil, err
	}

	limit := clampLimit(query.RankingLimit, domain.DefaultRankingLimit, domain.MaxRankingLimit)
	return s.aggregateRepo.SellerRanking(ctx, filters, limit)
}

func (s *Service) Sellers(ctx context.Context, datasetID uuid.UUID, query Query) ([]domain.SellerRef, error) {
	filters, err := s.filters(ctx, datasetID, query)
	if err != nil {
		return nil, err
	}
	return s.aggregateRepo.SellersInFilter(ctx, filters)
}

func (s *Service) FilterOptions(ctx context.Context, datasetID uuid.UUID) (*domain.FilterOptions, error) {
	if _, err := s.datasetRepo.GetByID(ctx, datasetID); err != nil {
		return nil, err
	}
	return s.aggregateRepo.FilterOptions(ctx, datasetID)
}

// Dashboard calcula os quatro sub-resultados sobre o mesmo conjunto filtrado
func (s *Service) Dashboard(ctx context.Context, datasetID uuid.UUID, query Query) (*domain.Dashboard, error) {
	filters, err := s.filters(ctx, datasetID, query)
	if err != nil {
		return nil, err
	}

	return s.assemble(ctx, filters, query)
}

func (s *Service) assemble(ctx context.Context, filters domain.RecordFilters, query Query) (*domain.Dashboard, error) {
	kpis, err := s.computeKPIs(ctx, filters)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao calcular KPIs")
	}

	series, err := s.aggregateRepo.DailySeries(ctx, filters)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao calcular série diária")
	}

	categoryLimit := clampLimit(query.CategoryLimit, domain.DefaultCategoryLimit, domain.MaxCategoryLimit)
	topCategories, err := s.aggregateRepo.TopCategories(ctx, filters, categoryLimit)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao calcular top categorias")
	}

	rankingLimit := clampLimit(query.RankingLimit, domain.DefaultRankingLimit, domain.MaxRankingLimit)
	sellerRanking, err := s.aggregateRepo.SellerRanking(ctx, filters, rankingLimit)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao calcular ranking de vendedores")
	}

	return &domain.Dashboard{
		Filters:       filters,
		KPIs:          *kpis,
		Series:        series,
		TopCategories: topCategories,
		SellerRanking: sellerRanking,
	}, nil
}

// Compare roda o dashboard para a janela pedida e para a janela imediatamente
// anterior de mesma duração, com os mesmos filtros de vendedor e limites
func (s *Service) Compare(ctx context.Context, datasetID uuid.UUID, query Query) (*domain.DashboardComparison, error) {
	logger := log.ForContext(ctx)

	dataset, err := s.datasetRepo.GetByID(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	currentStart, currentEnd, err := resolveWindow(query.StartDate, query.EndDate, dataset)
	if err != nil {
		return nil, err
	}

	previousStart, previousEnd := previousWindow(currentStart, currentEnd)

	logger.WithFields(log.Fields{
		"dataset_id":     datasetID,
		"current_start":  currentStart.Format(time.DateOnly),
		"current_end":    currentEnd.Format(time.DateOnly),
		"previous_start": previousStart.Format(time.DateOnly),
		"previous_end":   previousEnd.Format(time.DateOnly),
	}).Debug("dashboard: comparando períodos")

	current, err := s.assemble(ctx, domain.RecordFilters{
		DatasetID: datasetID,
		StartDate: &currentStart,
		EndDate:   &currentEnd,
		SellerID:  query.SellerID,
	}, query)
	if err != nil {
		return nil, err
	}

	previous, err := s.assemble(ctx, domain.RecordFilters{
		DatasetID: datasetID,
		StartDate: &previousStart,
		EndDate:   &previousEnd,
		SellerID:  query.SellerID,
	}, query)
	if err != nil {
		return nil, err
	}

	comparison := &domain.DashboardComparison{
		Current:       current,
		Previous:      previous,
		CurrentStart:  currentStart,
		CurrentEnd:    currentEnd,
		PreviousStart: previousStart,
		PreviousEnd:   previousEnd,
	}

	// Crescimento indefinido quando o período anterior soma exatamente zero
	if previous.KPIs.TotalValue != 0 {
		growth := utils.RoundWithTwoDecimalPlace(
			(current.KPIs.TotalValue - previous.KPIs.TotalValue) / previous.KPIs.TotalValue * 100,
		)
		comparison.GrowthTotalValuePct = &growth
	}

	return comparison, nil
}

// ExportCSV serializa o dashboard filtrado e devolve também o nome do arquivo
func (s *Service) ExportCSV(ctx context.Context, datasetID uuid.UUID, query Query) ([]byte, string, error) {
	filters, err := s.filters(ctx, datasetID, query)
	if err != nil {
		return nil, "", err
	}

	dashboard, err := s.assemble(ctx, filters, query)
	if err != nil {
		return nil, "", err
	}

	return buildExportCSV(dashboard), exportFilename(datasetID, filters), nil
}
