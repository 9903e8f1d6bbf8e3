package dashboarding

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestBuildKPIs(t *testing.T) {
	tests := []struct {
		name   string
		total  float64
		series []domain.SeriesPoint
		want   domain.KPIs
	}{
		{
			name:  "série vazia zera os KPIs",
			total: 0,
			want: domain.KPIs{
				TotalValue: 0,
				Days:       0,
			},
		},
		{
			name:  "melhor e pior dia em série comum",
			total: 150,
			series: []domain.SeriesPoint{
				{Date: date(2024, 2, 1), Value: 100},
				{Date: date(2024, 2, 2), Value: 50},
			},
			want: domain.KPIs{
				TotalValue:    150,
				AvgDailyValue: 75,
				Days:          2,
				BestDay:       &domain.DayValue{Date: date(2024, 2, 1), Value: 100},
				WorstDay:      &domain.DayValue{Date: date(2024, 2, 2), Value: 50},
			},
		},
		{
			name:  "empate fica com a data mais antiga",
			total: 100,
			series: []domain.SeriesPoint{
				{Date: date(2024, 2, 1), Value: 50},
				{Date: date(2024, 2, 2), Value: 50},
			},
			want: domain.KPIs{
				TotalValue:    100,
				AvgDailyValue: 50,
				Days:          2,
				BestDay:       &domain.DayValue{Date: date(2024, 2, 1), Value: 50},
				WorstDay:      &domain.DayValue{Date: date(2024, 2, 1), Value: 50},
			},
		},
		{
			name:  "um único dia é melhor e pior ao mesmo tempo",
			total: 42,
			series: []domain.SeriesPoint{
				{Date: date(2024, 2, 1), Value: 42},
			},
			want: domain.KPIs{
				TotalValue:    42,
				AvgDailyValue: 42,
				Days:          1,
				BestDay:       &domain.DayValue{Date: date(2024, 2, 1), Value: 42},
				WorstDay:      &domain.DayValue{Date: date(2024, 2, 1), Value: 42},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildKPIs(tt.total, tt.series)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, domain.DefaultCategoryLimit, clampLimit(0, domain.DefaultCategoryLimit, domain.MaxCategoryLimit))
	assert.Equal(t, domain.DefaultCategoryLimit, clampLimit(-3, domain.DefaultCategoryLimit, domain.MaxCategoryLimit))
	assert.Equal(t, 7, clampLimit(7, domain.DefaultCategoryLimit, domain.MaxCategoryLimit))
	assert.Equal(t, domain.MaxCategoryLimit, clampLimit(999, domain.DefaultCategoryLimit, domain.MaxCategoryLimit))
}

func TestService_KPIs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockAggregateRepo := mocks.NewMockAggregateRepository(ctrl)
	service := NewService(mockDatasetRepo, mockAggregateRepo)

	datasetID := uuid.New()
	dataset := &domain.Dataset{ID: datasetID, DateMin: datePtr(2024, 1, 1), DateMax: datePtr(2024, 3, 31)}

	mockDatasetRepo.EXPECT().GetByID(gomock.Any(), datasetID).Return(dataset, nil)

	mockAggregateRepo.EXPECT().
		TotalValue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filters domain.RecordFilters) (float64, error) {
			// Só start informado: o fim completa com o date_max do dataset
			require.NotNil(t, filters.StartDate)
			require.NotNil(t, filters.EndDate)
			assert.Equal(t, date(2024, 2, 1), *filters.StartDate)
			assert.Equal(t, date(2024, 3, 31), *filters.EndDate)
			return 150, nil
		})

	mockAggregateRepo.EXPECT().
		DailySeries(gomock.Any(), gomock.Any()).
		Return([]domain.SeriesPoint{
			{Date: date(2024, 2, 1), Value: 100},
			{Date: date(2024, 2, 2), Value: 50},
		}, nil)

	kpis, err := service.KPIs(context.Background(), datasetID, Query{StartDate: datePtr(2024, 2, 1)})
	require.NoError(t, err)

	assert.Equal(t, 150.0, kpis.TotalValue)
	assert.Equal(t, 75.0, kpis.AvgDailyValue)
	assert.Equal(t, 2, kpis.Days)
	require.NotNil(t, kpis.BestDay)
	assert.Equal(t, date(2024, 2, 1), kpis.BestDay.Date)
}

func TestService_Series_JanelaInvertida(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockAggregateRepo := mocks.NewMockAggregateRepository(ctrl)
	service := NewService(mockDatasetRepo, mockAggregateRepo)

	datasetID := uuid.New()
	mockDatasetRepo.EXPECT().GetByID(gomock.Any(), datasetID).
		Return(&domain.Dataset{ID: datasetID}, nil)

	_, err := service.Series(context.Background(), datasetID, Query{
		StartDate: datePtr(2024, 2, 10),
		EndDate:   datePtr(2024, 2, 1),
	})

	require.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestService_Series_DatasetInexistente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockAggregateRepo := mocks.NewMockAggregateRepository(ctrl)
	service := NewService(mockDatasetRepo, mockAggregateRepo)

	datasetID := uuid.New()
	mockDatasetRepo.EXPECT().GetByID(gomock.Any(), datasetID).
		Return(nil, domain.ErrDatasetNotFound)

	_, err := service.Series(context.Background(), datasetID, Query{})

	require.ErrorIs(t, err, domain.ErrDatasetNotFound)
}

// compareFixture configura os agregados para devolver totais distintos por
// janela, espelhando a divisão current/previous do Compare
func compareFixture(
	t *testing.T,
	mockAggregateRepo *mocks.MockAggregateRepository,
	currentStart time.Time,
	currentTotal, previousTotal float64,
) {
	t.Helper()

	mockAggregateRepo.EXPECT().
		TotalValue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filters domain.RecordFilters) (float64, error) {
			if filters.StartDate != nil && filters.StartDate.Equal(currentStart) {
				return currentTotal, nil
			}
			return previousTotal, nil
		}).
		Times(2)

	mockAggregateRepo.EXPECT().
		DailySeries(gomock.Any(), gomock.Any()).
		Return([]domain.SeriesPoint{}, nil).
		Times(2)

	mockAggregateRepo.EXPECT().
		TopCategories(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.CategoryTotal{}, nil).
		Times(2)

	mockAggregateRepo.EXPECT().
		SellerRanking(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.SellerRankingItem{}, nil).
		Times(2)
}

func TestService_Compare(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockAggregateRepo := mocks.NewMockAggregateRepository(ctrl)
	service := NewService(mockDatasetRepo, mockAggregateRepo)

	datasetID := uuid.New()
	dataset := &domain.Dataset{ID: datasetID, DateMin: datePtr(2024, 1, 1), DateMax: datePtr(2024, 3, 31)}

	mockDatasetRepo.EXPECT().GetByID(gomock.Any(), datasetID).Return(dataset, nil)
	compareFixture(t, mockAggregateRepo, date(2024, 2, 1), 150, 100)

	comparison, err := service.Compare(context.Background(), datasetID, Query{
		StartDate: datePtr(2024, 2, 1),
		EndDate:   datePtr(2024, 2, 5),
	})
	require.NoError(t, err)

	assert.Equal(t, date(2024, 2, 1), comparison.CurrentStart)
	assert.Equal(t, date(2024, 2, 5), comparison.CurrentEnd)
	assert.Equal(t, date(2024, 1, 27), comparison.PreviousStart)
	assert.Equal(t, date(2024, 1, 31), comparison.PreviousEnd)

	require.NotNil(t, comparison.GrowthTotalValuePct)
	assert.Equal(t, 50.0, *comparison.GrowthTotalValuePct)
}

func TestService_Compare_PeriodoAnteriorZerado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockAggregateRepo := mocks.NewMockAggregateRepository(ctrl)
	service := NewService(mockDatasetRepo, mockAggregateRepo)

	datasetID := uuid.New()
	dataset := &domain.Dataset{ID: datasetID, DateMin: datePtr(2024, 1, 1), DateMax: datePtr(2024, 3, 31)}

	mockDatasetRepo.EXPECT().GetByID(gomock.Any(), datasetID).Return(dataset, nil)
	compareFixture(t, mockAggregateRepo, date(2024, 2, 1), 150, 0)

	comparison, err := service.Compare(context.Background(), datasetID, Query{
		StartDate: datePtr(2024, 2, 1),
		EndDate:   datePtr(2024, 2, 5),
	})
	require.NoError(t, err)

	// Crescimento indefinido quando a janela anterior não tem vendas
	assert.Nil(t, comparison.GrowthTotalValuePct)
}

func TestService_Compare_DatasetSemLimites(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockAggregateRepo := mocks.NewMockAggregateRepository(ctrl)
	service := NewService(mockDatasetRepo, mockAggregateRepo)

	datasetID := uuid.New()
	mockDatasetRepo.EXPECT().GetByID(gomock.Any(), datasetID).
		Return(&domain.Dataset{ID: datasetID}, nil)

	_, err := service.Compare(context.Background(), datasetID, Query{})

	require.ErrorIs(t, err, domain.ErrUnboundedRange)
}
