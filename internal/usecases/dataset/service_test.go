package dataset

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string {
	return &s
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockInsightRepo := mocks.NewMockInsightRepository(ctrl)
	service := NewService(mockDatasetRepo, mockInsightRepo)

	id := uuid.New()

	t.Run("nome chega aparado no repositório", func(t *testing.T) {
		mockDatasetRepo.EXPECT().
			Update(gomock.Any(), id, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, update domain.DatasetUpdate) (*domain.Dataset, error) {
				require.NotNil(t, update.Name)
				assert.Equal(t, "Vendas Q1", *update.Name)
				return &domain.Dataset{ID: id, Name: *update.Name}, nil
			})

		updated, err := service.Update(context.Background(), id, domain.DatasetUpdate{Name: strPtr("  Vendas Q1  ")})

		require.NoError(t, err)
		assert.Equal(t, "Vendas Q1", updated.Name)
	})

	t.Run("status fora do vocabulário é rejeitado", func(t *testing.T) {
		_, err := service.Update(context.Background(), id, domain.DatasetUpdate{Status: strPtr("arquivado")})

		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("dataset inexistente", func(t *testing.T) {
		mockDatasetRepo.EXPECT().
			Update(gomock.Any(), id, gomock.Any()).
			Return(nil, domain.ErrDatasetNotFound)

		_, err := service.Update(context.Background(), id, domain.DatasetUpdate{Status: strPtr("ready")})

		require.ErrorIs(t, err, domain.ErrDatasetNotFound)
	})
}

func TestService_Insights(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDatasetRepo := mocks.NewMockDatasetRepository(ctrl)
	mockInsightRepo := mocks.NewMockInsightRepository(ctrl)
	service := NewService(mockDatasetRepo, mockInsightRepo)

	id := uuid.New()

	t.Run("valida o dataset antes de listar", func(t *testing.T) {
		mockDatasetRepo.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, domain.ErrDatasetNotFound)

		_, err := service.Insights(context.Background(), id)

		require.ErrorIs(t, err, domain.ErrDatasetNotFound)
	})

	t.Run("lista os insights do dataset", func(t *testing.T) {
		mockDatasetRepo.EXPECT().GetByID(gomock.Any(), id).
			Return(&domain.Dataset{ID: id}, nil)
		mockInsightRepo.EXPECT().ListByDataset(gomock.Any(), id).
			Return([]domain.Insight{{DatasetID: id, Kind: domain.InsightKindSummary}}, nil)

		insights, err := service.Insights(context.Background(), id)

		require.NoError(t, err)
		require.Len(t, insights, 1)
		assert.Equal(t, domain.InsightKindSummary, insights[0].Kind)
	})
}
