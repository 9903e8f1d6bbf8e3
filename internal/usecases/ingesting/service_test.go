package ingesting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-insights-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_IngestUpload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIngestionRepo := mocks.NewMockIngestionRepository(ctrl)
	service := NewService(mockIngestionRepo)

	content := []byte("data,vendedor,valor\n2024-01-02,Ana,100.00\n2024-01-01,Bruno,50.00\n")

	var captured *domain.Dataset
	var capturedRows []domain.NormalizedRow

	mockIngestionRepo.EXPECT().
		Ingest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, dataset *domain.Dataset, rows []domain.NormalizedRow, insight *domain.Insight) (*domain.IngestResult, error) {
			captured = dataset
			capturedRows = rows

			assert.Equal(t, dataset.ID, insight.DatasetID)
			assert.Equal(t, domain.InsightKindSummary, insight.Kind)

			return &domain.IngestResult{
				DatasetID:    dataset.ID,
				RowsInserted: len(rows),
			}, nil
		})

	result, err := service.IngestUpload(context.Background(), "vendas.csv", content)
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsInserted)

	require.NotNil(t, captured)
	assert.Equal(t, "Upload - vendas.csv", captured.Name)
	assert.Equal(t, domain.DatasetStatusProcessing, captured.Status)
	assert.Equal(t, 2, captured.RowCount)
	require.NotNil(t, captured.SourceFilename)
	assert.Equal(t, "vendas.csv", *captured.SourceFilename)

	// Limites de data derivados das linhas válidas, não da ordem do arquivo
	require.NotNil(t, captured.DateMin)
	require.NotNil(t, captured.DateMax)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *captured.DateMin)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *captured.DateMax)

	// A soma sobrevive ao round-trip de normalização
	total := 0.0
	for _, row := range capturedRows {
		total += row.Value
	}
	assert.Equal(t, 150.0, total)

	// Upload não marca linhas como seed
	for _, row := range capturedRows {
		assert.Nil(t, row.Quantity)
		assert.Nil(t, row.Metadata)
	}
}

func TestService_IngestUpload_CSVInvalido(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIngestionRepo := mocks.NewMockIngestionRepository(ctrl)
	service := NewService(mockIngestionRepo)

	// Nenhuma chamada ao repositório deve acontecer quando o CSV é rejeitado
	_, err := service.IngestUpload(context.Background(), "vazio.csv", []byte("data,valor\n"))

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestService_IngestSeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockIngestionRepo := mocks.NewMockIngestionRepository(ctrl)
	service := NewService(mockIngestionRepo)

	content := []byte("data,vendedor,valor\n2024-01-01,Ana,10.00\n")

	mockIngestionRepo.EXPECT().
		Ingest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, dataset *domain.Dataset, rows []domain.NormalizedRow, insight *domain.Insight) (*domain.IngestResult, error) {
			assert.Equal(t, "Demo - Vendas", dataset.Name)

			// Linhas de seed carregam quantidade unitária e a marcação de origem
			require.Len(t, rows, 1)
			require.NotNil(t, rows[0].Quantity)
			assert.Equal(t, 1.0, *rows[0].Quantity)
			assert.Equal(t, true, rows[0].Metadata["seed"])
			assert.Equal(t, insight.Payload["batch"], rows[0].Metadata["batch"])

			assert.Equal(t, true, insight.Payload["seed"])

			return &domain.IngestResult{DatasetID: dataset.ID, RowsInserted: 1}, nil
		})

	result, err := service.IngestSeed(context.Background(), "Demo - Vendas", "demo.csv", content)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsInserted)
}
