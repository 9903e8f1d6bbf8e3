package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-insights-api/internal/domain"
	"github.com/vfg2006/sales-insights-api/internal/usecases/ingesting"
	"github.com/vfg2006/sales-insights-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func multipartUpload(t *testing.T, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/datasets/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req
}

func decodeAPIError(t *testing.T, recorder *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&apiErr))
	return apiErr
}

func TestUploadDataset(t *testing.T) {
	validCSV := "data,vendedor,valor\n2024-01-01,Ana,100.00\n2024-01-02,Bruno,50.00\n"

	t.Run("upload válido cria o dataset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockIngestionRepo := mocks.NewMockIngestionRepository(ctrl)
		mockIngestionRepo.EXPECT().
			Ingest(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, dataset *domain.Dataset, rows []domain.NormalizedRow, _ *domain.Insight) (*domain.IngestResult, error) {
				return &domain.IngestResult{DatasetID: dataset.ID, RowsInserted: len(rows)}, nil
			})

		recorder := httptest.NewRecorder()
		handler := UploadDataset(ingesting.NewService(mockIngestionRepo))
		handler.ServeHTTP(recorder, multipartUpload(t, "vendas.csv", validCSV))

		require.Equal(t, http.StatusCreated, recorder.Code)

		var result domain.IngestResult
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&result))
		assert.Equal(t, 2, result.RowsInserted)
	})

	t.Run("extensão diferente de .csv é rejeitada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockIngestionRepo := mocks.NewMockIngestionRepository(ctrl)

		recorder := httptest.NewRecorder()
		handler := UploadDataset(ingesting.NewService(mockIngestionRepo))
		handler.ServeHTTP(recorder, multipartUpload(t, "planilha.xlsx", validCSV))

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apiErrors.ErrInvalidUpload, decodeAPIError(t, recorder).Code)
	})

	t.Run("CSV sem linhas válidas devolve 400 com a mensagem do parser", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockIngestionRepo := mocks.NewMockIngestionRepository(ctrl)

		recorder := httptest.NewRecorder()
		handler := UploadDataset(ingesting.NewService(mockIngestionRepo))
		handler.ServeHTTP(recorder, multipartUpload(t, "vazio.csv", "data,valor\n"))

		require.Equal(t, http.StatusBadRequest, recorder.Code)

		apiErr := decodeAPIError(t, recorder)
		assert.Equal(t, apiErrors.ErrInvalidUpload, apiErr.Code)
		assert.Equal(t, "CSV vazio.", apiErr.Message)
	})

	t.Run("requisição sem campo file", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockIngestionRepo := mocks.NewMockIngestionRepository(ctrl)

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/datasets/upload", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		recorder := httptest.NewRecorder()
		handler := UploadDataset(ingesting.NewService(mockIngestionRepo))
		handler.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apiErrors.ErrInvalidUpload, decodeAPIError(t, recorder).Code)
	})
}
