package ingesting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-insights-api/infrastructure/repository"
	"github.com/vfg2006/sales-insights-api/internal/domain"
	"github.com/vfg2006/sales-insights-api/pkg/log"
	"github.com/vfg2006/sales-insights-api/pkg/utils"
)

// Ingester transforma um CSV bruto em um dataset pronto para consulta
type Ingester interface {
	IngestUpload(ctx context.Context, filename string, content []byte) (*domain.IngestResult, error)
	IngestSeed(ctx context.Context, name string, filename string, content []byte) (*domain.IngestResult, error)
}

type Service struct {
	ingestionRepo repository.IngestionRepository
}

func NewService(ingestionRepo repository.IngestionRepository) Ingester {
	return &Service{
		ingestionRepo: ingestionRepo,
	}
}

// IngestUpload processa o conteúdo de um upload de CSV
func (s *Service) IngestUpload(ctx context.Context, filename string, content []byte) (*domain.IngestResult, error) {
	return s.ingest(ctx, ingestInput{
		DatasetName: fmt.Sprintf("Upload - %s", filename),
		Filename:    filename,
		Content:     content,
	})
}

// IngestSeed processa o CSV de demonstração usando exatamente o mesmo pipeline
// do upload, marcando os registros como originados do seed
func (s *Service) IngestSeed(ctx context.Context, name string, filename string, content []byte) (*domain.IngestResult, error) {
	return s.ingest(ctx, ingestInput{
		DatasetName: name,
		Filename:    filename,
		Content:     content,
		Seed:        true,
	})
}

type ingestInput struct {
	DatasetName string
	Filename    string
	Content     []byte
	Seed        bool
}

func (s *Service) ingest(ctx context.Context, input ingestInput) (*domain.IngestResult, error) {
	logger := log.ForContext(ctx)

	// Identificador curto do lote, apenas para rastreio em logs e no insight
	batchID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id do lote")
	}

	parsed, err := parseCSV(input.Content)
	if err != nil {
		logger.WithFields(log.Fields{
			"batch":    batchID,
			"filename": input.Filename,
			"error":    err.Error(),
		}).Warn("ingestão: CSV rejeitado na validação")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"batch":      batchID,
		"filename":   input.Filename,
		"rows":       len(parsed.Rows),
		"date_col":   parsed.DateColumn,
		"value_col":  parsed.ValueColumn,
		"seller_col": parsed.SellerColumn,
	}).Info("ingestão: CSV normalizado")

	if input.Seed {
		quantity := 1.0
		for i := range parsed.Rows {
			parsed.Rows[i].Quantity = &quantity
			parsed.Rows[i].Metadata = map[string]any{"seed": true, "batch": batchID}
		}
	}

	dateMin, dateMax := dateBounds(parsed.Rows)

	dataset := &domain.Dataset{
		ID:             uuid.New(),
		Name:           input.DatasetName,
		SourceFilename: &input.Filename,
		Status:         domain.DatasetStatusProcessing,
		RowCount:       len(parsed.Rows),
		DateMin:        &dateMin,
		DateMax:        &dateMax,
	}

	insight := &domain.Insight{
		DatasetID: dataset.ID,
		Kind:      domain.InsightKindSummary,
		Title:     "Ingestão de CSV concluída",
		Content:   fmt.Sprintf("Dataset criado a partir de %s com %d linhas válidas.", input.Filename, len(parsed.Rows)),
		Severity:  1,
		Payload: map[string]any{
			"rows":  len(parsed.Rows),
			"batch": batchID,
			"seed":  input.Seed,
		},
	}

	result, err := s.ingestionRepo.Ingest(ctx, dataset, parsed.Rows, insight)
	if err != nil {
		logger.WithFields(log.Fields{
			"batch": batchID,
			"error": err.Error(),
		}).Error("ingestão: falha ao persistir o lote")
		return nil, errors.Wrap(err, "erro ao persistir ingestão")
	}

	logger.WithFields(log.Fields{
		"batch":      batchID,
		"dataset_id": result.DatasetID,
		"rows":       result.RowsInserted,
	}).Info("ingestão: dataset pronto")

	return result, nil
}

// dateBounds calcula os limites [date_min, date_max] do conjunto final de linhas
func dateBounds(rows []domain.NormalizedRow) (time.Time, time.Time) {
	dateMin := rows[0].EventDate
	dateMax := rows[0].EventDate

	for _, row := range rows[1:] {
		if row.EventDate.Before(dateMin) {
			dateMin = row.EventDate
		}
		if row.EventDate.After(dateMax) {
			dateMax = row.EventDate
		}
	}

	return dateMin, dateMax
}
