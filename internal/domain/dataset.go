package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status possíveis de um dataset durante o ciclo de ingestão
const (
	DatasetStatusProcessing = "processing"
	DatasetStatusReady      = "ready"
)

// Dataset representa um lote de vendas ingerido via CSV (upload ou seed)
type Dataset struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	SourceFilename *string    `json:"source_filename,omitempty"`
	Status         string     `json:"status"`
	RowCount       int        `json:"row_count"`
	DateMin        *time.Time `json:"date_min,omitempty"`
	DateMax        *time.Time `json:"date_max,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DatasetUpdate carrega os campos editáveis de um dataset via PATCH
type DatasetUpdate struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Status *string `json:"status" validate:"omitempty,oneof=processing ready"`
}

// IngestResult é o retorno de uma ingestão bem-sucedida
type IngestResult struct {
	DatasetID    uuid.UUID `json:"dataset_id"`
	RowsInserted int       `json:"rows_inserted"`
}
