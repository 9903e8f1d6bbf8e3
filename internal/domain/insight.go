package domain

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de insight gerados pela plataforma
const (
	InsightKindSummary = "summary"
)

// Insight é uma anotação write-once produzida pela ingestão de um dataset
type Insight struct {
	ID        int64          `json:"id"`
	DatasetID uuid.UUID      `json:"dataset_id"`
	Kind      string         `json:"kind"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Severity  int            `json:"severity"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
